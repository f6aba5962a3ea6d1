package ddsc

import (
	runtimepkg "github.com/drblury/ddsc/internal/runtime"
	configpkg "github.com/drblury/ddsc/internal/runtime/config"
	durationpkg "github.com/drblury/ddsc/internal/runtime/duration"
	entitypkg "github.com/drblury/ddsc/internal/runtime/entity"
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	eventspkg "github.com/drblury/ddsc/internal/runtime/events"
	hookspkg "github.com/drblury/ddsc/internal/runtime/hooks"
	idspkg "github.com/drblury/ddsc/internal/runtime/ids"
	jsoncodec "github.com/drblury/ddsc/internal/runtime/jsoncodec"
	listenerpkg "github.com/drblury/ddsc/internal/runtime/listener"
	loggingpkg "github.com/drblury/ddsc/internal/runtime/logging"
	metricspkg "github.com/drblury/ddsc/internal/runtime/metrics"
	nativepkg "github.com/drblury/ddsc/internal/runtime/native"
	qospkg "github.com/drblury/ddsc/internal/runtime/qos"
	resourcepkg "github.com/drblury/ddsc/internal/runtime/resource"
)

type (
	Config       = configpkg.Config
	Runtime      = runtimepkg.Runtime
	Dependencies = runtimepkg.Dependencies
	Env          = resourcepkg.Env

	// Native boundary
	API             = nativepkg.API
	Backend         = nativepkg.Builder
	BackendRegistry = nativepkg.Registry
	Simulator       = nativepkg.Simulator
	Entity          = nativepkg.Entity
	TopicDescriptor = nativepkg.TopicDescriptor

	Duration    = durationpkg.Duration
	Domain      = entitypkg.Domain
	Participant = entitypkg.Participant
	Topic       = entitypkg.Topic
	Listener    = listenerpkg.Listener

	QoS         = qospkg.QoS
	History     = qospkg.History
	Durability  = qospkg.Durability
	Reliability = qospkg.Reliability
	Profile     = qospkg.Profile
	Profiles    = qospkg.Profiles

	// Lifecycle hooks
	Hooks        = hookspkg.Hooks
	Event        = hookspkg.Event
	Op           = hookspkg.Op
	EventPayload = hookspkg.EventPayload

	// Event sinks
	EventsSink         = eventspkg.Builder
	EventsSinkRegistry = eventspkg.Registry
	EventsSinkConfig   = eventspkg.Config

	EntityMetrics   = metricspkg.EntityMetrics
	KindMetrics     = metricspkg.KindMetrics
	MetricsSnapshot = metricspkg.Snapshot

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	NativeError           = errspkg.Error
	DecodeError           = errspkg.DecodeError
	DurationParseError    = durationpkg.ParseError
	ConfigValidationError = errspkg.ConfigValidationError
)

var (
	New            = runtimepkg.New
	FromEnv        = configpkg.FromEnv
	ValidateConfig = configpkg.ValidateConfig
	NewEnv         = resourcepkg.NewEnv

	// Backends
	RegisterBackend        = nativepkg.Register
	BuildBackend           = nativepkg.Build
	DefaultBackendRegistry = nativepkg.DefaultRegistry
	NewSimulator           = nativepkg.NewSimulator

	// Durations
	InvalidDuration  = durationpkg.Invalid
	InfiniteDuration = durationpkg.Infinite
	Nanoseconds      = durationpkg.FromNanos
	Microseconds     = durationpkg.FromMicros
	Milliseconds     = durationpkg.FromMillis
	Seconds          = durationpkg.FromSecs
	Minutes          = durationpkg.FromMinutes
	Hours            = durationpkg.FromHours
	FromStdDuration  = durationpkg.FromStd
	ParseDuration    = durationpkg.Parse

	// Entities
	DefaultDomain  = entitypkg.DefaultDomain
	DomainID       = entitypkg.DomainID
	ParseDomain    = entitypkg.ParseDomain
	NewParticipant = entitypkg.NewParticipant
	NewTopic       = entitypkg.NewTopic
	NewListener    = listenerpkg.New

	// QoS
	NewQoS          = qospkg.New
	KeepLast        = qospkg.KeepLast
	KeepAll         = qospkg.KeepAll
	BestEffort      = qospkg.BestEffort
	Reliable        = qospkg.Reliable
	ParseDurability = qospkg.ParseDurability
	ProfileOf       = qospkg.ProfileOf
	LoadProfiles    = qospkg.LoadProfiles
	ParseProfiles   = qospkg.ParseProfiles

	// Hooks
	LoggingHooks   = hookspkg.LoggingHooks
	MetricsHooks   = hookspkg.MetricsHooks
	AlertingHooks  = hookspkg.AlertingHooks
	TracingHooks   = hookspkg.TracingHooks
	PublisherHooks = hookspkg.PublisherHooks

	NewEntityMetrics = metricspkg.NewEntityMetrics

	// Event sinks
	RegisterEventsSink = eventspkg.Register
	BuildEventsSink    = eventspkg.Build
	DefaultEventsSinks = eventspkg.DefaultRegistry
	NewEventsSinks     = eventspkg.NewRegistry
	ReadEventsFile     = eventspkg.ReadFile
	NewFileEventsSink  = eventspkg.NewFilePublisher

	// Return code classification
	Classify  = errspkg.Classify
	CodeOf    = errspkg.CodeOf
	IsFailure = errspkg.IsFailure

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode
	Decode        = jsoncodec.Decode

	ErrAPIRequired         = errspkg.ErrAPIRequired
	ErrParticipantRequired = errspkg.ErrParticipantRequired
	ErrDescriptorRequired  = errspkg.ErrDescriptorRequired
	ErrNameRequired        = errspkg.ErrNameRequired
	ErrPolicyNotSet        = errspkg.ErrPolicyNotSet
	ErrClosed              = errspkg.ErrClosed
	ErrConfigRequired      = errspkg.ErrConfigRequired
	ErrProfileNotFound     = errspkg.ErrProfileNotFound
	ErrPublisherRequired   = errspkg.ErrPublisherRequired
	ErrNotFinite           = durationpkg.ErrNotFinite

	ErrAlreadyDeleted       = errspkg.ErrAlreadyDeleted
	ErrBadParameter         = errspkg.ErrBadParameter
	ErrGeneric              = errspkg.ErrGeneric
	ErrIllegalOperation     = errspkg.ErrIllegalOperation
	ErrImmutablePolicy      = errspkg.ErrImmutablePolicy
	ErrInconsistentPolicy   = errspkg.ErrInconsistentPolicy
	ErrNotAllowedBySecurity = errspkg.ErrNotAllowedBySecurity
	ErrNotEnabled           = errspkg.ErrNotEnabled
	ErrNoData               = errspkg.ErrNoData
	ErrOutOfResources       = errspkg.ErrOutOfResources
	ErrPreconditionNotMet   = errspkg.ErrPreconditionNotMet
	ErrTimeout              = errspkg.ErrTimeout
	ErrUnsupported          = errspkg.ErrUnsupported

	NewSlogServiceLogger = loggingpkg.NewSlogServiceLogger
	NewTextServiceLogger = loggingpkg.NewTextServiceLogger
	NewNopServiceLogger  = loggingpkg.NewNopServiceLogger
	NewWatermillAdapter  = loggingpkg.NewWatermillAdapter

	CreateULID = idspkg.CreateULID
)

// Durability kinds.
const (
	Volatile       = qospkg.Volatile
	TransientLocal = qospkg.TransientLocal
	Transient      = qospkg.Transient
	Persistent     = qospkg.Persistent
)

// Resource kinds and operations carried by lifecycle events.
const (
	KindParticipant = hookspkg.KindParticipant
	KindTopic       = hookspkg.KindTopic
	KindQoS         = hookspkg.KindQoS
	KindListener    = hookspkg.KindListener

	OpCreate = hookspkg.OpCreate
	OpDelete = hookspkg.OpDelete
)

// LevelTrace is the slog level ServiceLogger.Trace writes at.
const LevelTrace = loggingpkg.LevelTrace

// Built-in event sink names.
const (
	DefaultEventsTopic = configpkg.DefaultEventsTopic

	ChannelEventsSink   = eventspkg.ChannelSink
	FileEventsSink      = eventspkg.FileSink
	HTTPEventsSink      = eventspkg.HTTPSink
	KafkaEventsSink     = eventspkg.KafkaSink
	RabbitMQEventsSink  = eventspkg.RabbitMQSink
	NATSEventsSink      = eventspkg.NATSSink
	JetStreamEventsSink = eventspkg.JetStreamSink
	AWSEventsSink       = eventspkg.AWSSink
)

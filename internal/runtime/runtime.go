package runtime

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	configpkg "github.com/drblury/ddsc/internal/runtime/config"
	"github.com/drblury/ddsc/internal/runtime/entity"
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/events"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/listener"
	loggingpkg "github.com/drblury/ddsc/internal/runtime/logging"
	"github.com/drblury/ddsc/internal/runtime/metrics"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/qos"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

// Dependencies holds the optional collaborators the Runtime can use.
// Leave fields nil to fall back to the defaults derived from Config.
type Dependencies struct {
	// API overrides Config.Backend.
	API native.API
	// Registry resolves Config.Backend. Defaults to native.DefaultRegistry.
	Registry *native.Registry
	// Logger defaults to a text logger on stderr at Config.LogLevel.
	Logger loggingpkg.ServiceLogger
	// Hooks run after the built-in logging, metrics, tracing and publishing hooks.
	Hooks hooks.Hooks
	// Registerer receives the entity metrics. Defaults to a private registry.
	Registerer prometheus.Registerer
	// Gatherer backs MetricsHandler. Defaults to Registerer, which then must
	// also be a Gatherer.
	Gatherer prometheus.Gatherer
	// Tracer defaults to the global OpenTelemetry tracer.
	Tracer trace.Tracer
	// Publisher receives lifecycle events on Config.EventsTopic. It overrides
	// Config.EventsSink and is never closed by the Runtime.
	Publisher message.Publisher
	// Sinks resolves Config.EventsSink. Defaults to events.DefaultRegistry.
	Sinks *events.Registry
}

// Runtime owns the native backend and builds wrapped resources against it.
type Runtime struct {
	Conf   *configpkg.Config
	Logger loggingpkg.ServiceLogger

	backend  string
	env      resource.Env
	domain   entity.Domain
	profiles qos.Profiles
	metrics  *metrics.EntityMetrics
	gatherer prometheus.Gatherer

	publisher     message.Publisher
	ownsPublisher bool
}

// New validates conf, builds the native backend and wires the lifecycle hooks.
func New(conf *configpkg.Config, deps Dependencies) (*Runtime, error) {
	if conf == nil {
		return nil, errspkg.ErrConfigRequired
	}
	if err := conf.Validate(); err != nil {
		return nil, errspkg.NewConfigValidationError(err)
	}

	log := deps.Logger
	if log == nil {
		log = loggingpkg.NewTextServiceLogger(os.Stderr, conf.LogLevel)
	}
	log.Info("Creating ddsc runtime", loggingpkg.LogFields{
		"backend": backendName(conf, deps),
		"config":  conf,
	})

	r := &Runtime{
		Conf:    conf,
		Logger:  log,
		backend: backendName(conf, deps),
	}

	domain, err := entity.ParseDomain(conf.Domain)
	if err != nil {
		return nil, errspkg.NewConfigValidationError(err)
	}
	r.domain = domain

	if err := r.loadProfiles(); err != nil {
		return nil, err
	}

	api, err := buildAPI(conf, deps)
	if err != nil {
		return nil, err
	}

	if err := r.buildPublisher(deps); err != nil {
		return nil, err
	}

	h, err := r.buildHooks(deps)
	if err != nil {
		_ = r.closePublisher()
		return nil, err
	}

	r.env = resource.Env{API: api, Logger: log, Hooks: h}
	return r, nil
}

func backendName(conf *configpkg.Config, deps Dependencies) string {
	switch {
	case deps.API != nil:
		return "custom"
	case conf.Backend == "":
		return native.DefaultBackend
	default:
		return conf.Backend
	}
}

func buildAPI(conf *configpkg.Config, deps Dependencies) (native.API, error) {
	if deps.API != nil {
		return deps.API, nil
	}
	if conf.NativeConfigURI != "" {
		// The native library reads its XML configuration from the environment
		// when the first domain is created.
		if err := os.Setenv(configpkg.EnvNativeConfigURI, conf.NativeConfigURI); err != nil {
			return nil, fmt.Errorf("export %s: %w", configpkg.EnvNativeConfigURI, err)
		}
	}
	registry := deps.Registry
	if registry == nil {
		registry = native.DefaultRegistry
	}
	if name := conf.Backend; name != "" && !registry.Has(name) {
		return nil, errspkg.NewConfigValidationError(
			fmt.Errorf("backend: unknown backend %q (registered: %v)", name, registry.Names()))
	}
	return registry.Build(conf.Backend)
}

func (r *Runtime) loadProfiles() error {
	if r.Conf.QoSProfileFile == "" {
		return nil
	}
	profiles, err := qos.LoadProfiles(r.Conf.QoSProfileFile)
	if err != nil {
		return err
	}
	if name := r.Conf.DefaultProfile; name != "" {
		if _, err := profiles.Get(name); err != nil {
			return errspkg.NewConfigValidationError(err)
		}
	}
	r.profiles = profiles
	r.Logger.Debug("Loaded QoS profiles", loggingpkg.LogFields{
		"file":     r.Conf.QoSProfileFile,
		"profiles": profiles.Names(),
	})
	return nil
}

func (r *Runtime) buildPublisher(deps Dependencies) error {
	if deps.Publisher != nil {
		r.publisher = deps.Publisher
		return nil
	}
	if r.Conf.EventsSink == "" {
		return nil
	}

	sinks := deps.Sinks
	if sinks == nil {
		sinks = events.DefaultRegistry
	}
	if !sinks.Has(r.Conf.EventsSink) {
		return errspkg.NewConfigValidationError(
			fmt.Errorf("events: unknown sink %q (registered: %v)", r.Conf.EventsSink, sinks.Names()))
	}

	pub, err := sinks.Build(context.Background(), r.Conf, loggingpkg.NewWatermillAdapter(r.Logger))
	if err != nil {
		return err
	}
	r.publisher = pub
	r.ownsPublisher = true
	r.Logger.Info("Events sink ready", loggingpkg.LogFields{"sink": r.Conf.EventsSink})
	return nil
}

func (r *Runtime) closePublisher() error {
	if !r.ownsPublisher || r.publisher == nil {
		return nil
	}
	r.ownsPublisher = false
	return r.publisher.Close()
}

func (r *Runtime) buildHooks(deps Dependencies) (hooks.Hooks, error) {
	h := hooks.LoggingHooks(r.Logger)

	if r.Conf.MetricsEnabled {
		registerer := deps.Registerer
		gatherer := deps.Gatherer
		if registerer == nil {
			reg := prometheus.NewRegistry()
			registerer, gatherer = reg, reg
		}
		if gatherer == nil {
			g, ok := registerer.(prometheus.Gatherer)
			if !ok {
				return hooks.Hooks{}, errspkg.NewConfigValidationError(
					fmt.Errorf("metrics: registerer %T is not a prometheus.Gatherer; set Dependencies.Gatherer", registerer))
			}
			gatherer = g
		}
		m := metrics.NewEntityMetrics(r.Conf.MetricsNamespace, registerer)
		if err := m.Register(); err != nil {
			return hooks.Hooks{}, fmt.Errorf("register entity metrics: %w", err)
		}
		r.metrics = m
		r.gatherer = gatherer
		h = h.Merge(m.Hooks())
	}

	if r.Conf.TracingEnabled {
		h = h.Merge(hooks.TracingHooks(deps.Tracer))
	}

	switch {
	case r.publisher != nil:
		topic := r.Conf.EventsTopic
		if topic == "" {
			topic = configpkg.DefaultEventsTopic
		}
		h = h.Merge(hooks.PublisherHooks(r.publisher, topic, r.Logger))
	case r.Conf.EventsTopic != "":
		return hooks.Hooks{}, fmt.Errorf("%w: events topic %q", errspkg.ErrPublisherRequired, r.Conf.EventsTopic)
	}

	return h.Merge(deps.Hooks), nil
}

// Backend returns the name of the native backend in use.
func (r *Runtime) Backend() string { return r.backend }

// API returns the native API the Runtime was built with.
func (r *Runtime) API() native.API { return r.env.API }

// Env returns the environment passed to every wrapper the Runtime builds.
func (r *Runtime) Env() resource.Env { return r.env }

// Domain returns the configured default domain.
func (r *Runtime) Domain() entity.Domain { return r.domain }

// Profiles returns the loaded QoS profiles; nil when no file is configured.
func (r *Runtime) Profiles() qos.Profiles { return r.profiles }

// NewQoS allocates a QoS block. When a default profile is configured it is
// applied before the block is returned.
func (r *Runtime) NewQoS() (*qos.QoS, error) {
	if r.Conf.DefaultProfile == "" {
		return qos.New(r.env)
	}
	return r.NewQoSFromProfile(r.Conf.DefaultProfile)
}

// NewQoSFromProfile allocates a QoS block populated from a named profile.
func (r *Runtime) NewQoSFromProfile(name string) (*qos.QoS, error) {
	profile, err := r.profiles.Get(name)
	if err != nil {
		return nil, err
	}
	q, err := qos.New(r.env)
	if err != nil {
		return nil, err
	}
	if err := profile.Apply(q); err != nil {
		q.Close()
		return nil, fmt.Errorf("apply qos profile %q: %w", name, err)
	}
	return q, nil
}

// NewListener allocates an empty listener.
func (r *Runtime) NewListener() (*listener.Listener, error) {
	return listener.New(r.env)
}

// NewParticipant creates a participant on domain. q and l may be nil.
func (r *Runtime) NewParticipant(domain entity.Domain, q *qos.QoS, l *listener.Listener) (*entity.Participant, error) {
	return entity.NewParticipant(r.env, domain, q, l)
}

// NewDefaultParticipant creates a participant on the configured domain.
func (r *Runtime) NewDefaultParticipant(q *qos.QoS, l *listener.Listener) (*entity.Participant, error) {
	return entity.NewParticipant(r.env, r.domain, q, l)
}

// NewTopic creates a topic under participant. q and l may be nil.
func (r *Runtime) NewTopic(participant *entity.Participant, descriptor native.TopicDescriptor, name string, q *qos.QoS, l *listener.Listener) (*entity.Topic, error) {
	return entity.NewTopic(r.env, participant, descriptor, name, q, l)
}

// Events returns the publisher receiving lifecycle events; nil when no sink
// or publisher is configured.
func (r *Runtime) Events() message.Publisher { return r.publisher }

// Close releases the events sink built from Config.EventsSink. Wrapped
// resources are owned by the caller and stay open. Close is idempotent.
func (r *Runtime) Close() error {
	if err := r.closePublisher(); err != nil {
		return fmt.Errorf("close events sink: %w", err)
	}
	return nil
}

// MetricsHandler serves the entity metrics in the Prometheus exposition
// format. It responds 404 when metrics are disabled.
func (r *Runtime) MetricsHandler() http.Handler {
	if r.gatherer == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// Snapshot returns the entity metrics; the zero Snapshot when metrics are
// disabled.
func (r *Runtime) Snapshot() metrics.Snapshot {
	if r.metrics == nil {
		return metrics.Snapshot{}
	}
	return r.metrics.Snapshot()
}

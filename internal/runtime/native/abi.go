// Package native describes the handle-based ABI of the Cyclone DDS C library.
//
// Everything above this package talks to the middleware through API only.
// Handles, pointers and durations are kept as the raw integers the C library
// uses; converting them into typed values is the job of the wrapper packages.
package native

import "math"

// Entity is a dds_entity_t: a positive handle on success, a negative return
// code on failure.
type Entity int32

// ReturnCode is a dds_return_t.
type ReturnCode int32

// DomainID is a dds_domainid_t.
type DomainID uint32

// Duration is a dds_duration_t in nanoseconds, including the two sentinels.
type Duration int64

// QoSPtr is an opaque dds_qos_t pointer. Zero means NULL.
type QoSPtr uintptr

// ListenerPtr is an opaque dds_listener_t pointer. Zero means NULL.
type ListenerPtr uintptr

// CString is a transient, natively allocated NUL-terminated string. It must be
// released with API.FreeCString before the call that allocated it returns.
type CString uintptr

// TopicDescriptor is an opaque dds_topic_descriptor_t pointer produced by the
// IDL code generator.
type TopicDescriptor uintptr

// Return codes.
const (
	RetcodeOK                   ReturnCode = 0
	RetcodeError                ReturnCode = -1
	RetcodeUnsupported          ReturnCode = -2
	RetcodeBadParameter         ReturnCode = -3
	RetcodePreconditionNotMet   ReturnCode = -4
	RetcodeOutOfResources       ReturnCode = -5
	RetcodeNotEnabled           ReturnCode = -6
	RetcodeImmutablePolicy      ReturnCode = -7
	RetcodeInconsistentPolicy   ReturnCode = -8
	RetcodeAlreadyDeleted       ReturnCode = -9
	RetcodeTimeout              ReturnCode = -10
	RetcodeNoData               ReturnCode = -11
	RetcodeIllegalOperation     ReturnCode = -12
	RetcodeNotAllowedBySecurity ReturnCode = -13
)

// Sentinels.
const (
	DurationInvalid Duration = math.MinInt64
	Infinity        Duration = math.MaxInt64

	DomainDefault DomainID = 0xffffffff

	MinPseudoHandle Entity = 0x7fff0000

	BuiltinTopicDCPSParticipant  = MinPseudoHandle + 1
	BuiltinTopicDCPSTopic        = MinPseudoHandle + 2
	BuiltinTopicDCPSPublication  = MinPseudoHandle + 3
	BuiltinTopicDCPSSubscription = MinPseudoHandle + 4

	// CycloneDDSHandle represents the library itself.
	CycloneDDSHandle = MinPseudoHandle + 256
)

// HistoryKind is a dds_history_kind_t.
type HistoryKind uint32

const (
	HistoryKeepLast HistoryKind = 0
	HistoryKeepAll  HistoryKind = 1
)

// DurabilityKind is a dds_durability_kind_t.
type DurabilityKind uint32

const (
	DurabilityVolatile       DurabilityKind = 0
	DurabilityTransientLocal DurabilityKind = 1
	DurabilityTransient      DurabilityKind = 2
	DurabilityPersistent     DurabilityKind = 3
)

// ReliabilityKind is a dds_reliability_kind_t.
type ReliabilityKind uint32

const (
	ReliabilityBestEffort ReliabilityKind = 0
	ReliabilityReliable   ReliabilityKind = 1
)

//go:generate mockgen -source=abi.go -destination=mocks/mock_api.go -package=mocks API

// API is the subset of the native library used by the wrappers.
type API interface {
	CreateParticipant(domain DomainID, qos QoSPtr, listener ListenerPtr) Entity
	CreateTopic(participant Entity, descriptor TopicDescriptor, name CString, qos QoSPtr, listener ListenerPtr) Entity
	Delete(entity Entity) ReturnCode

	CreateQoS() QoSPtr
	CopyQoS(dst, src QoSPtr) ReturnCode
	QoSEqual(a, b QoSPtr) bool
	ResetQoS(qos QoSPtr)
	DeleteQoS(qos QoSPtr)

	QsetHistory(qos QoSPtr, kind HistoryKind, depth int32)
	QsetDurability(qos QoSPtr, kind DurabilityKind)
	QsetReliability(qos QoSPtr, kind ReliabilityKind, maxBlockingTime Duration)
	// QsetPartition receives the pointer array as a slice; len(partitions)
	// equals n and a zero-length call passes a nil slice.
	QsetPartition(qos QoSPtr, n uint32, partitions []CString)

	QgetHistory(qos QoSPtr) (kind HistoryKind, depth int32, ok bool)
	QgetDurability(qos QoSPtr) (kind DurabilityKind, ok bool)
	QgetReliability(qos QoSPtr) (kind ReliabilityKind, maxBlockingTime Duration, ok bool)
	QgetPartition(qos QoSPtr) (partitions []string, ok bool)

	CreateListener(arg uintptr) ListenerPtr
	CopyListener(dst, src ListenerPtr)
	MergeListener(dst, src ListenerPtr)
	ResetListener(listener ListenerPtr)
	DeleteListener(listener ListenerPtr)

	// NewCString allocates a native copy of s. It fails for strings with an
	// embedded NUL byte.
	NewCString(s string) (CString, error)
	FreeCString(s CString)
}

//go:build cyclonedds && cgo

package native

/*
#cgo LDFLAGS: -lddsc
#include <stdlib.h>
#include "dds/dds.h"
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"
)

// CycloneBackend is the registry name of the libddsc binding.
const CycloneBackend = "cyclonedds"

func init() {
	Register(CycloneBackend, func() (API, error) {
		return cyclone{}, nil
	})
}

// cyclone forwards every call to libddsc. Pointers cross the boundary as
// uintptr values; they reference C memory, which the Go collector never moves.
type cyclone struct{}

var _ API = cyclone{}

func qosPtr(q QoSPtr) *C.dds_qos_t {
	return (*C.dds_qos_t)(unsafe.Pointer(uintptr(q)))
}

func listenerPtr(l ListenerPtr) *C.dds_listener_t {
	return (*C.dds_listener_t)(unsafe.Pointer(uintptr(l)))
}

func (cyclone) CreateParticipant(domain DomainID, qos QoSPtr, listener ListenerPtr) Entity {
	return Entity(C.dds_create_participant(C.dds_domainid_t(domain), qosPtr(qos), listenerPtr(listener)))
}

func (cyclone) CreateTopic(participant Entity, descriptor TopicDescriptor, name CString, qos QoSPtr, listener ListenerPtr) Entity {
	return Entity(C.dds_create_topic(
		C.dds_entity_t(participant),
		(*C.dds_topic_descriptor_t)(unsafe.Pointer(uintptr(descriptor))),
		(*C.char)(unsafe.Pointer(uintptr(name))),
		qosPtr(qos),
		listenerPtr(listener),
	))
}

func (cyclone) Delete(entity Entity) ReturnCode {
	return ReturnCode(C.dds_delete(C.dds_entity_t(entity)))
}

func (cyclone) CreateQoS() QoSPtr {
	return QoSPtr(unsafe.Pointer(C.dds_create_qos()))
}

func (cyclone) CopyQoS(dst, src QoSPtr) ReturnCode {
	return ReturnCode(C.dds_copy_qos(qosPtr(dst), qosPtr(src)))
}

func (cyclone) QoSEqual(a, b QoSPtr) bool {
	return bool(C.dds_qos_equal(qosPtr(a), qosPtr(b)))
}

func (cyclone) ResetQoS(qos QoSPtr) {
	C.dds_reset_qos(qosPtr(qos))
}

func (cyclone) DeleteQoS(qos QoSPtr) {
	C.dds_delete_qos(qosPtr(qos))
}

func (cyclone) QsetHistory(qos QoSPtr, kind HistoryKind, depth int32) {
	C.dds_qset_history(qosPtr(qos), C.dds_history_kind_t(kind), C.int32_t(depth))
}

func (cyclone) QsetDurability(qos QoSPtr, kind DurabilityKind) {
	C.dds_qset_durability(qosPtr(qos), C.dds_durability_kind_t(kind))
}

func (cyclone) QsetReliability(qos QoSPtr, kind ReliabilityKind, maxBlockingTime Duration) {
	C.dds_qset_reliability(qosPtr(qos), C.dds_reliability_kind_t(kind), C.dds_duration_t(maxBlockingTime))
}

func (cyclone) QsetPartition(qos QoSPtr, n uint32, partitions []CString) {
	if n == 0 {
		C.dds_qset_partition(qosPtr(qos), 0, nil)
		return
	}

	arr := (**C.char)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(uintptr(0)))))
	defer C.free(unsafe.Pointer(arr))

	slots := unsafe.Slice(arr, n)
	for i, p := range partitions {
		slots[i] = (*C.char)(unsafe.Pointer(uintptr(p)))
	}
	C.dds_qset_partition(qosPtr(qos), C.uint32_t(n), arr)
}

func (cyclone) QgetHistory(qos QoSPtr) (HistoryKind, int32, bool) {
	var kind C.dds_history_kind_t
	var depth C.int32_t
	ok := C.dds_qget_history(qosPtr(qos), &kind, &depth)
	return HistoryKind(kind), int32(depth), bool(ok)
}

func (cyclone) QgetDurability(qos QoSPtr) (DurabilityKind, bool) {
	var kind C.dds_durability_kind_t
	ok := C.dds_qget_durability(qosPtr(qos), &kind)
	return DurabilityKind(kind), bool(ok)
}

func (cyclone) QgetReliability(qos QoSPtr) (ReliabilityKind, Duration, bool) {
	var kind C.dds_reliability_kind_t
	var blocking C.dds_duration_t
	ok := C.dds_qget_reliability(qosPtr(qos), &kind, &blocking)
	return ReliabilityKind(kind), Duration(blocking), bool(ok)
}

func (cyclone) QgetPartition(qos QoSPtr) ([]string, bool) {
	var n C.uint32_t
	var ps **C.char
	if !bool(C.dds_qget_partition(qosPtr(qos), &n, &ps)) {
		return nil, false
	}
	if ps == nil {
		return []string{}, true
	}
	defer C.dds_free(unsafe.Pointer(ps))

	out := make([]string, 0, int(n))
	for _, p := range unsafe.Slice(ps, n) {
		out = append(out, C.GoString(p))
		C.dds_free(unsafe.Pointer(p))
	}
	return out, true
}

func (cyclone) CreateListener(arg uintptr) ListenerPtr {
	return ListenerPtr(unsafe.Pointer(C.dds_create_listener(unsafe.Pointer(arg))))
}

func (cyclone) CopyListener(dst, src ListenerPtr) {
	C.dds_copy_listener(listenerPtr(dst), listenerPtr(src))
}

func (cyclone) MergeListener(dst, src ListenerPtr) {
	C.dds_merge_listener(listenerPtr(dst), listenerPtr(src))
}

func (cyclone) ResetListener(listener ListenerPtr) {
	C.dds_reset_listener(listenerPtr(listener))
}

func (cyclone) DeleteListener(listener ListenerPtr) {
	C.dds_delete_listener(listenerPtr(listener))
}

func (cyclone) NewCString(s string) (CString, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return 0, fmt.Errorf("native: string %q contains a NUL byte at offset %d", s, i)
	}
	return CString(unsafe.Pointer(C.CString(s))), nil
}

func (cyclone) FreeCString(s CString) {
	C.free(unsafe.Pointer(uintptr(s)))
}

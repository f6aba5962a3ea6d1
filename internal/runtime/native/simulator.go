package native

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// MaxDomainID is the largest explicit domain id accepted by the library.
const MaxDomainID DomainID = 230

// Op names a simulator operation that can be made to fail with FailNext.
type Op string

const (
	OpCreateParticipant Op = "create_participant"
	OpCreateTopic       Op = "create_topic"
	OpCreateQoS         Op = "create_qos"
	OpCopyQoS           Op = "copy_qos"
	OpCreateListener    Op = "create_listener"
	OpNewCString        Op = "new_cstring"
)

// Status identifies a listener callback slot.
type Status uint32

const (
	StatusInconsistentTopic Status = iota
	StatusOfferedDeadlineMissed
	StatusRequestedDeadlineMissed
	StatusSampleLost
	StatusSampleRejected
	StatusDataOnReaders
	StatusDataAvailable
	StatusLivelinessLost
	StatusLivelinessChanged
	StatusPublicationMatched
	StatusSubscriptionMatched
)

// EntityKind distinguishes simulated entities.
type EntityKind string

const (
	EntityParticipant EntityKind = "participant"
	EntityTopic       EntityKind = "topic"
)

// EntityInfo is a snapshot of a simulated entity.
type EntityInfo struct {
	Kind       EntityKind
	Domain     DomainID
	Parent     Entity
	Name       string
	TypeName   string
	Descriptor TopicDescriptor
	Listener   bool
}

// StringStats counts transient string buffers.
type StringStats struct {
	Allocated int
	Freed     int
	Live      int
}

type simHistory struct {
	kind  HistoryKind
	depth int32
}

type simReliability struct {
	kind            ReliabilityKind
	maxBlockingTime Duration
}

type simQoS struct {
	history      *simHistory
	durability   *DurabilityKind
	reliability  *simReliability
	partition    []string
	hasPartition bool
}

func (q *simQoS) clone() *simQoS {
	out := &simQoS{hasPartition: q.hasPartition}
	if q.history != nil {
		h := *q.history
		out.history = &h
	}
	if q.durability != nil {
		d := *q.durability
		out.durability = &d
	}
	if q.reliability != nil {
		r := *q.reliability
		out.reliability = &r
	}
	if q.partition != nil {
		out.partition = append([]string(nil), q.partition...)
	}
	return out
}

func (q *simQoS) equal(o *simQoS) bool {
	if (q.history == nil) != (o.history == nil) || (q.history != nil && *q.history != *o.history) {
		return false
	}
	if (q.durability == nil) != (o.durability == nil) || (q.durability != nil && *q.durability != *o.durability) {
		return false
	}
	if (q.reliability == nil) != (o.reliability == nil) || (q.reliability != nil && *q.reliability != *o.reliability) {
		return false
	}
	if q.hasPartition != o.hasPartition || len(q.partition) != len(o.partition) {
		return false
	}
	for i := range q.partition {
		if q.partition[i] != o.partition[i] {
			return false
		}
	}
	return true
}

type simEntity struct {
	info EntityInfo
	qos  *simQoS
}

type simListener struct {
	arg       uintptr
	callbacks map[Status]uintptr
}

// Simulator is an in-process model of the native library. It keeps the same
// handle, sentinel and return-code conventions and validates arguments the
// way the C library does, which makes it usable as a default backend and as
// the allocation tracker in tests. All methods are safe for concurrent use.
type Simulator struct {
	mu sync.Mutex

	nextEntity Entity
	nextPtr    uintptr

	entities    map[Entity]*simEntity
	deleted     map[Entity]struct{}
	qos         map[QoSPtr]*simQoS
	listeners   map[ListenerPtr]*simListener
	strings     map[CString]string
	descriptors map[TopicDescriptor]string
	faults      map[Op][]ReturnCode

	stringStats    StringStats
	partitionCalls int
}

var _ API = (*Simulator)(nil)

// NewSimulator returns an empty simulated library.
func NewSimulator() *Simulator {
	return &Simulator{
		nextEntity:  1,
		nextPtr:     0x1000,
		entities:    make(map[Entity]*simEntity),
		deleted:     make(map[Entity]struct{}),
		qos:         make(map[QoSPtr]*simQoS),
		listeners:   make(map[ListenerPtr]*simListener),
		strings:     make(map[CString]string),
		descriptors: make(map[TopicDescriptor]string),
		faults:      make(map[Op][]ReturnCode),
	}
}

// RegisterDescriptor returns a topic descriptor for typeName, as a generated
// type support library would provide it.
func (s *Simulator) RegisterDescriptor(typeName string) TopicDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	for desc, name := range s.descriptors {
		if name == typeName {
			return desc
		}
	}
	desc := TopicDescriptor(s.allocPtr())
	s.descriptors[desc] = typeName
	return desc
}

// FailNext makes the next call of op fail with code. Calls queue up.
func (s *Simulator) FailNext(op Op, code ReturnCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = append(s.faults[op], code)
}

func (s *Simulator) takeFault(op Op) (ReturnCode, bool) {
	queue := s.faults[op]
	if len(queue) == 0 {
		return 0, false
	}
	code := queue[0]
	s.faults[op] = queue[1:]
	return code, true
}

func (s *Simulator) allocPtr() uintptr {
	s.nextPtr += 0x10
	return s.nextPtr
}

func (s *Simulator) allocEntity(info EntityInfo, qos *simQoS) Entity {
	e := s.nextEntity
	s.nextEntity++
	s.entities[e] = &simEntity{info: info, qos: qos}
	return e
}

// checkQoS validates the optional QoS argument of an entity creation call and
// returns a private copy of it.
func (s *Simulator) checkQoS(ptr QoSPtr) (*simQoS, ReturnCode) {
	if ptr == 0 {
		return &simQoS{}, RetcodeOK
	}
	q, ok := s.qos[ptr]
	if !ok {
		return nil, RetcodeBadParameter
	}
	if q.history != nil && q.history.kind == HistoryKeepLast && q.history.depth < 1 {
		return nil, RetcodeInconsistentPolicy
	}
	if q.reliability != nil && q.reliability.maxBlockingTime < 0 {
		return nil, RetcodeBadParameter
	}
	return q.clone(), RetcodeOK
}

func (s *Simulator) checkListener(ptr ListenerPtr) bool {
	if ptr == 0 {
		return true
	}
	_, ok := s.listeners[ptr]
	return ok
}

// CreateParticipant implements API.
func (s *Simulator) CreateParticipant(domain DomainID, qos QoSPtr, listener ListenerPtr) Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.takeFault(OpCreateParticipant); ok {
		return Entity(code)
	}
	if domain != DomainDefault && domain > MaxDomainID {
		return Entity(RetcodeBadParameter)
	}
	q, rc := s.checkQoS(qos)
	if rc != RetcodeOK {
		return Entity(rc)
	}
	if !s.checkListener(listener) {
		return Entity(RetcodeBadParameter)
	}
	if domain == DomainDefault {
		domain = 0
	}
	return s.allocEntity(EntityInfo{
		Kind:     EntityParticipant,
		Domain:   domain,
		Listener: listener != 0,
	}, q)
}

// CreateTopic implements API.
func (s *Simulator) CreateTopic(participant Entity, descriptor TopicDescriptor, name CString, qos QoSPtr, listener ListenerPtr) Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.takeFault(OpCreateTopic); ok {
		return Entity(code)
	}
	parent, ok := s.entities[participant]
	if !ok {
		if _, gone := s.deleted[participant]; gone {
			return Entity(RetcodeAlreadyDeleted)
		}
		return Entity(RetcodeBadParameter)
	}
	if parent.info.Kind != EntityParticipant {
		return Entity(RetcodeIllegalOperation)
	}
	typeName, ok := s.descriptors[descriptor]
	if !ok {
		return Entity(RetcodeBadParameter)
	}
	topicName, ok := s.strings[name]
	if !ok {
		panic(fmt.Sprintf("native: topic name %#x is not a live string buffer", uintptr(name)))
	}
	if !validTopicName(topicName) {
		return Entity(RetcodeBadParameter)
	}
	for _, ent := range s.entities {
		if ent.info.Kind == EntityTopic && ent.info.Parent == participant && ent.info.Name == topicName && ent.info.TypeName != typeName {
			return Entity(RetcodePreconditionNotMet)
		}
	}
	q, rc := s.checkQoS(qos)
	if rc != RetcodeOK {
		return Entity(rc)
	}
	if !s.checkListener(listener) {
		return Entity(RetcodeBadParameter)
	}
	return s.allocEntity(EntityInfo{
		Kind:       EntityTopic,
		Domain:     parent.info.Domain,
		Parent:     participant,
		Name:       topicName,
		TypeName:   typeName,
		Descriptor: descriptor,
		Listener:   listener != 0,
	}, q)
}

func validTopicName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune("*?[]{}\"'", r) {
			return false
		}
	}
	return true
}

// Delete implements API. Deleting a participant deletes its topics.
func (s *Simulator) Delete(entity Entity) ReturnCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entity >= MinPseudoHandle {
		return RetcodeIllegalOperation
	}
	ent, ok := s.entities[entity]
	if !ok {
		if _, gone := s.deleted[entity]; gone {
			return RetcodeAlreadyDeleted
		}
		return RetcodeBadParameter
	}
	if ent.info.Kind == EntityParticipant {
		for child, c := range s.entities {
			if c.info.Parent == entity {
				delete(s.entities, child)
				s.deleted[child] = struct{}{}
			}
		}
	}
	delete(s.entities, entity)
	s.deleted[entity] = struct{}{}
	return RetcodeOK
}

// CreateQoS implements API. It returns 0 when allocation fails.
func (s *Simulator) CreateQoS() QoSPtr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.takeFault(OpCreateQoS); ok {
		return 0
	}
	ptr := QoSPtr(s.allocPtr())
	s.qos[ptr] = &simQoS{}
	return ptr
}

// CopyQoS implements API.
func (s *Simulator) CopyQoS(dst, src QoSPtr) ReturnCode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.takeFault(OpCopyQoS); ok {
		return code
	}
	from, ok := s.qos[src]
	if !ok {
		return RetcodeBadParameter
	}
	if _, ok := s.qos[dst]; !ok {
		return RetcodeBadParameter
	}
	s.qos[dst] = from.clone()
	return RetcodeOK
}

// QoSEqual implements API.
func (s *Simulator) QoSEqual(a, b QoSPtr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a == 0 || b == 0 {
		return a == b
	}
	qa, okA := s.qos[a]
	qb, okB := s.qos[b]
	if !okA || !okB {
		return false
	}
	return qa.equal(qb)
}

// ResetQoS implements API.
func (s *Simulator) ResetQoS(qos QoSPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.qos[qos]; ok {
		s.qos[qos] = &simQoS{}
	}
}

// DeleteQoS implements API.
func (s *Simulator) DeleteQoS(qos QoSPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qos == 0 {
		return
	}
	if _, ok := s.qos[qos]; !ok {
		panic(fmt.Sprintf("native: double free of qos %#x", uintptr(qos)))
	}
	delete(s.qos, qos)
}

func (s *Simulator) mustQoS(ptr QoSPtr) *simQoS {
	q, ok := s.qos[ptr]
	if !ok {
		panic(fmt.Sprintf("native: qos %#x is not allocated", uintptr(ptr)))
	}
	return q
}

// QsetHistory implements API.
func (s *Simulator) QsetHistory(qos QoSPtr, kind HistoryKind, depth int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustQoS(qos).history = &simHistory{kind: kind, depth: depth}
}

// QsetDurability implements API.
func (s *Simulator) QsetDurability(qos QoSPtr, kind DurabilityKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustQoS(qos).durability = &kind
}

// QsetReliability implements API.
func (s *Simulator) QsetReliability(qos QoSPtr, kind ReliabilityKind, maxBlockingTime Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustQoS(qos).reliability = &simReliability{kind: kind, maxBlockingTime: maxBlockingTime}
}

// QsetPartition implements API. Every element must be a live string buffer.
func (s *Simulator) QsetPartition(qos QoSPtr, n uint32, partitions []CString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.mustQoS(qos)
	if int(n) != len(partitions) {
		panic(fmt.Sprintf("native: partition count %d does not match array length %d", n, len(partitions)))
	}
	names := make([]string, 0, n)
	for _, ptr := range partitions {
		name, ok := s.strings[ptr]
		if !ok {
			panic(fmt.Sprintf("native: partition %#x is not a live string buffer", uintptr(ptr)))
		}
		names = append(names, name)
	}
	q.partition = names
	q.hasPartition = true
	s.partitionCalls++
}

// QgetHistory implements API.
func (s *Simulator) QgetHistory(qos QoSPtr) (HistoryKind, int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.mustQoS(qos)
	if q.history == nil {
		return 0, 0, false
	}
	return q.history.kind, q.history.depth, true
}

// QgetDurability implements API.
func (s *Simulator) QgetDurability(qos QoSPtr) (DurabilityKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.mustQoS(qos)
	if q.durability == nil {
		return 0, false
	}
	return *q.durability, true
}

// QgetReliability implements API.
func (s *Simulator) QgetReliability(qos QoSPtr) (ReliabilityKind, Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.mustQoS(qos)
	if q.reliability == nil {
		return 0, 0, false
	}
	return q.reliability.kind, q.reliability.maxBlockingTime, true
}

// QgetPartition implements API.
func (s *Simulator) QgetPartition(qos QoSPtr) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.mustQoS(qos)
	if !q.hasPartition {
		return nil, false
	}
	return append([]string{}, q.partition...), true
}

// CreateListener implements API. It returns 0 when allocation fails.
func (s *Simulator) CreateListener(arg uintptr) ListenerPtr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.takeFault(OpCreateListener); ok {
		return 0
	}
	ptr := ListenerPtr(s.allocPtr())
	s.listeners[ptr] = &simListener{arg: arg, callbacks: make(map[Status]uintptr)}
	return ptr
}

func (s *Simulator) mustListener(ptr ListenerPtr) *simListener {
	l, ok := s.listeners[ptr]
	if !ok {
		panic(fmt.Sprintf("native: listener %#x is not allocated", uintptr(ptr)))
	}
	return l
}

// CopyListener implements API.
func (s *Simulator) CopyListener(dst, src ListenerPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.mustListener(src)
	to := s.mustListener(dst)
	to.arg = from.arg
	to.callbacks = make(map[Status]uintptr, len(from.callbacks))
	for st, cb := range from.callbacks {
		to.callbacks[st] = cb
	}
}

// MergeListener implements API: callbacks set in src but unset in dst are
// copied over.
func (s *Simulator) MergeListener(dst, src ListenerPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.mustListener(src)
	to := s.mustListener(dst)
	for st, cb := range from.callbacks {
		if _, ok := to.callbacks[st]; !ok {
			to.callbacks[st] = cb
		}
	}
}

// ResetListener implements API.
func (s *Simulator) ResetListener(listener ListenerPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustListener(listener).callbacks = make(map[Status]uintptr)
}

// DeleteListener implements API.
func (s *Simulator) DeleteListener(listener ListenerPtr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if listener == 0 {
		return
	}
	if _, ok := s.listeners[listener]; !ok {
		panic(fmt.Sprintf("native: double free of listener %#x", uintptr(listener)))
	}
	delete(s.listeners, listener)
}

// SetListenerCallback installs a callback address for status, the way the
// dds_lset_* family does.
func (s *Simulator) SetListenerCallback(listener ListenerPtr, status Status, callback uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustListener(listener).callbacks[status] = callback
}

// ListenerCallbacks returns a copy of the callback table of listener.
func (s *Simulator) ListenerCallbacks(listener ListenerPtr) map[Status]uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.mustListener(listener)
	out := make(map[Status]uintptr, len(l.callbacks))
	for st, cb := range l.callbacks {
		out[st] = cb
	}
	return out
}

// NewCString implements API.
func (s *Simulator) NewCString(str string) (CString, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code, ok := s.takeFault(OpNewCString); ok {
		return 0, fmt.Errorf("native: string allocation failed: code=%d", code)
	}
	if i := strings.IndexByte(str, 0); i >= 0 {
		return 0, fmt.Errorf("native: string %q contains a NUL byte at offset %d", str, i)
	}
	ptr := CString(s.allocPtr())
	s.strings[ptr] = str
	s.stringStats.Allocated++
	s.stringStats.Live++
	return ptr, nil
}

// FreeCString implements API. Freeing a buffer twice panics, as it would
// corrupt the C heap.
func (s *Simulator) FreeCString(str CString) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.strings[str]; !ok {
		panic(fmt.Sprintf("native: double free of string buffer %#x", uintptr(str)))
	}
	delete(s.strings, str)
	s.stringStats.Freed++
	s.stringStats.Live--
}

// Strings reports transient string buffer accounting.
func (s *Simulator) Strings() StringStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stringStats
}

// PartitionCalls reports how many times QsetPartition ran.
func (s *Simulator) PartitionCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partitionCalls
}

// Entity returns a snapshot of a live entity.
func (s *Simulator) Entity(e Entity) (EntityInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.entities[e]
	if !ok {
		return EntityInfo{}, false
	}
	return ent.info, true
}

// LiveEntities reports the number of entities not yet deleted.
func (s *Simulator) LiveEntities() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// LiveQoS reports the number of allocated QoS blocks.
func (s *Simulator) LiveQoS() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.qos)
}

// LiveListeners reports the number of allocated listeners.
func (s *Simulator) LiveListeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

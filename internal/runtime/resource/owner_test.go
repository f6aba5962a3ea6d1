package resource

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/native"
)

type OwnerSuite struct {
	suite.Suite

	mu      sync.Mutex
	created []hooks.Event
	deleted []hooks.Event
	failed  []hooks.Event
	env     Env
}

func TestOwnerSuite(t *testing.T) {
	suite.Run(t, new(OwnerSuite))
}

func (s *OwnerSuite) SetupTest() {
	s.created, s.deleted, s.failed = nil, nil, nil
	s.env = NewEnv(native.NewSimulator())
	s.env.Hooks = hooks.Hooks{
		OnCreate: func(e hooks.Event) { s.record(&s.created, e) },
		OnDelete: func(e hooks.Event) { s.record(&s.deleted, e) },
		OnError:  func(e hooks.Event, _ error) { s.record(&s.failed, e) },
	}
}

func (s *OwnerSuite) record(dst *[]hooks.Event, e hooks.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = append(*dst, e)
}

func (s *OwnerSuite) counts() (created, deleted, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created), len(s.deleted), len(s.failed)
}

func (s *OwnerSuite) TestEnvValidate() {
	s.Require().ErrorIs(Env{}.Validate(), errspkg.ErrAPIRequired)
	s.Require().NoError(s.env.Validate())
	s.Require().NotNil(Env{}.Log())
}

func (s *OwnerSuite) TestAdoptFiresCreateAndAssignsID() {
	owner := Adopt(s.env, hooks.KindTopic, native.Entity(17), func(native.Entity) error { return nil },
		hooks.Event{Handle: 17, Name: "Square"})
	defer owner.Close()

	s.Require().Regexp(`^topic-[0-9A-Z]{26}$`, owner.ID())
	s.Equal(hooks.KindTopic, owner.Kind())
	s.Equal(native.Entity(17), owner.Handle())
	s.False(owner.Closed())
	s.NoError(owner.Check())

	s.Require().Len(s.created, 1)
	s.Equal(owner.ID(), s.created[0].ID)
	s.Equal(hooks.KindTopic, s.created[0].Kind)
	s.Equal(hooks.OpCreate, s.created[0].Op)
	s.Equal("Square", s.created[0].Name)
}

func (s *OwnerSuite) TestCloseIsIdempotent() {
	var calls atomic.Int32
	owner := Adopt(s.env, hooks.KindQoS, native.QoSPtr(1), func(native.QoSPtr) error {
		calls.Add(1)
		return nil
	}, hooks.Event{})

	owner.Close()
	owner.Close()
	owner.Close()

	s.Equal(int32(1), calls.Load())
	s.True(owner.Closed())
	s.ErrorIs(owner.Check(), errspkg.ErrClosed)
	_, deleted, failed := s.counts()
	s.Equal(1, deleted)
	s.Zero(failed)
	s.Equal(hooks.OpDelete, s.deleted[0].Op)
}

func (s *OwnerSuite) TestDeleteFailureGoesToHooks() {
	_, nativeErr := errspkg.Classify(int32(native.RetcodeBadParameter))
	owner := Adopt(s.env, hooks.KindParticipant, native.Entity(3), func(native.Entity) error {
		return nativeErr
	}, hooks.Event{Handle: 3})

	owner.Close()

	_, deleted, failed := s.counts()
	s.Zero(deleted)
	s.Require().Equal(1, failed)
	s.Equal(hooks.OpDelete, s.failed[0].Op)
	s.Equal(int32(native.RetcodeBadParameter), s.failed[0].Code)
	s.True(owner.Closed())
}

func (s *OwnerSuite) TestAlreadyDeletedCountsAsDeleted() {
	_, gone := errspkg.Classify(int32(native.RetcodeAlreadyDeleted))
	owner := Adopt(s.env, hooks.KindTopic, native.Entity(4), func(native.Entity) error { return gone }, hooks.Event{})

	owner.Close()

	_, deleted, failed := s.counts()
	s.Equal(1, deleted)
	s.Zero(failed)
}

func (s *OwnerSuite) TestCleanupReleasesUnreachableOwner() {
	var calls, deleted atomic.Int32
	// Owners leaked by other tests may be released by the same GC cycle, so
	// only events for this resource are counted.
	env := s.env
	env.Hooks = hooks.Hooks{OnDelete: func(e hooks.Event) {
		if e.Name == "unreachable" {
			deleted.Add(1)
		}
	}}

	func() {
		owner := Adopt(env, hooks.KindListener, native.ListenerPtr(9), func(native.ListenerPtr) error {
			calls.Add(1)
			return nil
		}, hooks.Event{Name: "unreachable"})
		_ = owner.ID()
	}()

	s.Eventually(func() bool {
		runtime.GC()
		return calls.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)

	s.Eventually(func() bool {
		return deleted.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func (s *OwnerSuite) TestClosedOwnerIsNotReleasedAgainByCleanup() {
	var calls atomic.Int32
	func() {
		owner := Adopt(s.env, hooks.KindQoS, native.QoSPtr(5), func(native.QoSPtr) error {
			calls.Add(1)
			return nil
		}, hooks.Event{})
		owner.Close()
	}()

	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	s.Equal(int32(1), calls.Load())
}

func (s *OwnerSuite) TestEnvFailFillsCodeAndOp() {
	_, nativeErr := errspkg.Classify(int32(native.RetcodePreconditionNotMet))
	s.env.Fail(hooks.Event{Kind: hooks.KindTopic, Name: "Square"}, nativeErr)
	s.env.Fail(hooks.Event{Kind: hooks.KindTopic}, errors.New("plain"))

	_, _, failed := s.counts()
	s.Require().Equal(2, failed)
	s.Equal(hooks.OpCreate, s.failed[0].Op)
	s.Equal(int32(native.RetcodePreconditionNotMet), s.failed[0].Code)
	s.Zero(s.failed[1].Code)
}

func (s *OwnerSuite) TestWithHooksAppends() {
	var extra int
	env := s.env.WithHooks(hooks.Hooks{OnCreate: func(hooks.Event) { extra++ }})
	Adopt(env, hooks.KindQoS, native.QoSPtr(2), func(native.QoSPtr) error { return nil }, hooks.Event{}).Close()

	created, _, _ := s.counts()
	s.Equal(1, created)
	s.Equal(1, extra)
}

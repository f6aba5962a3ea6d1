package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/drblury/ddsc/internal/runtime/duration"
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/listener"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/native/mocks"
	"github.com/drblury/ddsc/internal/runtime/qos"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

type recorder struct {
	created, deleted []hooks.Event
	failed           []hooks.Event
}

func (r *recorder) hooks() hooks.Hooks {
	return hooks.Hooks{
		OnCreate: func(e hooks.Event) { r.created = append(r.created, e) },
		OnDelete: func(e hooks.Event) { r.deleted = append(r.deleted, e) },
		OnError:  func(e hooks.Event, _ error) { r.failed = append(r.failed, e) },
	}
}

func simEnv(t *testing.T) (resource.Env, *native.Simulator, *recorder) {
	t.Helper()
	sim := native.NewSimulator()
	rec := &recorder{}
	env := resource.NewEnv(sim)
	env.Hooks = rec.hooks()
	return env, sim, rec
}

func TestDomain(t *testing.T) {
	var zero Domain
	assert.Equal(t, native.DomainDefault, zero.Raw())
	assert.True(t, zero.IsDefault())
	assert.Equal(t, "default", zero.String())
	_, ok := zero.ID()
	assert.False(t, ok)

	d := DomainID(7)
	assert.Equal(t, native.DomainID(7), d.Raw())
	n, ok := d.ID()
	assert.True(t, ok)
	assert.Equal(t, uint32(7), n)
	assert.Equal(t, "7", d.String())

	for in, want := range map[string]Domain{"": zero, "default": zero, "DEFAULT": zero, " 42 ": DomainID(42)} {
		got, err := ParseDomain(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDomain("-1")
	assert.Error(t, err)
	_, err = ParseDomain("4294967296")
	assert.Error(t, err)

	var fromText Domain
	require.NoError(t, fromText.UnmarshalText([]byte("3")))
	assert.Equal(t, DomainID(3), fromText)
	text, err := fromText.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "3", string(text))
}

func TestParticipantLifecycle(t *testing.T) {
	env, sim, rec := simEnv(t)

	p, err := NewParticipant(env, DefaultDomain(), nil, nil)
	require.NoError(t, err)
	assert.Positive(t, int32(p.Handle()))
	assert.Regexp(t, `^participant-`, p.ID())

	info, ok := sim.Entity(p.Handle())
	require.True(t, ok)
	assert.Equal(t, native.EntityParticipant, info.Kind)
	assert.Equal(t, native.DomainID(0), info.Domain)

	require.Len(t, rec.created, 1)
	assert.Equal(t, int32(p.Handle()), rec.created[0].Handle)

	p.Close()
	p.Close()
	assert.True(t, p.Closed())
	assert.Zero(t, sim.LiveEntities())
	assert.Len(t, rec.deleted, 1)
	assert.Empty(t, rec.failed)
}

func TestParticipantWithQoSAndListener(t *testing.T) {
	env, sim, _ := simEnv(t)
	q, err := qos.New(env)
	require.NoError(t, err)
	defer q.Close()
	q.History(qos.KeepLast(3))
	l, err := listener.New(env)
	require.NoError(t, err)
	defer l.Close()

	p, err := NewParticipant(env, DomainID(5), q, l)
	require.NoError(t, err)
	defer p.Close()

	info, _ := sim.Entity(p.Handle())
	assert.Equal(t, native.DomainID(5), info.Domain)
	assert.True(t, info.Listener)
	assert.Equal(t, DomainID(5), p.Domain())
}

func TestParticipantCreationFailures(t *testing.T) {
	t.Run("domain out of range", func(t *testing.T) {
		env, sim, rec := simEnv(t)
		p, err := NewParticipant(env, DomainID(uint32(native.MaxDomainID)+1), nil, nil)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, errspkg.ErrBadParameter)
		assert.Zero(t, sim.LiveEntities())
		require.Len(t, rec.failed, 1)
		assert.Equal(t, int32(native.RetcodeBadParameter), rec.failed[0].Code)
		assert.Empty(t, rec.created)
	})

	t.Run("inconsistent qos", func(t *testing.T) {
		env, _, _ := simEnv(t)
		q, err := qos.New(env)
		require.NoError(t, err)
		defer q.Close()
		_, err = NewParticipant(env, DefaultDomain(), q.History(qos.KeepLast(0)), nil)
		assert.ErrorIs(t, err, errspkg.ErrInconsistentPolicy)
	})

	t.Run("invalid max blocking time is rejected natively", func(t *testing.T) {
		env, sim, rec := simEnv(t)
		q, err := qos.New(env)
		require.NoError(t, err)
		defer q.Close()
		q.Reliability(qos.Reliable(duration.Invalid()))
		require.NoError(t, q.Err())

		_, err = NewParticipant(env, DefaultDomain(), q, nil)
		assert.ErrorIs(t, err, errspkg.ErrBadParameter)
		assert.Zero(t, sim.LiveEntities())
		require.Len(t, rec.failed, 1)
	})

	t.Run("qos with setter error is rejected early", func(t *testing.T) {
		env, sim, _ := simEnv(t)
		q, err := qos.New(env)
		require.NoError(t, err)
		defer q.Close()
		q.Durability(qos.Durability(99))

		_, err = NewParticipant(env, DefaultDomain(), q, nil)
		assert.ErrorContains(t, err, "invalid durability")
		assert.Zero(t, sim.LiveEntities())
	})

	t.Run("closed qos and listener", func(t *testing.T) {
		env, _, _ := simEnv(t)
		q, err := qos.New(env)
		require.NoError(t, err)
		q.Close()
		_, err = NewParticipant(env, DefaultDomain(), q, nil)
		assert.ErrorIs(t, err, errspkg.ErrClosed)

		l, err := listener.New(env)
		require.NoError(t, err)
		l.Close()
		_, err = NewParticipant(env, DefaultDomain(), nil, l)
		assert.ErrorIs(t, err, errspkg.ErrClosed)
	})

	t.Run("missing api", func(t *testing.T) {
		_, err := NewParticipant(resource.Env{}, DefaultDomain(), nil, nil)
		assert.ErrorIs(t, err, errspkg.ErrAPIRequired)
	})
}

func TestTopicLifecycle(t *testing.T) {
	env, sim, rec := simEnv(t)
	desc := sim.RegisterDescriptor("ShapeType")

	p, err := NewParticipant(env, DomainID(1), nil, nil)
	require.NoError(t, err)
	defer p.Close()

	topic, err := NewTopic(env, p, desc, "Square", nil, nil)
	require.NoError(t, err)
	assert.Same(t, p, topic.Participant())
	assert.Equal(t, "Square", topic.Name())
	assert.Equal(t, desc, topic.Descriptor())
	assert.Regexp(t, `^topic-`, topic.ID())

	info, ok := sim.Entity(topic.Handle())
	require.True(t, ok)
	assert.Equal(t, native.EntityTopic, info.Kind)
	assert.Equal(t, p.Handle(), info.Parent)
	assert.Equal(t, "Square", info.Name)

	stats := sim.Strings()
	assert.Zero(t, stats.Live)
	assert.Equal(t, 1, stats.Freed)

	require.Len(t, rec.created, 2)
	assert.Equal(t, p.ID(), rec.created[1].ParentID)
	assert.Equal(t, "Square", rec.created[1].Name)

	topic.Close()
	topic.Close()
	_, ok = sim.Entity(topic.Handle())
	assert.False(t, ok)
}

func TestTopicCreationFailures(t *testing.T) {
	env, sim, rec := simEnv(t)
	desc := sim.RegisterDescriptor("ShapeType")
	other := sim.RegisterDescriptor("OtherType")
	p, err := NewParticipant(env, DefaultDomain(), nil, nil)
	require.NoError(t, err)
	defer p.Close()

	existing, err := NewTopic(env, p, desc, "Square", nil, nil)
	require.NoError(t, err)
	defer existing.Close()

	tests := []struct {
		name   string
		desc   native.TopicDescriptor
		topic  string
		target error
	}{
		{"invalid characters", desc, "bad*name", errspkg.ErrBadParameter},
		{"unknown descriptor", native.TopicDescriptor(0xdead), "Circle", errspkg.ErrBadParameter},
		{"type conflict", other, "Square", errspkg.ErrPreconditionNotMet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failedBefore := len(rec.failed)
			topic, err := NewTopic(env, p, tt.desc, tt.topic, nil, nil)
			assert.Nil(t, topic)
			assert.ErrorIs(t, err, tt.target)
			assert.Zero(t, sim.Strings().Live)
			assert.Len(t, rec.failed, failedBefore+1)
		})
	}

	t.Run("name with NUL never reaches the library", func(t *testing.T) {
		_, err := NewTopic(env, p, desc, "a\x00b", nil, nil)
		assert.Error(t, err)
		assert.Zero(t, sim.Strings().Live)
	})

	t.Run("argument checks", func(t *testing.T) {
		_, err := NewTopic(env, nil, desc, "x", nil, nil)
		assert.ErrorIs(t, err, errspkg.ErrParticipantRequired)
		_, err = NewTopic(env, p, 0, "x", nil, nil)
		assert.ErrorIs(t, err, errspkg.ErrDescriptorRequired)
		_, err = NewTopic(env, p, desc, "", nil, nil)
		assert.ErrorIs(t, err, errspkg.ErrNameRequired)
	})

	t.Run("deleted participant", func(t *testing.T) {
		gone, err := NewParticipant(env, DefaultDomain(), nil, nil)
		require.NoError(t, err)
		gone.Close()
		_, err = NewTopic(env, gone, desc, "x", nil, nil)
		assert.ErrorIs(t, err, errspkg.ErrClosed)
	})
}

func TestParticipantCloseCascadesToTopics(t *testing.T) {
	env, sim, rec := simEnv(t)
	desc := sim.RegisterDescriptor("ShapeType")
	p, err := NewParticipant(env, DefaultDomain(), nil, nil)
	require.NoError(t, err)
	topic, err := NewTopic(env, p, desc, "Square", nil, nil)
	require.NoError(t, err)

	p.Close()
	assert.Zero(t, sim.LiveEntities())

	topic.Close()
	assert.Empty(t, rec.failed)
	assert.Len(t, rec.deleted, 2)
}

func TestFailedParticipantIsNeverDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)

	api.EXPECT().
		CreateParticipant(native.DomainDefault, native.QoSPtr(0), native.ListenerPtr(0)).
		Return(native.Entity(native.RetcodeOutOfResources))
	api.EXPECT().Delete(gomock.Any()).Times(0)

	p, err := NewParticipant(resource.NewEnv(api), DefaultDomain(), nil, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, errspkg.ErrOutOfResources)
}

func TestFailedTopicFreesNameAndIsNeverDeleted(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	env := resource.NewEnv(api)

	const parent = native.Entity(100)
	const name = native.CString(0x500)
	const desc = native.TopicDescriptor(0x900)

	api.EXPECT().CreateParticipant(native.DomainID(2), native.QoSPtr(0), native.ListenerPtr(0)).Return(parent)
	p, err := NewParticipant(env, DomainID(2), nil, nil)
	require.NoError(t, err)

	gomock.InOrder(
		api.EXPECT().NewCString("Square").Return(name, nil),
		api.EXPECT().CreateTopic(parent, desc, name, native.QoSPtr(0), native.ListenerPtr(0)).
			Return(native.Entity(native.RetcodeAlreadyDeleted)),
		api.EXPECT().FreeCString(name),
	)

	topic, err := NewTopic(env, p, desc, "Square", nil, nil)
	assert.Nil(t, topic)
	assert.ErrorIs(t, err, errspkg.ErrAlreadyDeleted)

	api.EXPECT().Delete(parent).Return(native.RetcodeOK)
	p.Close()
}

func TestCStringAllocationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	env := resource.NewEnv(api)

	api.EXPECT().CreateParticipant(gomock.Any(), gomock.Any(), gomock.Any()).Return(native.Entity(1))
	p, err := NewParticipant(env, DefaultDomain(), nil, nil)
	require.NoError(t, err)

	boom := errors.New("no memory")
	api.EXPECT().NewCString("Square").Return(native.CString(0), boom)

	_, err = NewTopic(env, p, native.TopicDescriptor(1), "Square", nil, nil)
	assert.ErrorIs(t, err, boom)

	api.EXPECT().Delete(native.Entity(1)).Return(native.RetcodeOK)
	p.Close()
}

func TestDeleteFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	rec := &recorder{}
	env := resource.NewEnv(api)
	env.Hooks = rec.hooks()

	api.EXPECT().CreateParticipant(gomock.Any(), gomock.Any(), gomock.Any()).Return(native.Entity(8))
	p, err := NewParticipant(env, DefaultDomain(), nil, nil)
	require.NoError(t, err)

	api.EXPECT().Delete(native.Entity(8)).Return(native.RetcodeError).Times(1)
	p.Close()
	p.Close()

	require.Len(t, rec.failed, 1)
	assert.Equal(t, hooks.OpDelete, rec.failed[0].Op)
	assert.Equal(t, int32(native.RetcodeError), rec.failed[0].Code)
}

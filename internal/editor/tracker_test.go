package editor

import (
	"testing"

	evbus "github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeTracker_RaisedByMutationEvent(t *testing.T) {
	bus := evbus.New()
	tr := &ChangeTracker{}
	require.NoError(t, tr.Attach(bus))
	assert.False(t, tr.Dirty())

	bus.Publish(TopicListMutated, Mutation{Kind: MutationAdd})
	assert.True(t, tr.Dirty())

	tr.Clear()
	assert.False(t, tr.Dirty())
}

func TestChangeTracker_AttachIsIdempotent(t *testing.T) {
	bus := evbus.New()
	tr := &ChangeTracker{}
	require.NoError(t, tr.Attach(bus))
	require.NoError(t, tr.Attach(bus))

	require.NoError(t, tr.Detach())
	bus.Publish(TopicListMutated, Mutation{Kind: MutationAdd})

	assert.False(t, tr.Dirty(), "a single detach must remove the only subscription")
}

func TestChangeTracker_AttachMovesBetweenBuses(t *testing.T) {
	first, second := evbus.New(), evbus.New()
	tr := &ChangeTracker{}
	require.NoError(t, tr.Attach(first))
	require.NoError(t, tr.Attach(second))

	first.Publish(TopicListMutated, Mutation{Kind: MutationRemove})
	assert.False(t, tr.Dirty())

	second.Publish(TopicListMutated, Mutation{Kind: MutationRemove})
	assert.True(t, tr.Dirty())
}

func TestChangeTracker_DetachWithoutAttach(t *testing.T) {
	tr := &ChangeTracker{}
	assert.NoError(t, tr.Detach())
	assert.NoError(t, tr.Attach(nil))
}

package trace

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/topic"
)

func TestRecorderObservesEveryTopic(t *testing.T) {
	bus := event.New()
	defer bus.Close()

	r, err := New(bus)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, bus.Emit(context.Background(), topic.Topic("auth.signin.requested"), nil))
	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil))
	require.NoError(t, bus.Emit(context.Background(), topic.Topic("community.active.changed"), nil))

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, topic.Topic("auth.signin.requested"), events[0].Topic)
	assert.Equal(t, topic.Topic("community.active.changed"), events[2].Topic)
}

func TestRecorderCapacityKeepsNewestTail(t *testing.T) {
	bus := event.New()
	defer bus.Close()

	r, err := New(bus, WithCapacity(3))
	require.NoError(t, err)
	defer r.Close()

	for i := 0; i < 5; i++ {
		tag := topic.Topic(fmt.Sprintf("thanks.n%d", i))
		require.NoError(t, bus.Emit(context.Background(), tag, nil))
	}

	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, topic.Topic("thanks.n2"), events[0].Topic)
	assert.Equal(t, topic.Topic("thanks.n4"), events[2].Topic)
	assert.Equal(t, 3, r.Len())
}

func TestRecorderSourceFilter(t *testing.T) {
	bus := event.New()
	defer bus.Close()

	r, err := New(bus, WithSources(event.SourceUser))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil,
		event.WithSource(event.SourceUser)))
	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil,
		event.WithSource(event.SourceAPI)))

	require.Equal(t, 1, r.Len())
	assert.Equal(t, event.SourceUser, r.Events()[0].Source)
}

func TestRecorderCloseStopsRecording(t *testing.T) {
	bus := event.New()
	defer bus.Close()

	r, err := New(bus)
	require.NoError(t, err)

	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil))
	r.Close()
	r.Close()
	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil))

	assert.Equal(t, 1, r.Len())
}

func TestRecorderEventsReturnsCopy(t *testing.T) {
	bus := event.New()
	defer bus.Close()

	r, err := New(bus)
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, bus.Emit(context.Background(), topic.Topic("resource.created"), nil))

	events := r.Events()
	events[0].Topic = topic.Topic("mutated")
	assert.Equal(t, topic.Topic("resource.created"), r.Events()[0].Topic)
}

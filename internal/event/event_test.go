package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commonweal/commonweal/internal/event/topic"
)

func TestAs(t *testing.T) {
	evt := Envelope{Topic: topic.Topic("resource.created"), Payload: "hello"}

	s, ok := As[string](evt)
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	n, ok := As[int](evt)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestAsNilPayload(t *testing.T) {
	evt := Envelope{Topic: topic.Topic("auth.signout.requested")}

	_, ok := As[string](evt)
	assert.False(t, ok)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/commonweal/commonweal/internal/event/topic"
)

func TestSourceFilter(t *testing.T) {
	f := SourceFilter(SourceUser, SourceAPI)

	assert.True(t, f(Envelope{Source: SourceUser}))
	assert.True(t, f(Envelope{Source: SourceAPI}))
	assert.False(t, f(Envelope{Source: SourceSystem}))
}

func TestTopicFilter(t *testing.T) {
	f := TopicFilter(topic.Topic("resource.*"), topic.Topic("auth.**"))

	assert.True(t, f(Envelope{Topic: topic.Topic("resource.created")}))
	assert.True(t, f(Envelope{Topic: topic.Topic("auth.signin.requested")}))
	assert.False(t, f(Envelope{Topic: topic.Topic("thanks.created")}))
}

func TestUserFilter(t *testing.T) {
	f := UserFilter("u1")

	assert.True(t, f(Envelope{UserID: "u1"}))
	assert.False(t, f(Envelope{UserID: "u2"}))
	assert.False(t, f(Envelope{}))
}

func TestFilterCombinators(t *testing.T) {
	user := UserFilter("u1")
	source := SourceFilter(SourceUser)

	both := And(user, source)
	assert.True(t, both(Envelope{UserID: "u1", Source: SourceUser}))
	assert.False(t, both(Envelope{UserID: "u1", Source: SourceAPI}))

	either := Or(user, source)
	assert.True(t, either(Envelope{UserID: "u2", Source: SourceUser}))
	assert.False(t, either(Envelope{UserID: "u2", Source: SourceAPI}))

	assert.False(t, Not(user)(Envelope{UserID: "u1"}))
	assert.True(t, Not(user)(Envelope{UserID: "u2"}))
}

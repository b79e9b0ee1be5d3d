package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopic_Segments(t *testing.T) {
	tests := []struct {
		name  string
		topic Topic
		want  []string
	}{
		{"empty", Topic(""), nil},
		{"single", Topic("auth"), []string{"auth"}},
		{"triad", Topic("community.fetch.success"), []string{"community", "fetch", "success"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.topic.Segments())
		})
	}
}

func TestTopic_DomainAndBase(t *testing.T) {
	tp := Topic("resource.create.failed")
	assert.Equal(t, "resource", tp.Domain())
	assert.Equal(t, "failed", tp.Base())

	single := Topic("auth")
	assert.Equal(t, "auth", single.Domain())
	assert.Equal(t, "auth", single.Base())
}

func TestTopic_IsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		valid bool
	}{
		{"community.fetch.requested", true},
		{"auth", true},
		{"**", true},
		{"", false},
		{".community", false},
		{"community.", false},
		{"community..fetch", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.topic), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.topic.IsValid())
		})
	}
}

func TestTopic_Matches(t *testing.T) {
	tests := []struct {
		name    string
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"exact match", "community.fetch.success", "community.fetch.success", true},
		{"exact mismatch", "community.fetch.success", "community.fetch.failed", false},
		{"single wildcard", "community.created", "community.*", true},
		{"single wildcard wrong depth", "community.fetch.success", "community.*", false},
		{"multi wildcard tail", "community.fetch.success", "community.**", true},
		{"multi wildcard zero segments", "community", "community.**", true},
		{"bare multi wildcard", "thanks.created", "**", true},
		{"wildcard base", "community.active.changed", "*.active.changed", true},
		{"mid wildcard", "resource.create.failed", "resource.*.failed", true},
		{"no partial segment match", "communityx.created", "community.*", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.topic.Matches(tt.pattern))
		})
	}
}

func TestTopic_IsPattern(t *testing.T) {
	assert.True(t, Topic("community.*").IsPattern())
	assert.True(t, Topic("**").IsPattern())
	assert.False(t, Topic("community.created").IsPattern())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, Topic("community.active.changed"), Join("community", "active", "changed"))
}

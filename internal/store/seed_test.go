package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonweal/commonweal/internal/domain"
)

const seedDoc = `{
	"accounts": [
		{"userId": "u1", "email": "ada@example.org", "displayName": "Ada", "password": "correct-horse"}
	],
	"communities": [
		{
			"id": "c1",
			"name": "Commonweal",
			"level": "global",
			"ownerId": "u1",
			"createdAt": "2026-01-01T00:00:00Z"
		},
		{
			"name": "Riverside",
			"location": {"lat": 45.52, "lng": "-122.67"},
			"ownerId": "u1"
		}
	],
	"resources": [
		{"id": "r1", "communityId": "c1", "ownerId": "u1", "title": "Drill", "category": "tools"}
	],
	"thanks": [
		{"id": "t1", "communityId": "c1", "fromUserId": "u1", "toUserId": "u2", "message": "hi"}
	]
}`

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed([]byte(seedDoc))
	require.NoError(t, err)

	require.Len(t, seed.Accounts, 1)
	assert.Equal(t, "ada@example.org", seed.Accounts[0].Email)

	require.Len(t, seed.Communities, 2)
	assert.Equal(t, "c1", seed.Communities[0].ID)
	assert.Equal(t, domain.CommunityLevelGlobal, seed.Communities[0].Level)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), seed.Communities[0].CreatedAt)

	// Missing id and level get defaults; mixed-form location members parse.
	riverside := seed.Communities[1]
	assert.NotEmpty(t, riverside.ID)
	assert.Equal(t, domain.CommunityLevelNeighborhood, riverside.Level)
	require.NotNil(t, riverside.Location)
	assert.InDelta(t, 45.52, riverside.Location.Lat, 1e-9)
	assert.InDelta(t, -122.67, riverside.Location.Lng, 1e-9)

	require.Len(t, seed.Resources, 1)
	assert.Equal(t, "Drill", seed.Resources[0].Title)

	require.Len(t, seed.Thanks, 1)
	assert.Equal(t, "hi", seed.Thanks[0].Message)
}

func TestParseSeedInvalidJSON(t *testing.T) {
	_, err := ParseSeed([]byte("{nope"))
	assert.Error(t, err)
}

func TestParseSeedBadLocation(t *testing.T) {
	_, err := ParseSeed([]byte(`{"communities": [{"name": "x", "location": "45.52"}]}`))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(seedDoc), 0o644))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Communities, 2)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

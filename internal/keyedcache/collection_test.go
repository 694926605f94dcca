package keyedcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type player struct {
	team string
	name string
	role string
}

func newPlayerCollection() *Collection[string, player] {
	return NewCollection(func(p player) string { return p.team + "/" + p.name })
}

// Repeated loads of the same roster never duplicate entries.
func TestCollectionUpsertIsIdempotent(t *testing.T) {
	players := newPlayerCollection()
	roster := []player{{"T1", "Faker", "MID"}, {"T1", "Oner", "JNG"}}

	players.Upsert(roster...)
	players.Upsert(roster...)

	assert.Equal(t, 2, players.Len())
	assert.Equal(t, roster, players.Values())
}

func TestCollectionUpsertReplacesInPlace(t *testing.T) {
	players := newPlayerCollection()
	players.Upsert(player{"T1", "Faker", "MID"}, player{"G2", "Caps", "MID"})

	players.Upsert(player{"T1", "Faker", "TOP"})

	assert.Equal(t, []player{{"T1", "Faker", "TOP"}, {"G2", "Caps", "MID"}}, players.Values())

	got, ok := players.Get("T1/Faker")
	assert.True(t, ok)
	assert.Equal(t, "TOP", got.role)
}

func TestCollectionReplaceAndReset(t *testing.T) {
	players := newPlayerCollection()
	players.Upsert(player{"T1", "Faker", "MID"})

	players.Replace([]player{{"G2", "Caps", "MID"}})
	assert.Equal(t, []player{{"G2", "Caps", "MID"}}, players.Values())

	players.Reset()
	assert.Equal(t, 0, players.Len())
	assert.Empty(t, players.Values())
	assert.NotNil(t, players.Values())
}

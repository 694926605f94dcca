package docstore

import (
	"context"
	"testing"
	"time"

	"leaguerats/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLeaderboard(t *testing.T, store Store) {
	t.Helper()

	ctx := context.Background()
	entries := []struct {
		id   string
		data map[string]any
	}{
		{"c", map[string]any{"gameName": "Caps", "rank": 3, "stats": map[string]any{"lp": 900}}},
		{"a", map[string]any{"gameName": "Faker", "rank": 1, "stats": map[string]any{"lp": 1500}}},
		{"b", map[string]any{"gameName": "Chovy", "rank": 2, "stats": map[string]any{"lp": 1200}}},
		{"d", map[string]any{"gameName": "Ruler", "rank": 3, "stats": map[string]any{"lp": 800}}},
		{"e", map[string]any{"gameName": "Unranked"}},
	}
	for _, entry := range entries {
		require.NoError(t, store.Set(ctx, Join("leaderboard/EUW/challenger", entry.id), entry.data))
	}
	require.NoError(t, store.Set(ctx, "leaderboard/EUW/master/z", map[string]any{"rank": 1}))
}

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.ID
	}
	return out
}

// Test the path helpers.
func TestPaths(t *testing.T) {
	assert.True(t, IsDocumentPath("/pro_players/account_names/"))
	assert.False(t, IsDocumentPath("pro_players/LCK/T1"))
	assert.True(t, IsCollectionPath("pro_players/LCK/T1"))
	assert.False(t, IsCollectionPath(""))
	assert.Equal(t, "live_streams/live", CleanPath("//live_streams//live/"))

	collection, id, err := SplitDocumentPath("pro_players/LCK/T1/faker")
	require.NoError(t, err)
	assert.Equal(t, "pro_players/LCK/T1", collection)
	assert.Equal(t, "faker", id)

	_, _, err = SplitDocumentPath("accounts")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

// Test ordering, cursors and limits of queries.
func TestMemoryStoreQuery(t *testing.T) {
	store := NewMemoryStore()
	seedLeaderboard(t, store)
	ctx := context.Background()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "ordered by rank, ties by id, missing last",
			query: Query{Collection: "leaderboard/EUW/challenger", OrderBy: "rank"},
			want:  []string{"a", "b", "c", "d", "e"},
		},
		{
			name:  "descending puts missing first",
			query: Query{Collection: "leaderboard/EUW/challenger", OrderBy: "rank", Desc: true},
			want:  []string{"e", "d", "c", "b", "a"},
		},
		{
			name:  "nested field",
			query: Query{Collection: "leaderboard/EUW/challenger", OrderBy: "stats.lp", Limit: 2},
			want:  []string{"d", "c"},
		},
		{
			name: "start after cursor with tie",
			query: Query{
				Collection: "leaderboard/EUW/challenger",
				OrderBy:    "rank",
				Limit:      2,
				StartAfter: &Document{ID: "c", Data: map[string]any{"rank": float64(3)}},
			},
			want: []string{"d", "e"},
		},
		{
			name:  "equality filter",
			query: Query{Collection: "leaderboard/EUW/challenger", Where: []Filter{{Field: "rank", Value: 3}}},
			want:  []string{"c", "d"},
		},
		{
			name:  "no documents",
			query: Query{Collection: "leaderboard/KR/challenger"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.Query(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(docs))
		})
	}

	_, err := store.Query(ctx, Query{Collection: "leaderboard/EUW"})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

// Test document reads and writes.
func TestMemoryStoreGetSetAdd(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "accounts/missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)

	type account struct {
		GameName string `json:"gameName"`
		TagLine  string `json:"tagLine"`
	}
	doc, err := store.Add(ctx, "accounts", account{GameName: "Faker", TagLine: "KR1"})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "accounts/"+doc.ID, doc.Path)
	assert.Equal(t, "Faker", doc.Data["gameName"])

	// Returned documents are copies.
	doc.Data["gameName"] = "changed"
	again, err := store.Get(ctx, doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "Faker", again.Data["gameName"])

	assert.ErrorIs(t, store.Set(ctx, "accounts", map[string]any{}), errs.ErrInvalidInput)
	assert.ErrorIs(t, store.Set(ctx, "accounts/x", []int{1}), errs.ErrInvalidInput)
}

// Test that listeners receive the initial and every following snapshot.
func TestMemoryStoreListen(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var collectionSnapshots []Snapshot
	stopCollection, err := store.Listen(ctx, "active_pro_games", func(s Snapshot) {
		collectionSnapshots = append(collectionSnapshots, s)
	}, nil)
	require.NoError(t, err)

	var documentSnapshots []Snapshot
	stopDocument, err := store.Listen(ctx, "live_streams/live", func(s Snapshot) {
		documentSnapshots = append(documentSnapshots, s)
	}, nil)
	require.NoError(t, err)

	require.Len(t, collectionSnapshots, 1)
	assert.False(t, collectionSnapshots[0].Exists())
	require.Len(t, documentSnapshots, 1)

	require.NoError(t, store.Set(ctx, "active_pro_games/1", map[string]any{"player": "faker"}))
	require.NoError(t, store.Set(ctx, "live_streams/live", map[string]any{"abc": map[string]any{"player": "caps"}}))
	require.NoError(t, store.Set(ctx, "live_streams/not_live", map[string]any{}))

	require.Len(t, collectionSnapshots, 2)
	assert.Equal(t, []string{"1"}, ids(collectionSnapshots[1].Documents))
	require.Len(t, documentSnapshots, 2)
	assert.True(t, documentSnapshots[1].Exists())

	stopCollection()
	stopCollection()
	require.NoError(t, store.Delete(ctx, "active_pro_games/1"))
	assert.Len(t, collectionSnapshots, 2)

	stopDocument()
	assert.Equal(t, 0, store.Listeners())
}

// Test that a cancelled context removes the listener.
func TestMemoryStoreListenContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())

	_, err := store.Listen(ctx, "active_pro_games", func(Snapshot) {}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Listeners())

	cancel()
	assert.Eventually(t, func() bool { return store.Listeners() == 0 }, time.Second, 10*time.Millisecond)

	_, err = store.Listen(context.Background(), "/", func(Snapshot) {}, nil)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

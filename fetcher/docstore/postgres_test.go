package docstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"leaguerats/fetcher/docstore"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docIDs(docs []docstore.Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.ID
	}
	return out
}

// Test the postgres store against the same expectations as the memory store.
func TestPostgresStore(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	store := docstore.NewPostgresStore(&docstore.PostgresStoreDeps{
		DB:           db,
		Logger:       zerolog.Nop(),
		PollInterval: 50 * time.Millisecond,
	})
	ctx := context.Background()

	seed := map[string]map[string]any{
		"c": {"gameName": "Caps", "rank": 3},
		"a": {"gameName": "Faker", "rank": 1},
		"b": {"gameName": "Chovy", "rank": 2},
		"d": {"gameName": "Ruler", "rank": 3},
		"e": {"gameName": "Unranked"},
	}
	for id, data := range seed {
		require.NoError(t, store.Set(ctx, docstore.Join("leaderboard/EUW/challenger", id), data))
	}

	t.Run("get", func(t *testing.T) {
		doc, err := store.Get(ctx, "leaderboard/EUW/challenger/a")
		require.NoError(t, err)
		assert.Equal(t, "Faker", doc.Data["gameName"])
		assert.Equal(t, float64(1), doc.Data["rank"])

		_, err = store.Get(ctx, "leaderboard/EUW/challenger/zz")
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("ordered query with cursor", func(t *testing.T) {
		first, err := store.Query(ctx, docstore.Query{Collection: "leaderboard/EUW/challenger", OrderBy: "rank", Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, docIDs(first))

		next, err := store.Query(ctx, docstore.Query{
			Collection: "leaderboard/EUW/challenger",
			OrderBy:    "rank",
			Limit:      3,
			StartAfter: &first[len(first)-1],
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "e"}, docIDs(next))
	})

	t.Run("descending", func(t *testing.T) {
		docs, err := store.Query(ctx, docstore.Query{Collection: "leaderboard/EUW/challenger", OrderBy: "rank", Desc: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"e", "d", "c", "b", "a"}, docIDs(docs))
	})

	t.Run("equality filter", func(t *testing.T) {
		docs, err := store.Query(ctx, docstore.Query{
			Collection: "leaderboard/EUW/challenger",
			Where:      []docstore.Filter{{Field: "gameName", Value: "Chovy"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, docIDs(docs))
	})

	t.Run("set replaces", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "users/x", map[string]any{"username": "one", "tag": "EUW"}))
		require.NoError(t, store.Set(ctx, "users/x", map[string]any{"username": "two"}))

		doc, err := store.Get(ctx, "users/x")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"username": "two"}, doc.Data)
	})

	t.Run("polling listener", func(t *testing.T) {
		var mu sync.Mutex
		var snapshots []docstore.Snapshot

		stop, err := store.Listen(ctx, "active_pro_games", func(s docstore.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			snapshots = append(snapshots, s)
		}, nil)
		require.NoError(t, err)
		defer stop()

		require.NoError(t, store.Set(ctx, "active_pro_games/1", map[string]any{"player": "faker"}))

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(snapshots) == 2 && len(snapshots[1].Documents) == 1
		}, 2*time.Second, 20*time.Millisecond)
	})
}

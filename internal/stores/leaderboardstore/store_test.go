package leaderboardstore

import (
	"context"
	"fmt"
	"testing"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Helper to initialize the mocks.
func setupTestService() (*LeaderboardStore, *testutil.MockSender) {
	client := new(testutil.MockSender)
	store := NewLeaderboardStore(&LeaderboardStoreDeps{Client: client, Logger: zerolog.Nop()})
	return store, client
}

func setupDocumentService(t *testing.T, region string, tier string, rows int) *LeaderboardStore {
	t.Helper()
	docs := docstore.NewMemoryStore()

	// Inserted out of order to exercise the rank ordering.
	for i := rows; i >= 1; i-- {
		path := fmt.Sprintf("leaderboard/%s/%s/player%d", region, tier, i)
		require.NoError(t, docs.Set(context.Background(), path, map[string]any{
			"gameName":     fmt.Sprintf("Player%d", i),
			"tagLine":      region,
			"rank":         i,
			"leaguePoints": 2000 - i*10,
			"league":       tier,
		}))
	}

	return NewLeaderboardStore(&LeaderboardStoreDeps{Documents: docs, Logger: zerolog.Nop()})
}

func ranks(entries []league.LeaderboardEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Rank
	}
	return out
}

func TestDocumentLeaderboard(t *testing.T) {
	store := setupDocumentService(t, "EUW", "challenger", 5)
	ctx := context.Background()

	_, err := store.GetMoreLeaderboard(ctx, "EUW", "challenger", 2)
	assert.ErrorIs(t, err, errs.ErrFirstPageNotLoaded)

	first, err := store.GetFirstLeaderboard(ctx, "euw", "Challenger", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ranks(first))

	next, err := store.GetMoreLeaderboard(ctx, "EUW", "challenger", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, ranks(next))

	next, err = store.GetMoreLeaderboard(ctx, "EUW", "challenger", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ranks(next))

	next, err = store.GetMoreLeaderboard(ctx, "EUW", "challenger", 2)
	require.NoError(t, err)
	assert.Empty(t, next)

	// A second first-page call keeps everything loaded so far.
	all, err := store.GetFirstLeaderboard(ctx, "EUW", "challenger", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks(all))

	loaded, ok := store.Leaderboard("euw", "challenger")
	require.True(t, ok)
	assert.Len(t, loaded, 5)
	assert.Len(t, store.Entries.Get()["EUW/challenger"], 5)

	_, ok = store.Leaderboard("KR", "challenger")
	assert.False(t, ok)
}

func TestHTTPLeaderboard(t *testing.T) {
	store, client := setupTestService()
	ctx := context.Background()

	client.On("SendRequest", mock.Anything, requests.Get("/v2/league/leaderboard/KR?amount=2&league=master")).
		Return(testutil.JSONResponse(t, 200, `[{"gameName": "Faker", "rank": 1}, {"gameName": "Chovy", "rank": 2}]`)).Once()
	client.On("SendRequest", mock.Anything, requests.Get("/v2/league/leaderboard/KR?amount=2&league=master&startAfter=2")).
		Return(testutil.JSONResponse(t, 200, `[{"gameName": "Zeus", "rank": 3}]`)).Once()

	first, err := store.GetFirstLeaderboard(ctx, "KR", "master", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ranks(first))

	next, err := store.GetMoreLeaderboard(ctx, "KR", "master", 2)
	require.NoError(t, err)
	assert.Equal(t, "Zeus", next[0].GameName)

	testutil.VerifyAllMocks(t, client)
}

func TestLeaderboardErrors(t *testing.T) {
	tests := []struct {
		name          string
		region        regions.Select
		tier          string
		limit         int
		response      *requests.Response
		callsBackend  bool
		expectedError error
	}{
		{name: "invalidRegion", region: "MOON", tier: "challenger", limit: 10, expectedError: errs.ErrInvalidRegion},
		{name: "unknownLeague", region: "EUW", tier: "diamond", limit: 10, expectedError: errs.ErrInvalidInput},
		{name: "zeroLimit", region: "EUW", tier: "challenger", limit: 0, expectedError: errs.ErrInvalidInput},
		{name: "transport", region: "EUW", tier: "challenger", limit: 10, callsBackend: true, expectedError: errs.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, client := setupTestService()
			if tt.callsBackend {
				client.On("SendRequest", mock.Anything, requests.Get("/v2/league/leaderboard/EUW?amount=10&league=challenger")).
					Return(tt.response).Once()
			}

			entries, err := store.GetFirstLeaderboard(context.Background(), tt.region, tt.tier, tt.limit)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.Nil(t, entries)
			testutil.VerifyAllMocks(t, client)
		})
	}
}

func TestResetState(t *testing.T) {
	store := setupDocumentService(t, "NA", "grandmaster", 3)
	ctx := context.Background()

	_, err := store.GetFirstLeaderboard(ctx, "NA", "grandmaster", 3)
	require.NoError(t, err)

	store.ResetState()
	assert.Empty(t, store.Entries.Get())

	_, err = store.GetMoreLeaderboard(ctx, "NA", "grandmaster", 3)
	assert.ErrorIs(t, err, errs.ErrFirstPageNotLoaded)
}

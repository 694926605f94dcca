package app

import (
	"context"
	"sync"
	"testing"

	"leaguerats/fetcher/assets"
	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/stores/accountstore"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/leaderboardstore"
	"leaguerats/internal/stores/leaguestore"
	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/internal/stores/runestore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/champion"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Helper to initialize the mocks.
func setupTestService(docs docstore.Store, push bool) (*AppStore, *testutil.MockSender) {
	client := new(testutil.MockSender)
	logger := zerolog.Nop()

	champions := championstore.NewChampionStore(&championstore.ChampionStoreDeps{Client: client, Logger: logger})
	storage := storagestore.NewStorageStore(&storagestore.StorageStoreDeps{
		Resolver:  assets.StaticResolver{BaseURL: "https://cdn.test"},
		Champions: champions,
		Logger:    logger,
	})

	store := NewAppStore(&AppStoreDeps{
		Accounts:     accountstore.NewAccountStore(&accountstore.AccountStoreDeps{Client: client, Logger: logger}),
		Matches:      matchstore.NewMatchStore(&matchstore.MatchStoreDeps{Client: client, Logger: logger}),
		Leagues:      leaguestore.NewLeagueStore(&leaguestore.LeagueStoreDeps{Client: client, Logger: logger}),
		Champions:    champions,
		ProPlayers:   proplayerstore.NewProPlayerStore(&proplayerstore.ProPlayerStoreDeps{Client: client, Documents: docs, Logger: logger}),
		Runes:        runestore.NewRuneStore(&runestore.RuneStoreDeps{Client: client, Icons: storage, Logger: logger}),
		Leaderboards: leaderboardstore.NewLeaderboardStore(&leaderboardstore.LeaderboardStoreDeps{Client: client, Logger: logger}),
		Storage:      storage,
		Push:         push,
		Logger:       logger,
	})
	return store, client
}

func expect(t *testing.T, client *testutil.MockSender, url string, status int, body string) {
	t.Helper()
	client.On("SendRequest", mock.Anything, requests.Get(url)).
		Return(testutil.JSONResponse(t, status, body)).Once()
}

func recordLoading(store *AppStore) func() []bool {
	var (
		mu     sync.Mutex
		states []bool
	)
	store.Loading.Subscribe(func(loading bool) {
		mu.Lock()
		states = append(states, loading)
		mu.Unlock()
	})
	return func() []bool {
		mu.Lock()
		defer mu.Unlock()
		return append([]bool(nil), states...)
	}
}

func TestGetInitialData(t *testing.T) {
	store, client := setupTestService(nil, false)
	loading := recordLoading(store)

	expect(t, client, "/v2/pro-players/players", 200, `{"LCK": {"T1": [{"player": "Faker", "team": "T1"}]}}`)
	expect(t, client, "/v2/pro-players/account-names", 200, `{"p1": {"player": "Faker", "team": "T1"}}`)
	expect(t, client, "/v2/champions/list", 200, `{"62": {"title": "Wukong", "value": "MonkeyKing"}}`)
	expect(t, client, "/v2/runes", 200, `[{"id": 8000, "icon": "precision.png", "slots": []}]`)
	expect(t, client, "/v2/pro-players/live-streams/live", 200, `{"faker": {"player": "Faker", "team": "T1", "twitch": "faker"}}`)
	expect(t, client, "/v2/pro-players/live-streams/not_live", 200, `{}`)

	err := store.GetInitialData(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, loading())
	assert.Len(t, store.deps.ProPlayers.Players.Get(), 1)
	assert.Contains(t, store.deps.ProPlayers.AccountNames.Get(), "p1")
	assert.Equal(t, []int{62}, store.deps.Champions.ChampionIDs())
	assert.Len(t, store.deps.Runes.RuneInfo.Get(), 1)
	assert.Len(t, store.deps.Storage.SummonerSpellIcons.Get(), len(champion.SummonerSpells))
	assert.Equal(t, "faker", store.deps.ProPlayers.LiveStreams.Get()["faker"].Twitch)

	testutil.VerifyAllMocks(t, client)
}

func TestGetInitialDataPartialFailure(t *testing.T) {
	store, client := setupTestService(nil, false)

	expect(t, client, "/v2/pro-players/players", 500, `{}`)
	expect(t, client, "/v2/pro-players/account-names", 200, `{}`)
	expect(t, client, "/v2/champions/list", 404, `{}`)
	expect(t, client, "/v2/runes", 200, `[]`)
	expect(t, client, "/v2/pro-players/live-streams/live", 200, `{}`)
	expect(t, client, "/v2/pro-players/live-streams/not_live", 200, `{}`)

	err := store.GetInitialData(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransport)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Contains(t, err.Error(), "pro players")
	assert.Contains(t, err.Error(), "champions")

	// Later steps still ran.
	assert.NotEmpty(t, store.deps.Storage.SummonerSpellIcons.Get())
	assert.False(t, store.Loading.Get())

	testutil.VerifyAllMocks(t, client)
}

func TestGetInitialDataWithListeners(t *testing.T) {
	docs := docstore.NewMemoryStore()
	store, client := setupTestService(docs, true)
	ctx := context.Background()

	require.NoError(t, docs.Set(ctx, "live_streams/live", map[string]any{
		"caps": map[string]any{"player": "Caps", "team": "G2", "twitch": "caps"},
	}))

	expect(t, client, "/v2/pro-players/players", 200, `{}`)
	expect(t, client, "/v2/pro-players/account-names", 200, `{}`)
	expect(t, client, "/v2/champions/list", 200, `{}`)
	expect(t, client, "/v2/runes", 200, `[]`)

	require.NoError(t, store.GetInitialData(ctx))
	assert.Equal(t, 3, docs.Listeners())
	assert.Contains(t, store.deps.ProPlayers.LiveStreams.Get(), "caps")

	store.ResetState()
	assert.Equal(t, 0, docs.Listeners())
	assert.Empty(t, store.deps.ProPlayers.LiveStreams.Get())
	assert.Empty(t, store.deps.Storage.SummonerSpellIcons.Get())

	testutil.VerifyAllMocks(t, client)
}

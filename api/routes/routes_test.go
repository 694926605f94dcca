package routes

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"leaguerats/api/handlers"
	"leaguerats/fetcher/assets"
	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores/accountstore"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/leaderboardstore"
	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/preferencestore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/internal/stores/runestore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/internal/testutil"
	"leaguerats/pkg/models/account"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *Router {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	return NewRouter(engine)
}

// Router with every store backed by the mock sender.
func setupTestService() (*Router, *testutil.MockSender, *observer.Registry) {
	client := new(testutil.MockSender)
	logger := zerolog.Nop()

	champions := championstore.NewChampionStore(&championstore.ChampionStoreDeps{Client: client, Logger: logger})
	storage := storagestore.NewStorageStore(&storagestore.StorageStoreDeps{
		Resolver:  assets.StaticResolver{BaseURL: "https://cdn.test"},
		Champions: champions,
		Logger:    logger,
	})
	matches := matchstore.NewMatchStore(&matchstore.MatchStoreDeps{Client: client, Logger: logger})

	registry := observer.NewRegistry()
	registry.Register(matches.FeaturedGames, champions.Champions)

	router := setupTestRouter()
	router.SetupRoutes(
		handlers.NewChampionHandler(&handlers.ChampionHandlerDependencies{Champions: champions}),
		handlers.NewMatchHandler(&handlers.MatchHandlerDependencies{Matches: matches}),
		handlers.NewProPlayerHandler(&handlers.ProPlayerHandlerDependencies{
			ProPlayers: proplayerstore.NewProPlayerStore(&proplayerstore.ProPlayerStoreDeps{Client: client, Logger: logger}),
		}),
		handlers.NewLeaderboardHandler(&handlers.LeaderboardHandlerDependencies{
			Leaderboards: leaderboardstore.NewLeaderboardStore(&leaderboardstore.LeaderboardStoreDeps{Client: client, Logger: logger}),
		}),
		handlers.NewAssetHandler(&handlers.AssetHandlerDependencies{
			Storage:   storage,
			Runes:     runestore.NewRuneStore(&runestore.RuneStoreDeps{Client: client, Icons: storage, Logger: logger}),
			Champions: champions,
		}),
		handlers.NewPreferenceHandler(&handlers.PreferenceHandlerDependencies{}),
		handlers.NewEventHandler(&handlers.EventHandlerDependencies{Registry: registry}),
	)
	return router, client, registry
}

func perform(router *Router, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.Engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	router := setupTestRouter()

	assert.NotNil(t, router)
	assert.NotNil(t, router.Engine)
	assert.NotNil(t, router.api)
}

func TestSetupRoutes(t *testing.T) {
	router := setupTestRouter()

	router.SetupRoutes(
		&handlers.AccountHandler{},
		&handlers.MatchHandler{},
		&handlers.ChampionHandler{},
		&handlers.ProPlayerHandler{},
		&handlers.LeaderboardHandler{},
		&handlers.AssetHandler{},
		&handlers.PreferenceHandler{},
		&handlers.EventHandler{},
		&handlers.AppHandler{},
		"ignored",
	)

	paths := map[string]bool{}
	for _, route := range router.Engine.Routes() {
		paths[route.Method+" "+route.Path] = true
	}

	assert.True(t, paths["GET /api/v1/accounts/riot-id/:region/:gameName/:tagLine"])
	assert.True(t, paths["GET /api/v1/accounts/stored/:gameName/:tagLine"])
	assert.True(t, paths["GET /api/v1/matches/history/:region/:puuid"])
	assert.True(t, paths["GET /api/v1/pros/streams/:status"])
	assert.True(t, paths["GET /api/v1/leaderboard/:region/:league"])
	assert.True(t, paths["GET /api/v1/events/:topic"])
	assert.True(t, paths["POST /api/v1/reload"])
}

func TestRouteStatusCodes(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		path         string
		upstream     string
		status       int
		body         string
		expectedCode int
		contains     string
	}{
		{
			name:         "champions",
			method:       http.MethodGet,
			path:         "/api/v1/champions",
			upstream:     "/v2/champions/list",
			status:       200,
			body:         `{"62": {"title": "Wukong", "value": "MonkeyKing"}}`,
			expectedCode: http.StatusOK,
			contains:     "MonkeyKing",
		},
		{
			name:         "unknownChampion",
			method:       http.MethodGet,
			path:         "/api/v1/champions/stats/9999",
			upstream:     "/v2/champions/9999/stats",
			status:       404,
			body:         `{}`,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "backendFailure",
			method:       http.MethodGet,
			path:         "/api/v1/champions/stats/1",
			upstream:     "/v2/champions/1/stats",
			status:       500,
			body:         `{}`,
			expectedCode: http.StatusBadGateway,
		},
		{
			name:         "badChampionID",
			method:       http.MethodGet,
			path:         "/api/v1/champions/stats/abc",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalidRegion",
			method:       http.MethodGet,
			path:         "/api/v1/matches/active/ATLANTIS/abc",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalidProRegion",
			method:       http.MethodGet,
			path:         "/api/v1/pros/region/XYZ",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknownLeague",
			method:       http.MethodGet,
			path:         "/api/v1/leaderboard/EUW/iron",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "morePagesBeforeFirst",
			method:       http.MethodGet,
			path:         "/api/v1/leaderboard/EUW/challenger?more=true",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "unknownStreamStatus",
			method:       http.MethodGet,
			path:         "/api/v1/pros/streams/offline",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "spellIcons",
			method:       http.MethodGet,
			path:         "/api/v1/assets/spells",
			expectedCode: http.StatusOK,
			contains:     "https://cdn.test/summoners/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, client, _ := setupTestService()
			if tt.upstream != "" {
				client.On("SendRequest", mock.Anything, requests.Get(tt.upstream)).
					Return(testutil.JSONResponse(t, tt.status, tt.body)).Once()
			}

			w := perform(router, tt.method, tt.path, "")

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
			testutil.VerifyAllMocks(t, client)
		})
	}
}

func TestStoredAccountRoute(t *testing.T) {
	logger := zerolog.Nop()
	documents := docstore.NewMemoryStore()
	accounts := accountstore.NewAccountStore(&accountstore.AccountStoreDeps{
		Client:    new(testutil.MockSender),
		Documents: documents,
		Logger:    logger,
	})
	detached := accountstore.NewAccountStore(&accountstore.AccountStoreDeps{Logger: logger})

	router := setupTestRouter()
	router.SetupRoutes(handlers.NewAccountHandler(&handlers.AccountHandlerDependencies{Accounts: accounts}))

	w := perform(router, http.MethodGet, "/api/v1/accounts/stored/Faker/KR1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, accounts.SaveAccount(context.Background(), account.Account{GameName: "Faker", TagLine: "KR1", Puuid: "puuid-faker"}))

	w = perform(router, http.MethodGet, "/api/v1/accounts/stored/Faker/KR1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "puuid-faker")

	bare := setupTestRouter()
	bare.SetupRoutes(handlers.NewAccountHandler(&handlers.AccountHandlerDependencies{Accounts: detached}))

	w = perform(bare, http.MethodGet, "/api/v1/users/rat/EUW", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreferenceCookies(t *testing.T) {
	router, _, _ := setupTestService()
	consent := &http.Cookie{Name: preferencestore.AcceptedCookie, Value: "true"}

	w := perform(router, http.MethodPut, "/api/v1/preferences/theme", `{"value": "light"}`, consent)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), preferencestore.ThemeCookie+"=light")
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=31536000")

	w = perform(router, http.MethodPut, "/api/v1/preferences/theme", `{"value": "light"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Set-Cookie"))

	w = perform(router, http.MethodPut, "/api/v1/preferences/language", `{"value": "de"}`, consent)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodGet, "/api/v1/preferences", "",
		consent, &http.Cookie{Name: preferencestore.LanguageCookie, Value: "pl"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"language":"pl"`)
	assert.Contains(t, w.Body.String(), `"theme":"dark"`)
}

func TestCORS(t *testing.T) {
	router, _, _ := setupTestService()
	handler := router.Handler([]string{"https://leaguerats.test"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/champions", nil)
	req.Header.Set("Origin", "https://leaguerats.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "https://leaguerats.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/champions", nil)
	req.Header.Set("Origin", "https://elsewhere.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestEventStream(t *testing.T) {
	router, _, _ := setupTestService()
	server := httptest.NewServer(router.Engine)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events/champion.names", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	nextData := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data:") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
	}

	assert.Equal(t, "{}", nextData())

	w := perform(router, http.MethodGet, "/api/v1/events", "")
	assert.Contains(t, w.Body.String(), "match.featured")

	w = perform(router, http.MethodGet, "/api/v1/events/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package routes

import (
	"net/http"

	"leaguerats/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Router struct {
	Engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		Engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.AccountHandler:
			r.registerAccountHandler(handler)
		case *handlers.MatchHandler:
			r.registerMatchHandler(handler)
		case *handlers.ChampionHandler:
			r.registerChampionHandler(handler)
		case *handlers.ProPlayerHandler:
			r.registerProPlayerHandler(handler)
		case *handlers.LeaderboardHandler:
			r.registerLeaderboardHandler(handler)
		case *handlers.AssetHandler:
			r.registerAssetHandler(handler)
		case *handlers.PreferenceHandler:
			r.registerPreferenceHandler(handler)
		case *handlers.EventHandler:
			r.registerEventHandler(handler)
		case *handlers.AppHandler:
			r.registerAppHandler(handler)
		}
	}
}

func (r *Router) registerAccountHandler(handler *handlers.AccountHandler) {
	accounts := r.api.Group("/accounts")
	{
		accounts.GET("/riot-id/:region/:gameName/:tagLine", handler.GetAccountByRiotID)
		accounts.GET("/puuid/:region/:puuid", handler.GetAccountByPuuid)
		accounts.GET("/search/:gameName/:tagLine", handler.SearchAccount)
		accounts.GET("/stored/:gameName/:tagLine", handler.GetStoredAccount)
		accounts.GET("/league/:region/:puuid", handler.GetLeagueEntries)
	}

	r.api.GET("/users/:username/:tag", handler.GetUserExists)
}

func (r *Router) registerMatchHandler(handler *handlers.MatchHandler) {
	matches := r.api.Group("/matches")
	{
		matches.GET("", handler.GetMatchesData)
		matches.GET("/data/:matchId", handler.GetMatchData)
		matches.GET("/history/:region/:puuid", handler.GetMatchHistory)
		matches.GET("/active/:region/:puuid", handler.GetActiveMatch)
		matches.GET("/featured", handler.GetFeaturedGames)
		matches.GET("/watched", handler.GetWatchedGames)
		matches.POST("/watched/:region/:puuid", handler.WatchPlayer)
		matches.DELETE("/watched/:puuid", handler.UnwatchPlayer)
	}
}

func (r *Router) registerChampionHandler(handler *handlers.ChampionHandler) {
	champions := r.api.Group("/champions")
	{
		champions.GET("", handler.GetChampions)
		champions.GET("/positions", handler.GetChampionPositions)
		champions.GET("/stats/:championId", handler.GetChampionStats)
		champions.GET("/matches/:championId", handler.GetChampionMatches)
		champions.GET("/mastery/:region/:puuid", handler.GetChampionMastery)
	}
}

func (r *Router) registerProPlayerHandler(handler *handlers.ProPlayerHandler) {
	pros := r.api.Group("/pros")
	{
		pros.GET("", handler.GetAllProPlayers)
		pros.POST("", handler.CreateProPlayer)
		pros.PUT("/transfer", handler.TransferPlayer)
		pros.GET("/region/:region", handler.GetRegionPlayers)
		pros.GET("/team/:region/:team", handler.GetTeamPlayers)
		pros.GET("/player/:team/:name", handler.GetTeamPlayer)
		pros.GET("/search/:name", handler.GetPlayerByName)
		pros.GET("/account-names", handler.GetAccountNames)
		pros.GET("/bootcamp", handler.GetBootcampLeaderboard)
		pros.GET("/history-stats/:team/:name", handler.GetHistoryStats)
		pros.GET("/streams/:status", handler.GetStreams)
		pros.GET("/active-games", handler.GetActiveGames)
	}
}

func (r *Router) registerLeaderboardHandler(handler *handlers.LeaderboardHandler) {
	r.api.GET("/leaderboard/:region/:league", handler.GetLeaderboard)
}

func (r *Router) registerAssetHandler(handler *handlers.AssetHandler) {
	icons := r.api.Group("/assets")
	{
		icons.GET("/champions", handler.GetChampionIcons)
		icons.GET("/ranks", handler.GetRankIcons)
		icons.GET("/teams", handler.GetTeamLogos)
		icons.GET("/spells", handler.GetSummonerSpellIcons)
		icons.GET("/items", handler.GetItemIcons)
		icons.GET("/regions/:region", handler.GetRegionIcon)
	}

	runes := r.api.Group("/runes")
	{
		runes.GET("", handler.GetRuneInfo)
		runes.POST("/icons", handler.GetRuneIcons)
	}
}

func (r *Router) registerPreferenceHandler(handler *handlers.PreferenceHandler) {
	preferences := r.api.Group("/preferences")
	{
		preferences.GET("", handler.GetPreferences)
		preferences.PUT("/theme", handler.SetTheme)
		preferences.PUT("/language", handler.SetLanguage)
		preferences.PUT("/consent", handler.SetConsent)
	}
}

func (r *Router) registerEventHandler(handler *handlers.EventHandler) {
	events := r.api.Group("/events")
	{
		events.GET("", handler.GetTopics)
		events.GET("/:topic", handler.StreamTopic)
	}
}

func (r *Router) registerAppHandler(handler *handlers.AppHandler) {
	r.api.GET("/status", handler.GetStatus)
	r.api.POST("/reload", handler.Reload)
}

// Handler wraps the engine with the CORS policy.
func (r *Router) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r.Engine)
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.Engine.Run(addr)
}

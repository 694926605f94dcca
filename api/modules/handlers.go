package modules

import (
	"context"

	"leaguerats/api/handlers"
	"leaguerats/api/health"
	"leaguerats/api/routes"
	"leaguerats/fetcher/docstore"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores/accountstore"
	"leaguerats/internal/stores/app"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/leaderboardstore"
	"leaguerats/internal/stores/leaguestore"
	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/internal/stores/runestore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/pkg/config"
	"leaguerats/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

var HandlersModule = fx.Options(
	fx.Provide(initializeHandlers),
	fx.Provide(provideRouter),
	fx.Provide(provideHealth),
	fx.Provide(provideScheduler),
)

// Handlers of the API, in registration order.
type Handlers struct {
	Account     *handlers.AccountHandler
	Match       *handlers.MatchHandler
	Champion    *handlers.ChampionHandler
	ProPlayer   *handlers.ProPlayerHandler
	Leaderboard *handlers.LeaderboardHandler
	Asset       *handlers.AssetHandler
	Preference  *handlers.PreferenceHandler
	Event       *handlers.EventHandler
	App         *handlers.AppHandler
}

func (h *Handlers) List() []any {
	return []any{h.Account, h.Match, h.Champion, h.ProPlayer, h.Leaderboard, h.Asset, h.Preference, h.Event, h.App}
}

type HandlerParams struct {
	fx.In

	Config       *config.Config
	Lifetime     context.Context
	Topics       *observer.Registry
	App          *app.AppStore
	Accounts     *accountstore.AccountStore
	Matches      *matchstore.MatchStore
	Leagues      *leaguestore.LeagueStore
	Champions    *championstore.ChampionStore
	ProPlayers   *proplayerstore.ProPlayerStore
	Runes        *runestore.RuneStore
	Leaderboards *leaderboardstore.LeaderboardStore
	Storage      *storagestore.StorageStore
}

func initializeHandlers(p HandlerParams) *Handlers {
	return &Handlers{
		Account: handlers.NewAccountHandler(&handlers.AccountHandlerDependencies{
			Accounts: p.Accounts,
			Leagues:  p.Leagues,
		}),
		Match: handlers.NewMatchHandler(&handlers.MatchHandlerDependencies{
			Matches: p.Matches,
		}),
		Champion: handlers.NewChampionHandler(&handlers.ChampionHandlerDependencies{
			Champions: p.Champions,
		}),
		ProPlayer: handlers.NewProPlayerHandler(&handlers.ProPlayerHandlerDependencies{
			ProPlayers: p.ProPlayers,
		}),
		Leaderboard: handlers.NewLeaderboardHandler(&handlers.LeaderboardHandlerDependencies{
			Leaderboards: p.Leaderboards,
		}),
		Asset: handlers.NewAssetHandler(&handlers.AssetHandlerDependencies{
			Storage:   p.Storage,
			Runes:     p.Runes,
			Champions: p.Champions,
		}),
		Preference: handlers.NewPreferenceHandler(&handlers.PreferenceHandlerDependencies{
			SecureCookies: p.Config.Environment != "local",
		}),
		Event: handlers.NewEventHandler(&handlers.EventHandlerDependencies{
			Registry: p.Topics,
		}),
		App: handlers.NewAppHandler(&handlers.AppHandlerDependencies{
			App:        p.App,
			ProPlayers: p.ProPlayers,
			Lifetime:   p.Lifetime,
		}),
	}
}

func provideRouter(cfg *config.Config, h *Handlers) *routes.Router {
	if cfg.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(gin.Default())
	router.SetupRoutes(h.List()...)
	return router
}

func provideHealth(logger zerolog.Logger) *health.Server {
	return health.NewServer(logger)
}

func provideScheduler(cfg *config.Config, documents docstore.Store, matches *matchstore.MatchStore, pros *proplayerstore.ProPlayerStore, logger zerolog.Logger) (*scheduler.Scheduler, error) {
	return scheduler.New(&scheduler.SchedulerDeps{
		Config:     cfg.Scheduler,
		Matches:    matches,
		ProPlayers: pros,
		Push:       documents != nil,
		Logger:     logger,
	})
}

package modules

import (
	"leaguerats/fetcher/assets"
	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/live"
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
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Shared by every store constructor.
type StoreParams struct {
	fx.In

	Client    requests.Sender
	Documents docstore.Store
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

var StoresModule = fx.Options(
	fx.Provide(provideAccountStore),
	fx.Provide(provideMatchStore),
	fx.Provide(provideLeagueStore),
	fx.Provide(provideChampionStore),
	fx.Provide(provideProPlayerStore),
	fx.Provide(provideRuneStore),
	fx.Provide(provideLeaderboardStore),
	fx.Provide(provideStorageStore),
	fx.Provide(provideAppStore),
	fx.Provide(provideTopics),
)

func provideAccountStore(p StoreParams) *accountstore.AccountStore {
	return accountstore.NewAccountStore(&accountstore.AccountStoreDeps{
		Client:    p.Client,
		Documents: p.Documents,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideMatchStore(p StoreParams) *matchstore.MatchStore {
	return matchstore.NewMatchStore(&matchstore.MatchStoreDeps{
		Client:    p.Client,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideLeagueStore(p StoreParams, tiers *tiervalues.Table) *leaguestore.LeagueStore {
	return leaguestore.NewLeagueStore(&leaguestore.LeagueStoreDeps{
		Client:    p.Client,
		Tiers:     tiers,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideChampionStore(p StoreParams) *championstore.ChampionStore {
	return championstore.NewChampionStore(&championstore.ChampionStoreDeps{
		Client:    p.Client,
		Documents: p.Documents,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideProPlayerStore(p StoreParams, registry *live.Registry) *proplayerstore.ProPlayerStore {
	return proplayerstore.NewProPlayerStore(&proplayerstore.ProPlayerStoreDeps{
		Client:    p.Client,
		Documents: p.Documents,
		Live:      registry,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideStorageStore(p StoreParams, resolver assets.Resolver, champions *championstore.ChampionStore, tiers *tiervalues.Table) *storagestore.StorageStore {
	return storagestore.NewStorageStore(&storagestore.StorageStoreDeps{
		Resolver:  resolver,
		Champions: champions,
		Tiers:     tiers,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideRuneStore(p StoreParams, storage *storagestore.StorageStore) *runestore.RuneStore {
	return runestore.NewRuneStore(&runestore.RuneStoreDeps{
		Client:    p.Client,
		Documents: p.Documents,
		Icons:     storage,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

func provideLeaderboardStore(p StoreParams) *leaderboardstore.LeaderboardStore {
	return leaderboardstore.NewLeaderboardStore(&leaderboardstore.LeaderboardStoreDeps{
		Client:    p.Client,
		Documents: p.Documents,
		Publisher: p.Publisher,
		Logger:    p.Logger,
	})
}

type AppStoreParams struct {
	fx.In

	StoreParams
	Accounts     *accountstore.AccountStore
	Matches      *matchstore.MatchStore
	Leagues      *leaguestore.LeagueStore
	Champions    *championstore.ChampionStore
	ProPlayers   *proplayerstore.ProPlayerStore
	Runes        *runestore.RuneStore
	Leaderboards *leaderboardstore.LeaderboardStore
	Storage      *storagestore.StorageStore
}

// Live feeds are pushed by document listeners when a database is configured.
func provideAppStore(p AppStoreParams) *app.AppStore {
	return app.NewAppStore(&app.AppStoreDeps{
		Accounts:     p.Accounts,
		Matches:      p.Matches,
		Leagues:      p.Leagues,
		Champions:    p.Champions,
		ProPlayers:   p.ProPlayers,
		Runes:        p.Runes,
		Leaderboards: p.Leaderboards,
		Storage:      p.Storage,
		Push:         p.Documents != nil,
		Publisher:    p.Publisher,
		Logger:       p.Logger,
	})
}

// Every observable value, indexed for the event stream.
func provideTopics(p AppStoreParams, appStore *app.AppStore) *observer.Registry {
	registry := observer.NewRegistry()
	registry.Register(
		appStore.Loading,
		p.Matches.FeaturedGames,
		p.Matches.ActiveGames,
		p.Leagues.Entries,
		p.Champions.Champions,
		p.Champions.ChampionMatches,
		p.ProPlayers.Players,
		p.ProPlayers.ActiveGames,
		p.ProPlayers.AccountNames,
		p.ProPlayers.Bootcamp,
		p.ProPlayers.LiveStreams,
		p.ProPlayers.NotLiveStreams,
		p.Runes.RuneInfo,
		p.Leaderboards.Entries,
		p.Storage.RegionIcons,
		p.Storage.RuneIcons,
		p.Storage.ItemIcons,
		p.Storage.SummonerSpellIcons,
	)
	return registry
}

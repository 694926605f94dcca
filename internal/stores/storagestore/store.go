package storagestore

import (
	"context"
	"maps"
	"strings"
	"sync"

	"leaguerats/fetcher/assets"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/pkg/models/champion"
	"leaguerats/pkg/models/proplayer"
	"leaguerats/pkg/regions"
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Concurrent lookups of a FetchAll call.
const maxConcurrentLookups = 8

// ChampionNamer maps a champion id to its asset name.
type ChampionNamer interface {
	ChampionName(id int) (string, bool)
}

type StorageStoreDeps struct {
	Resolver  assets.Resolver
	Champions ChampionNamer
	Tiers     *tiervalues.Table
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// StorageStore resolves asset URLs once per distinct object key.
// Missing assets are skipped.
type StorageStore struct {
	resolver  assets.Resolver
	champions ChampionNamer
	tiers     *tiervalues.Table
	logger    zerolog.Logger

	urls *keyedcache.Cache[string, string]

	RegionIcons        *observer.Value[map[string]string]
	RuneIcons          *observer.Value[map[int]string]
	ItemIcons          *observer.Value[map[int]string]
	SummonerSpellIcons *observer.Value[map[int]string]
}

func NewStorageStore(deps *StorageStoreDeps) *StorageStore {
	publish := observer.WithPublisher(deps.Publisher)

	tiers := deps.Tiers
	if tiers == nil {
		tiers = tiervalues.Default()
	}

	return &StorageStore{
		resolver:           deps.Resolver,
		champions:          deps.Champions,
		tiers:              tiers,
		logger:             deps.Logger,
		urls:               keyedcache.New[string, string](),
		RegionIcons:        observer.NewValue("storage.region_icons", map[string]string{}, publish),
		RuneIcons:          observer.NewValue("storage.rune_icons", map[int]string{}, publish),
		ItemIcons:          observer.NewValue("storage.item_icons", map[int]string{}, publish),
		SummonerSpellIcons: observer.NewValue("storage.summoner_spell_icons", map[int]string{}, publish),
	}
}

// Resolve a key through the cache. Failures are logged and not cached.
func (s *StorageStore) resolve(ctx context.Context, path string) (string, bool) {
	url, err := s.urls.GetOrFetch(ctx, path, func(ctx context.Context) (string, error) {
		return s.resolver.URL(ctx, path)
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("path", path).Msg("asset lookup skipped")
		return "", false
	}
	return url, true
}

// Resolve many keys concurrently, keeping only the found ones.
func resolveAll[K comparable](ctx context.Context, s *StorageStore, pathByKey map[K]string) map[K]string {
	var (
		mu    sync.Mutex
		found = make(map[K]string, len(pathByKey))
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for key, path := range pathByKey {
		g.Go(func() error {
			url, ok := s.resolve(ctx, path)
			if !ok {
				return nil
			}
			mu.Lock()
			found[key] = url
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return found
}

// ChampionIcon needs the champion list to be loaded.
func (s *StorageStore) ChampionIcon(ctx context.Context, id int) (string, bool) {
	if s.champions == nil {
		return "", false
	}
	name, ok := s.champions.ChampionName(id)
	if !ok {
		return "", false
	}
	return s.resolve(ctx, assets.ChampionIconPath(name))
}

func (s *StorageStore) FetchAllChampionIcons(ctx context.Context, ids []int) map[int]string {
	paths := make(map[int]string, len(ids))
	if s.champions != nil {
		for _, id := range ids {
			if name, ok := s.champions.ChampionName(id); ok {
				paths[id] = assets.ChampionIconPath(name)
			}
		}
	}
	return resolveAll(ctx, s, paths)
}

func (s *StorageStore) RankIcon(ctx context.Context, tier string) (string, bool) {
	return s.resolve(ctx, assets.RankIconPath(tier))
}

// FetchAllRankIcons resolves the icon of every tier, keyed by lower case tier.
func (s *StorageStore) FetchAllRankIcons(ctx context.Context) map[string]string {
	paths := map[string]string{}
	for _, tier := range s.tiers.Tiers() {
		paths[strings.ToLower(tier)] = assets.RankIconPath(tier)
	}
	return resolveAll(ctx, s, paths)
}

func (s *StorageStore) TeamLogo(ctx context.Context, team string) (string, bool) {
	return s.resolve(ctx, assets.TeamLogoPath(team))
}

// FetchAllTeamLogos resolves the logo of every known team, keyed by team tag.
func (s *StorageStore) FetchAllTeamLogos(ctx context.Context) map[string]string {
	paths := map[string]string{}
	for _, team := range regions.AllTeams() {
		paths[strings.ToUpper(team)] = assets.TeamLogoPath(team)
	}
	return resolveAll(ctx, s, paths)
}

func (s *StorageStore) PlayerImage(ctx context.Context, player string) (string, bool) {
	if strings.TrimSpace(player) == "" {
		return "", false
	}
	return s.resolve(ctx, assets.PlayerImagePath(player))
}

// FetchAllPlayerImages resolves player pictures, keyed by normalized player name.
func (s *StorageStore) FetchAllPlayerImages(ctx context.Context, players []proplayer.ProPlayer) map[string]string {
	paths := map[string]string{}
	for _, player := range players {
		if strings.TrimSpace(player.Player) == "" {
			continue
		}
		paths[assets.PlayerImageName(player.Player)] = assets.PlayerImagePath(player.Player)
	}
	return resolveAll(ctx, s, paths)
}

// FetchItemIcons resolves item icons. Empty slots (id 0) are skipped.
func (s *StorageStore) FetchItemIcons(ctx context.Context, ids []int) map[int]string {
	paths := map[int]string{}
	for _, id := range ids {
		if id != 0 {
			paths[id] = assets.ItemIconPath(id)
		}
	}

	found := resolveAll(ctx, s, paths)
	s.ItemIcons.Update(merge(found))
	return found
}

// FetchRuneIcons resolves rune icons from their object keys.
func (s *StorageStore) FetchRuneIcons(ctx context.Context, pathByID map[int]string) map[int]string {
	paths := make(map[int]string, len(pathByID))
	for id, path := range pathByID {
		if path != "" {
			paths[id] = path
		}
	}

	found := resolveAll(ctx, s, paths)
	s.RuneIcons.Update(merge(found))
	return found
}

func (s *StorageStore) RegionIcon(ctx context.Context, region regions.Select) (string, bool) {
	key := strings.ToUpper(string(region))
	url, ok := s.resolve(ctx, assets.RegionIconPath(key))
	if !ok {
		return "", false
	}

	s.RegionIcons.Update(merge(map[string]string{key: url}))
	return url, true
}

// FetchSummonerSpellIcons resolves the icon of every summoner spell.
func (s *StorageStore) FetchSummonerSpellIcons(ctx context.Context) map[int]string {
	paths := make(map[int]string, len(champion.SummonerSpells))
	for id, name := range champion.SummonerSpells {
		paths[id] = assets.SummonerSpellIconPath(name)
	}

	found := resolveAll(ctx, s, paths)
	s.SummonerSpellIcons.Update(merge(found))
	return found
}

// ResetState forgets every resolved URL.
func (s *StorageStore) ResetState() {
	s.urls.Reset()

	s.RegionIcons.Set(map[string]string{})
	s.RuneIcons.Set(map[int]string{})
	s.ItemIcons.Set(map[int]string{})
	s.SummonerSpellIcons.Set(map[int]string{})
}

func merge[K comparable](found map[K]string) func(map[K]string) map[K]string {
	return func(current map[K]string) map[K]string {
		next := maps.Clone(current)
		if next == nil {
			next = make(map[K]string, len(found))
		}
		maps.Copy(next, found)
		return next
	}
}

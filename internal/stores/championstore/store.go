package championstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/champion"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
)

// Key of the single champion list entry.
const listKey = "list"

type masteryKey struct {
	puuid  string
	region regions.Select
}

type ChampionStoreDeps struct {
	Client requests.Sender
	// When set, the champion list, statistics and matches are read from documents.
	Documents docstore.Store
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// ChampionStore serves champion metadata, statistics and pro games per champion.
type ChampionStore struct {
	client  requests.Sender
	matches MatchSource
	docs    docstore.Store
	logger  zerolog.Logger

	list    *keyedcache.Cache[string, map[int]champion.ChampionName]
	stats   *keyedcache.Cache[int, champion.Stats]
	mastery *keyedcache.Cache[masteryKey, []champion.ChampionMastery]
	pages   *keyedcache.Pager[int, champion.ChampionMatch, Cursor]

	Champions       *observer.Value[map[int]champion.ChampionName]
	ChampionMatches *observer.Value[map[int][]champion.ChampionMatch]
}

func NewChampionStore(deps *ChampionStoreDeps) *ChampionStore {
	publish := observer.WithPublisher(deps.Publisher)

	var matches MatchSource = NewHTTPMatches(deps.Client, deps.Logger)
	if deps.Documents != nil {
		matches = NewDocumentMatches(deps.Documents, deps.Logger)
	}

	return &ChampionStore{
		client:          deps.Client,
		matches:         matches,
		docs:            deps.Documents,
		logger:          deps.Logger,
		list:            keyedcache.New[string, map[int]champion.ChampionName](),
		stats:           keyedcache.New[int, champion.Stats](),
		mastery:         keyedcache.New[masteryKey, []champion.ChampionMastery](),
		pages:           keyedcache.NewPager[int, champion.ChampionMatch, Cursor](),
		Champions:       observer.NewValue("champion.names", map[int]champion.ChampionName{}, publish),
		ChampionMatches: observer.NewValue("champion.matches", map[int][]champion.ChampionMatch{}, publish),
	}
}

// GetChampions loads the champion list once per session.
func (s *ChampionStore) GetChampions(ctx context.Context) (map[int]champion.ChampionName, error) {
	names, err := s.list.GetOrFetch(ctx, listKey, func(ctx context.Context) (map[int]champion.ChampionName, error) {
		if s.docs != nil {
			doc, err := s.docs.Get(ctx, "help/champions")
			if err != nil {
				return nil, err
			}
			names, defaults := converters.MapChampionNames(doc.Data)
			stores.LogDefaults(s.logger, doc.Path, defaults)
			return names, nil
		}

		request := requests.Get(stores.URL(nil, "v2", "champions", "list"))
		return stores.Fetch(ctx, s.client, s.logger, request, converters.MapChampionNames)
	})
	if err != nil {
		return nil, err
	}

	s.Champions.Set(names)
	return names, nil
}

// ChampionName returns the asset name of a loaded champion.
func (s *ChampionStore) ChampionName(id int) (string, bool) {
	name, ok := s.Champions.Get()[id]
	if !ok || name.Value == "" {
		return "", false
	}
	return name.Value, true
}

// ChampionIDs lists the loaded champions.
func (s *ChampionStore) ChampionIDs() []int {
	names := s.Champions.Get()
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	return ids
}

// GetChampionStats returns the aggregated pro results of a champion.
func (s *ChampionStore) GetChampionStats(ctx context.Context, id int) (champion.Stats, error) {
	if id <= 0 {
		return champion.Stats{}, fmt.Errorf("%w: champion id %d", errs.ErrInvalidInput, id)
	}

	return s.stats.GetOrFetch(ctx, id, func(ctx context.Context) (champion.Stats, error) {
		if s.docs != nil {
			doc, err := s.docs.Get(ctx, docstore.Join("champion_history", strconv.Itoa(id)))
			if err != nil {
				return champion.Stats{}, err
			}
			stats, defaults := converters.MapChampionStats(doc.Data)
			stores.LogDefaults(s.logger, doc.Path, defaults)
			return stats, nil
		}

		request := requests.Get(stores.URL(nil, "v2", "champions", strconv.Itoa(id), "stats"))
		return stores.Fetch(ctx, s.client, s.logger, request, converters.MapChampionStats)
	})
}

// GetChampionMatches loads the first page of pro games on a champion, once.
func (s *ChampionStore) GetChampionMatches(ctx context.Context, id int, amount int) ([]champion.ChampionMatch, error) {
	if err := validatePage(id, amount); err != nil {
		return nil, err
	}

	matches, err := s.pages.First(ctx, id, s.pageFunc(id, amount))
	if err != nil {
		return nil, err
	}

	s.publishMatches(id)
	return matches, nil
}

// MoreChampionMatches loads the page after the last loaded game and returns it.
func (s *ChampionStore) MoreChampionMatches(ctx context.Context, id int, amount int) ([]champion.ChampionMatch, error) {
	if err := validatePage(id, amount); err != nil {
		return nil, err
	}

	matches, err := s.pages.Next(ctx, id, s.pageFunc(id, amount))
	if err != nil {
		return nil, err
	}

	s.publishMatches(id)
	return matches, nil
}

func (s *ChampionStore) pageFunc(id int, amount int) keyedcache.PageFunc[champion.ChampionMatch, Cursor] {
	return func(ctx context.Context, after *Cursor) ([]champion.ChampionMatch, Cursor, error) {
		return s.matches.Page(ctx, id, amount, after)
	}
}

func (s *ChampionStore) publishMatches(id int) {
	items, ok := s.pages.Items(id)
	if !ok {
		return
	}

	s.ChampionMatches.Update(func(current map[int][]champion.ChampionMatch) map[int][]champion.ChampionMatch {
		next := stores.Clone(current)
		next[id] = items
		return next
	})
}

// GetChampionMastery returns the champion progress of a player.
func (s *ChampionStore) GetChampionMastery(ctx context.Context, puuid string, region regions.Select) ([]champion.ChampionMastery, error) {
	if strings.TrimSpace(puuid) == "" {
		return nil, fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}
	region = regions.Select(strings.ToUpper(strings.TrimSpace(string(region))))
	if _, err := regions.ToPlatform(region); err != nil {
		return nil, err
	}

	key := masteryKey{puuid: puuid, region: region}
	return s.mastery.GetOrFetch(ctx, key, func(ctx context.Context) ([]champion.ChampionMastery, error) {
		query := url.Values{"region": {string(region)}}
		request := requests.Get(stores.URL(query, "v2", "champions", "mastery", puuid))

		return stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]champion.ChampionMastery, converters.Defaults) {
			return converters.MapList(raw, converters.MapChampionMastery)
		})
	})
}

// GetChampionPositions returns the most played lane of each champion.
func (s *ChampionStore) GetChampionPositions(ctx context.Context, ids []int) (map[int]string, error) {
	if len(ids) == 0 {
		return map[int]string{}, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	request := requests.Get(stores.URL(nil, "v2", "champions", "positions", strings.Join(parts, ".")))
	return stores.Fetch(ctx, s.client, s.logger, request, converters.MapChampionPositions)
}

// ResetState drops every cached champion resource.
func (s *ChampionStore) ResetState() {
	s.list.Reset()
	s.stats.Reset()
	s.mastery.Reset()
	s.pages.Reset()

	s.Champions.Set(map[int]champion.ChampionName{})
	s.ChampionMatches.Set(map[int][]champion.ChampionMatch{})
}

func validatePage(id int, amount int) error {
	if id <= 0 {
		return fmt.Errorf("%w: champion id %d", errs.ErrInvalidInput, id)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: page size %d", errs.ErrInvalidInput, amount)
	}
	return nil
}

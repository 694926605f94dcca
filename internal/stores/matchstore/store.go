package matchstore

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/match"
	queuevalues "leaguerats/pkg/riotvalues/queue"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Featured games shown at once.
const maxFeaturedGames = 2

// HistoryOptions are the optional filters of a match history request.
type HistoryOptions struct {
	Start     int
	Count     int
	Queue     queuevalues.Type
	Type      string
	StartTime time.Time
	EndTime   time.Time
}

func (o HistoryOptions) values(region regions.Select) (url.Values, error) {
	query := url.Values{"region": {string(region)}}

	if o.Start < 0 || o.Count < 0 {
		return nil, fmt.Errorf("%w: negative history window", errs.ErrInvalidInput)
	}
	if o.Start > 0 {
		query.Set("start", strconv.Itoa(o.Start))
	}
	if o.Count > 0 {
		query.Set("count", strconv.Itoa(o.Count))
	}
	if o.Queue != "" {
		id, ok := queuevalues.ID(o.Queue)
		if !ok {
			return nil, fmt.Errorf("%w: unknown queue %s", errs.ErrInvalidInput, o.Queue)
		}
		query.Set("queue", strconv.Itoa(id))
	}
	if o.Type != "" {
		query.Set("type", o.Type)
	}
	if !o.StartTime.IsZero() {
		query.Set("startTime", strconv.FormatInt(o.StartTime.Unix(), 10))
	}
	if !o.EndTime.IsZero() {
		query.Set("endTime", strconv.FormatInt(o.EndTime.Unix(), 10))
	}
	return query, nil
}

type MatchStoreDeps struct {
	Client    requests.Sender
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// MatchStore serves match history, match records and live games.
type MatchStore struct {
	client requests.Sender
	logger zerolog.Logger

	matches *keyedcache.Cache[string, match.MatchData]

	watchedMu sync.Mutex
	watched   map[string]regions.Select

	FeaturedGames *observer.Value[[]match.ActiveGame]
	ActiveGames   *observer.Value[map[string]match.ActiveGame]
}

func NewMatchStore(deps *MatchStoreDeps) *MatchStore {
	publish := observer.WithPublisher(deps.Publisher)

	return &MatchStore{
		client:        deps.Client,
		logger:        deps.Logger,
		matches:       keyedcache.New[string, match.MatchData](),
		watched:       make(map[string]regions.Select),
		FeaturedGames: observer.NewValue("match.featured", []match.ActiveGame{}, publish),
		ActiveGames:   observer.NewValue("match.active", map[string]match.ActiveGame{}, publish),
	}
}

// GetMatchHistory lists match ids of a player. Histories are never cached.
func (s *MatchStore) GetMatchHistory(ctx context.Context, puuid string, region regions.Select, opts HistoryOptions) ([]string, error) {
	if strings.TrimSpace(puuid) == "" {
		return nil, fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}
	region, err := validateRegion(region)
	if err != nil {
		return nil, err
	}

	query, err := opts.values(region)
	if err != nil {
		return nil, err
	}

	return stores.Fetch(ctx, s.client, s.logger, requests.Get(stores.URL(query, "v2", "match", "history", puuid)), converters.MapStringList)
}

// GetMatchData returns a finished match, fetching it once per id.
func (s *MatchStore) GetMatchData(ctx context.Context, matchID string) (match.MatchData, error) {
	if strings.TrimSpace(matchID) == "" {
		return match.MatchData{}, fmt.Errorf("%w: match id is required", errs.ErrInvalidInput)
	}

	return s.matches.GetOrFetch(ctx, matchID, func(ctx context.Context) (match.MatchData, error) {
		request := requests.Get(stores.URL(nil, "v2", "match", "history", "match-data", matchID))
		return stores.Fetch(ctx, s.client, s.logger, request, converters.MapMatchData)
	})
}

// GetMatchesData loads matches in parallel and fails on the first error.
func (s *MatchStore) GetMatchesData(ctx context.Context, matchIDs []string) ([]match.MatchData, error) {
	results := make([]match.MatchData, len(matchIDs))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range matchIDs {
		g.Go(func() error {
			data, err := s.GetMatchData(ctx, id)
			if err != nil {
				return err
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// GetActiveMatch returns the live game of a player.
// Games outside matched summoner's rift or aram are reported as not found.
func (s *MatchStore) GetActiveMatch(ctx context.Context, puuid string, region regions.Select) (match.ActiveGame, error) {
	if strings.TrimSpace(puuid) == "" {
		return match.ActiveGame{}, fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}
	region, err := validateRegion(region)
	if err != nil {
		return match.ActiveGame{}, err
	}

	query := url.Values{"region": {string(region)}}
	game, err := stores.Fetch(ctx, s.client, s.logger, requests.Get(stores.URL(query, "v2", "match", "active", puuid)), converters.MapActiveGame)
	if err != nil {
		return match.ActiveGame{}, err
	}

	if !game.IsTrackable() {
		return match.ActiveGame{}, fmt.Errorf("active game of %s is %s/%s: %w", puuid, game.GameType, game.GameMode, errs.ErrNotFound)
	}
	return game, nil
}

// GetFeaturedGames returns up to two trackable featured games, summoner's rift first.
func (s *MatchStore) GetFeaturedGames(ctx context.Context) ([]match.ActiveGame, error) {
	request := requests.Get(stores.URL(nil, "v2", "match", "featured"))
	games, err := stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]match.ActiveGame, converters.Defaults) {
		return converters.MapList(raw, converters.MapActiveGame)
	})
	if err != nil {
		return nil, err
	}

	games = slices.DeleteFunc(games, func(game match.ActiveGame) bool {
		return !game.IsTrackable()
	})
	slices.SortStableFunc(games, func(a, b match.ActiveGame) int {
		return classicRank(a) - classicRank(b)
	})
	if len(games) > maxFeaturedGames {
		games = games[:maxFeaturedGames]
	}

	s.FeaturedGames.Set(games)
	return games, nil
}

func classicRank(game match.ActiveGame) int {
	if game.GameMode == match.GameModeClassic {
		return 0
	}
	return 1
}

// Watch adds a player to the live game refresh.
func (s *MatchStore) Watch(puuid string, region regions.Select) error {
	region, err := validateRegion(region)
	if err != nil {
		return err
	}
	if strings.TrimSpace(puuid) == "" {
		return fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}

	s.watchedMu.Lock()
	defer s.watchedMu.Unlock()

	s.watched[puuid] = region
	return nil
}

// Unwatch removes a player and its last known game.
func (s *MatchStore) Unwatch(puuid string) {
	s.watchedMu.Lock()
	delete(s.watched, puuid)
	s.watchedMu.Unlock()

	s.removeActive(puuid)
}

// Watched returns the watched players and their regions.
func (s *MatchStore) Watched() map[string]regions.Select {
	s.watchedMu.Lock()
	defer s.watchedMu.Unlock()

	return stores.Clone(s.watched)
}

// RefreshWatched polls the live game of every watched player.
// Each result fully replaces the previous game of the player.
func (s *MatchStore) RefreshWatched(ctx context.Context) error {
	var failures []error

	for puuid, region := range s.Watched() {
		game, err := s.GetActiveMatch(ctx, puuid, region)
		switch {
		case err == nil:
			s.ActiveGames.Update(func(current map[string]match.ActiveGame) map[string]match.ActiveGame {
				next := stores.Clone(current)
				next[puuid] = game
				return next
			})
		case errors.Is(err, errs.ErrNotFound):
			s.removeActive(puuid)
		default:
			s.logger.Warn().Err(err).Str("puuid", puuid).Msg("failed to refresh active game")
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (s *MatchStore) removeActive(puuid string) {
	s.ActiveGames.Update(func(current map[string]match.ActiveGame) map[string]match.ActiveGame {
		if _, ok := current[puuid]; !ok {
			return current
		}
		next := stores.Clone(current)
		delete(next, puuid)
		return next
	})
}

// ResetState drops cached matches, watched players and live games.
func (s *MatchStore) ResetState() {
	s.matches.Reset()

	s.watchedMu.Lock()
	s.watched = make(map[string]regions.Select)
	s.watchedMu.Unlock()

	s.FeaturedGames.Set([]match.ActiveGame{})
	s.ActiveGames.Set(map[string]match.ActiveGame{})
}

func validateRegion(region regions.Select) (regions.Select, error) {
	region = regions.Select(strings.ToUpper(strings.TrimSpace(string(region))))
	if _, err := regions.ToPlatform(region); err != nil {
		return "", err
	}
	return region, nil
}

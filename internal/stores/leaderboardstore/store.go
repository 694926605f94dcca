package leaderboardstore

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
)

// Apex tiers with a ladder.
var Leagues = []string{"challenger", "grandmaster", "master"}

type ladderKey struct {
	region regions.Select
	league string
}

func (k ladderKey) String() string {
	return string(k.region) + "/" + k.league
}

type LeaderboardStoreDeps struct {
	Client requests.Sender
	// When set, ladders are read from documents.
	Documents docstore.Store
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// LeaderboardStore pages through the apex ladders of each region.
type LeaderboardStore struct {
	source Source
	pages  *keyedcache.Pager[ladderKey, league.LeaderboardEntry, Cursor]

	// Loaded rows keyed by "{region}/{league}".
	Entries *observer.Value[map[string][]league.LeaderboardEntry]
}

func NewLeaderboardStore(deps *LeaderboardStoreDeps) *LeaderboardStore {
	var source Source = NewHTTPSource(deps.Client, deps.Logger)
	if deps.Documents != nil {
		source = NewDocumentSource(deps.Documents, deps.Logger)
	}

	return &LeaderboardStore{
		source:  source,
		pages:   keyedcache.NewPager[ladderKey, league.LeaderboardEntry, Cursor](),
		Entries: observer.NewValue("leaderboard.entries", map[string][]league.LeaderboardEntry{}, observer.WithPublisher(deps.Publisher)),
	}
}

// GetFirstLeaderboard loads the top of a ladder at most once.
func (s *LeaderboardStore) GetFirstLeaderboard(ctx context.Context, region regions.Select, tier string, limit int) ([]league.LeaderboardEntry, error) {
	key, err := newLadderKey(region, tier, limit)
	if err != nil {
		return nil, err
	}

	entries, err := s.pages.First(ctx, key, s.pageFunc(key, limit))
	if err != nil {
		return nil, err
	}

	s.publish(key)
	return entries, nil
}

// GetMoreLeaderboard loads the rows after the last loaded one and returns them.
func (s *LeaderboardStore) GetMoreLeaderboard(ctx context.Context, region regions.Select, tier string, limit int) ([]league.LeaderboardEntry, error) {
	key, err := newLadderKey(region, tier, limit)
	if err != nil {
		return nil, err
	}

	entries, err := s.pages.Next(ctx, key, s.pageFunc(key, limit))
	if err != nil {
		return nil, err
	}

	s.publish(key)
	return entries, nil
}

// Leaderboard returns every loaded row of a ladder.
func (s *LeaderboardStore) Leaderboard(region regions.Select, tier string) ([]league.LeaderboardEntry, bool) {
	key := ladderKey{region: normalizeRegion(region), league: strings.ToLower(strings.TrimSpace(tier))}
	return s.pages.Items(key)
}

func (s *LeaderboardStore) pageFunc(key ladderKey, limit int) keyedcache.PageFunc[league.LeaderboardEntry, Cursor] {
	return func(ctx context.Context, after *Cursor) ([]league.LeaderboardEntry, Cursor, error) {
		return s.source.Page(ctx, key.region, key.league, limit, after)
	}
}

func (s *LeaderboardStore) publish(key ladderKey) {
	items, ok := s.pages.Items(key)
	if !ok {
		return
	}

	s.Entries.Update(func(current map[string][]league.LeaderboardEntry) map[string][]league.LeaderboardEntry {
		next := stores.Clone(current)
		next[key.String()] = items
		return next
	})
}

// ResetState drops every loaded ladder.
func (s *LeaderboardStore) ResetState() {
	s.pages.Reset()
	s.Entries.Set(map[string][]league.LeaderboardEntry{})
}

func newLadderKey(region regions.Select, tier string, limit int) (ladderKey, error) {
	region = normalizeRegion(region)
	if _, err := regions.ToPlatform(region); err != nil {
		return ladderKey{}, err
	}

	tier = strings.ToLower(strings.TrimSpace(tier))
	if !slices.Contains(Leagues, tier) {
		return ladderKey{}, fmt.Errorf("%w: unknown league %q", errs.ErrInvalidInput, tier)
	}
	if limit <= 0 {
		return ladderKey{}, fmt.Errorf("%w: limit %d", errs.ErrInvalidInput, limit)
	}
	return ladderKey{region: region, league: tier}, nil
}

func normalizeRegion(region regions.Select) regions.Select {
	return regions.Select(strings.ToUpper(strings.TrimSpace(string(region))))
}

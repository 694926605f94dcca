package leaguestore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/regions"
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/rs/zerolog"
)

type LeagueStoreDeps struct {
	Client    requests.Sender
	Tiers     *tiervalues.Table
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// LeagueStore serves ranked standings.
type LeagueStore struct {
	client requests.Sender
	tiers  *tiervalues.Table
	logger zerolog.Logger

	entries *keyedcache.Cache[string, []league.LeagueEntry]

	Entries *observer.Value[map[string][]league.LeagueEntry]
}

func NewLeagueStore(deps *LeagueStoreDeps) *LeagueStore {
	tiers := deps.Tiers
	if tiers == nil {
		tiers = tiervalues.Default()
	}

	return &LeagueStore{
		client:  deps.Client,
		tiers:   tiers,
		logger:  deps.Logger,
		entries: keyedcache.New[string, []league.LeagueEntry](),
		Entries: observer.NewValue("league.entries", map[string][]league.LeagueEntry{}, observer.WithPublisher(deps.Publisher)),
	}
}

// GetLeagueEntries returns the standings of a player, fetched once per puuid.
func (s *LeagueStore) GetLeagueEntries(ctx context.Context, puuid string, region regions.Select) ([]league.LeagueEntry, error) {
	if strings.TrimSpace(puuid) == "" {
		return nil, fmt.Errorf("%w: puuid is required", errs.ErrInvalidInput)
	}
	region = regions.Select(strings.ToUpper(strings.TrimSpace(string(region))))
	if _, err := regions.ToPlatform(region); err != nil {
		return nil, err
	}

	entries, err := s.entries.GetOrFetch(ctx, puuid, func(ctx context.Context) ([]league.LeagueEntry, error) {
		query := url.Values{"region": {string(region)}}
		request := requests.Get(stores.URL(query, "v2", "league", puuid))

		return stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]league.LeagueEntry, converters.Defaults) {
			return converters.MapList(raw, converters.MapLeagueEntry)
		})
	})
	if err != nil {
		return nil, err
	}

	s.Entries.Update(func(current map[string][]league.LeagueEntry) map[string][]league.LeagueEntry {
		next := stores.Clone(current)
		next[puuid] = entries
		return next
	})
	return entries, nil
}

// TotalLP weights an entry on the configured ladder.
func (s *LeagueStore) TotalLP(entry league.LeagueEntry) int {
	return s.tiers.TotalLP(entry.Tier, entry.Rank, entry.LeaguePoints)
}

// BestEntry returns the highest ranked entry.
func (s *LeagueStore) BestEntry(entries []league.LeagueEntry) (league.LeagueEntry, bool) {
	if len(entries) == 0 {
		return league.LeagueEntry{}, false
	}

	best := entries[0]
	for _, entry := range entries[1:] {
		if s.TotalLP(entry) > s.TotalLP(best) {
			best = entry
		}
	}
	return best, true
}

// ResetState drops cached standings.
func (s *LeagueStore) ResetState() {
	s.entries.Reset()
	s.Entries.Set(map[string][]league.LeagueEntry{})
}

package leaderboardstore

import (
	"context"
	"net/url"
	"strconv"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/stores"
	"leaguerats/pkg/models/league"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
)

const rankField = "rank"

// Cursor marks the last loaded row of a ladder.
type Cursor struct {
	Rank     int
	Document *docstore.Document
}

// Source pages through a ladder in rank order.
type Source interface {
	Page(ctx context.Context, region regions.Select, tier string, limit int, after *Cursor) ([]league.LeaderboardEntry, Cursor, error)
}

// DocumentSource reads leaderboard/{region}/{league}.
type DocumentSource struct {
	docs   docstore.Store
	logger zerolog.Logger
}

func NewDocumentSource(docs docstore.Store, logger zerolog.Logger) *DocumentSource {
	return &DocumentSource{docs: docs, logger: logger}
}

func (s *DocumentSource) Page(ctx context.Context, region regions.Select, tier string, limit int, after *Cursor) ([]league.LeaderboardEntry, Cursor, error) {
	query := docstore.Query{
		Collection: docstore.Join("leaderboard", string(region), tier),
		OrderBy:    rankField,
		Limit:      limit,
	}
	if after != nil {
		query.StartAfter = after.Document
	}

	docs, err := s.docs.Query(ctx, query)
	if err != nil {
		return nil, Cursor{}, err
	}

	entries := make([]league.LeaderboardEntry, 0, len(docs))
	for _, doc := range docs {
		entry, defaults := converters.MapLeaderboardEntry(doc.Data)
		stores.LogDefaults(s.logger, doc.Path, defaults)
		entries = append(entries, entry)
	}

	if len(docs) == 0 {
		return entries, Cursor{}, nil
	}

	last := docs[len(docs)-1]
	return entries, Cursor{Rank: entries[len(entries)-1].Rank, Document: &last}, nil
}

// HTTPSource reads /v2/league/leaderboard/{region}, paging by rank.
type HTTPSource struct {
	client requests.Sender
	logger zerolog.Logger
}

func NewHTTPSource(client requests.Sender, logger zerolog.Logger) *HTTPSource {
	return &HTTPSource{client: client, logger: logger}
}

func (s *HTTPSource) Page(ctx context.Context, region regions.Select, tier string, limit int, after *Cursor) ([]league.LeaderboardEntry, Cursor, error) {
	query := url.Values{
		"league": {tier},
		"amount": {strconv.Itoa(limit)},
	}
	if after != nil {
		query.Set("startAfter", strconv.Itoa(after.Rank))
	}

	request := requests.Get(stores.URL(query, "v2", "league", "leaderboard", string(region)))
	entries, err := stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]league.LeaderboardEntry, converters.Defaults) {
		return converters.MapList(raw, converters.MapLeaderboardEntry)
	})
	if err != nil {
		return nil, Cursor{}, err
	}

	if len(entries) == 0 {
		return entries, Cursor{}, nil
	}
	return entries, Cursor{Rank: entries[len(entries)-1].Rank}, nil
}

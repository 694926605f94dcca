package championstore

import (
	"context"
	"net/url"
	"strconv"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/stores"
	"leaguerats/pkg/models/champion"

	"github.com/rs/zerolog"
)

// Newest games first.
const matchOrderField = "match.info.gameStartTimestamp"

// Cursor marks the last loaded game of a champion.
type Cursor struct {
	MatchID  string
	Document *docstore.Document
}

// MatchSource pages through the pro games played on a champion.
type MatchSource interface {
	Page(ctx context.Context, championID int, amount int, after *Cursor) ([]champion.ChampionMatch, Cursor, error)
}

// HTTPMatches pages through the backend using the last match id.
type HTTPMatches struct {
	client requests.Sender
	logger zerolog.Logger
}

func NewHTTPMatches(client requests.Sender, logger zerolog.Logger) *HTTPMatches {
	return &HTTPMatches{client: client, logger: logger}
}

func (m *HTTPMatches) Page(ctx context.Context, championID int, amount int, after *Cursor) ([]champion.ChampionMatch, Cursor, error) {
	query := url.Values{"amount": {strconv.Itoa(amount)}}
	if after != nil && after.MatchID != "" {
		query.Set("startAfter", after.MatchID)
	}

	request := requests.Get(stores.URL(query, "v2", "champions", strconv.Itoa(championID), "matches"))
	matches, err := stores.Fetch(ctx, m.client, m.logger, request, func(raw any) ([]champion.ChampionMatch, converters.Defaults) {
		return converters.MapList(raw, converters.MapChampionMatch)
	})
	if err != nil {
		return nil, Cursor{}, err
	}

	if len(matches) == 0 {
		return matches, Cursor{}, nil
	}
	return matches, Cursor{MatchID: matches[len(matches)-1].Match.Metadata.MatchID}, nil
}

// DocumentMatches pages through champion_history/{id}/matches.
type DocumentMatches struct {
	docs   docstore.Store
	logger zerolog.Logger
}

func NewDocumentMatches(docs docstore.Store, logger zerolog.Logger) *DocumentMatches {
	return &DocumentMatches{docs: docs, logger: logger}
}

func (m *DocumentMatches) Page(ctx context.Context, championID int, amount int, after *Cursor) ([]champion.ChampionMatch, Cursor, error) {
	query := docstore.Query{
		Collection: docstore.Join("champion_history", strconv.Itoa(championID), "matches"),
		OrderBy:    matchOrderField,
		Desc:       true,
		Limit:      amount,
	}
	if after != nil {
		query.StartAfter = after.Document
	}

	docs, err := m.docs.Query(ctx, query)
	if err != nil {
		return nil, Cursor{}, err
	}

	matches := make([]champion.ChampionMatch, 0, len(docs))
	for _, doc := range docs {
		item, defaults := converters.MapChampionMatch(doc.Data)
		stores.LogDefaults(m.logger, doc.Path, defaults)
		matches = append(matches, item)
	}

	if len(docs) == 0 {
		return matches, Cursor{}, nil
	}

	last := docs[len(docs)-1]
	return matches, Cursor{MatchID: last.ID, Document: &last}, nil
}

package proplayerstore

import (
	"context"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/stores"
	"leaguerats/pkg/models/proplayer"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
)

// RosterSource reads team rosters.
type RosterSource interface {
	Team(ctx context.Context, region regions.ProRegion, team string) ([]proplayer.ProPlayer, error)
	Player(ctx context.Context, region regions.ProRegion, team string, name string) (proplayer.ProPlayer, error)
}

// DocumentRoster reads pro_players/{region}/{team}.
type DocumentRoster struct {
	docs   docstore.Store
	logger zerolog.Logger
}

func NewDocumentRoster(docs docstore.Store, logger zerolog.Logger) *DocumentRoster {
	return &DocumentRoster{docs: docs, logger: logger}
}

func (r *DocumentRoster) Team(ctx context.Context, region regions.ProRegion, team string) ([]proplayer.ProPlayer, error) {
	docs, err := r.docs.Query(ctx, docstore.Query{Collection: rosterCollection(region, team)})
	if err != nil {
		return nil, err
	}

	players := make([]proplayer.ProPlayer, 0, len(docs))
	for _, doc := range docs {
		player, defaults := converters.MapProPlayer(doc.Data)
		stores.LogDefaults(r.logger, doc.Path, defaults)
		players = append(players, player)
	}
	return players, nil
}

func (r *DocumentRoster) Player(ctx context.Context, region regions.ProRegion, team string, name string) (proplayer.ProPlayer, error) {
	doc, err := r.docs.Get(ctx, docstore.Join(rosterCollection(region, team), name))
	if err != nil {
		return proplayer.ProPlayer{}, err
	}

	player, defaults := converters.MapProPlayer(doc.Data)
	stores.LogDefaults(r.logger, doc.Path, defaults)
	return player, nil
}

// HTTPRoster reads /v2/pro-players/accounts/{region}/{team}[/{name}].
type HTTPRoster struct {
	client requests.Sender
	logger zerolog.Logger
}

func NewHTTPRoster(client requests.Sender, logger zerolog.Logger) *HTTPRoster {
	return &HTTPRoster{client: client, logger: logger}
}

func (r *HTTPRoster) Team(ctx context.Context, region regions.ProRegion, team string) ([]proplayer.ProPlayer, error) {
	request := requests.Get(stores.URL(nil, "v2", "pro-players", "accounts", string(region), team))
	return stores.Fetch(ctx, r.client, r.logger, request, func(raw any) ([]proplayer.ProPlayer, converters.Defaults) {
		return converters.MapList(raw, converters.MapProPlayer)
	})
}

func (r *HTTPRoster) Player(ctx context.Context, region regions.ProRegion, team string, name string) (proplayer.ProPlayer, error) {
	request := requests.Get(stores.URL(nil, "v2", "pro-players", "accounts", string(region), team, name))
	return stores.Fetch(ctx, r.client, r.logger, request, converters.MapProPlayer)
}

func rosterCollection(region regions.ProRegion, team string) string {
	return docstore.Join("pro_players", string(region), team)
}

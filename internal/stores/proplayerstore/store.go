package proplayerstore

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/converters"
	"leaguerats/internal/keyedcache"
	"leaguerats/internal/live"
	"leaguerats/internal/observer"
	"leaguerats/internal/stores"
	"leaguerats/pkg/errs"
	"leaguerats/pkg/messages"
	"leaguerats/pkg/models/champion"
	"leaguerats/pkg/models/proplayer"
	"leaguerats/pkg/regions"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var errNoDocuments = fmt.Errorf("%w: no document store configured", errs.ErrInvalidInput)

type teamKey struct {
	region regions.ProRegion
	team   string
}

// TransferRequest moves a player between two teams.
type TransferRequest struct {
	Player   string `json:"player"`
	FromTeam string `json:"fromTeam"`
	ToTeam   string `json:"toTeam"`
}

type ProPlayerStoreDeps struct {
	Client requests.Sender
	// Required by the Watch operations. Rosters are read from it when Roster is nil.
	Documents docstore.Store
	Roster    RosterSource
	Live      *live.Registry
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// ProPlayerStore serves esports rosters, live pro games and streams.
type ProPlayerStore struct {
	client requests.Sender
	docs   docstore.Store
	roster RosterSource
	live   *live.Registry
	logger zerolog.Logger

	perRegion *keyedcache.Cache[regions.ProRegion, []proplayer.ProPlayer]
	perTeam   *keyedcache.Cache[teamKey, []proplayer.ProPlayer]
	perName   *keyedcache.Cache[string, proplayer.ProPlayer]
	flat      *keyedcache.Collection[string, proplayer.ProPlayer]

	Players        *observer.Value[[]proplayer.ProPlayer]
	ActiveGames    *observer.Value[[]proplayer.ProActiveGame]
	AccountNames   *observer.Value[map[string]proplayer.AccountName]
	Bootcamp       *observer.Value[[]proplayer.BootcampAccount]
	LiveStreams    *observer.Value[map[string]proplayer.Stream]
	NotLiveStreams *observer.Value[map[string]proplayer.Stream]
}

func NewProPlayerStore(deps *ProPlayerStoreDeps) *ProPlayerStore {
	publish := observer.WithPublisher(deps.Publisher)

	roster := deps.Roster
	if roster == nil {
		if deps.Documents != nil {
			roster = NewDocumentRoster(deps.Documents, deps.Logger)
		} else {
			roster = NewHTTPRoster(deps.Client, deps.Logger)
		}
	}

	registry := deps.Live
	if registry == nil {
		registry = live.NewRegistry()
	}

	return &ProPlayerStore{
		client:         deps.Client,
		docs:           deps.Documents,
		roster:         roster,
		live:           registry,
		logger:         deps.Logger,
		perRegion:      keyedcache.New[regions.ProRegion, []proplayer.ProPlayer](),
		perTeam:        keyedcache.New[teamKey, []proplayer.ProPlayer](),
		perName:        keyedcache.New[string, proplayer.ProPlayer](),
		flat:           keyedcache.NewCollection(proplayer.ProPlayer.Key),
		Players:        observer.NewValue("proplayer.players", []proplayer.ProPlayer{}, publish),
		ActiveGames:    observer.NewValue("proplayer.active_games", []proplayer.ProActiveGame{}, publish),
		AccountNames:   observer.NewValue("proplayer.account_names", map[string]proplayer.AccountName{}, publish),
		Bootcamp:       observer.NewValue("proplayer.bootcamp", []proplayer.BootcampAccount{}, publish),
		LiveStreams:    observer.NewValue("proplayer.live_streams", map[string]proplayer.Stream{}, publish),
		NotLiveStreams: observer.NewValue("proplayer.not_live_streams", map[string]proplayer.Stream{}, publish),
	}
}

// GetProPlayersForRegion loads every team of a league concurrently and adds them to the shown players.
func (s *ProPlayerStore) GetProPlayersForRegion(ctx context.Context, region regions.ProRegion) ([]proplayer.ProPlayer, error) {
	region, err := regions.ParseProRegion(string(region))
	if err != nil {
		return nil, err
	}

	players, err := s.perRegion.GetOrFetch(ctx, region, func(ctx context.Context) ([]proplayer.ProPlayer, error) {
		teams := regions.TeamsPerRegion[region]
		rosters := make([][]proplayer.ProPlayer, len(teams))

		g, ctx := errgroup.WithContext(ctx)
		for i, team := range teams {
			g.Go(func() error {
				roster, err := s.teamRoster(ctx, region, team)
				if err != nil {
					return fmt.Errorf("team %s: %w", team, err)
				}
				rosters[i] = roster
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
		return slices.Concat(rosters...), nil
	})
	if err != nil {
		return nil, err
	}

	s.flat.Upsert(players...)
	s.Players.Set(s.flat.Values())
	return players, nil
}

// GetProPlayersFromTeam loads one roster and adds it to the shown players.
func (s *ProPlayerStore) GetProPlayersFromTeam(ctx context.Context, region regions.ProRegion, team string) ([]proplayer.ProPlayer, error) {
	region, err := regions.ParseProRegion(string(region))
	if err != nil {
		return nil, err
	}
	team, err = normalizeTeam(team)
	if err != nil {
		return nil, err
	}

	players, err := s.teamRoster(ctx, region, team)
	if err != nil {
		return nil, err
	}

	s.flat.Upsert(players...)
	s.Players.Set(s.flat.Values())
	return players, nil
}

func (s *ProPlayerStore) teamRoster(ctx context.Context, region regions.ProRegion, team string) ([]proplayer.ProPlayer, error) {
	return s.perTeam.GetOrFetch(ctx, teamKey{region: region, team: team}, func(ctx context.Context) ([]proplayer.ProPlayer, error) {
		return s.roster.Team(ctx, region, team)
	})
}

// GetPlayerFromTeam finds a player of a team by name, ignoring case.
func (s *ProPlayerStore) GetPlayerFromTeam(ctx context.Context, team string, name string) (proplayer.ProPlayer, error) {
	team, err := normalizeTeam(team)
	if err != nil {
		return proplayer.ProPlayer{}, err
	}

	region, ok := regions.ProRegionForTeam(team)
	if !ok {
		return proplayer.ProPlayer{}, fmt.Errorf("%w: unknown team %s", errs.ErrNotFound, team)
	}

	players, err := s.teamRoster(ctx, region, team)
	if err != nil {
		return proplayer.ProPlayer{}, err
	}

	for _, player := range players {
		if strings.EqualFold(player.Player, name) {
			return player, nil
		}
	}
	return proplayer.ProPlayer{}, fmt.Errorf("%w: player %s in %s", errs.ErrNotFound, name, team)
}

// GetPlayerByName looks a player up in every roster, league by league.
func (s *ProPlayerStore) GetPlayerByName(ctx context.Context, name string) (proplayer.ProPlayer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return proplayer.ProPlayer{}, fmt.Errorf("%w: player name is required", errs.ErrInvalidInput)
	}

	// Names differing only in case share one entry.
	key := strings.ToLower(name)
	return s.perName.GetOrFetch(ctx, key, func(ctx context.Context) (proplayer.ProPlayer, error) {
		for _, region := range regions.ProRegions {
			for _, team := range regions.TeamsPerRegion[region] {
				player, err := s.roster.Player(ctx, region, team, name)
				if errors.Is(err, errs.ErrNotFound) {
					continue
				}
				if err != nil {
					return proplayer.ProPlayer{}, err
				}
				return player, nil
			}
		}
		return proplayer.ProPlayer{}, fmt.Errorf("%w: player %s", errs.ErrNotFound, name)
	})
}

// GetAllProPlayers loads every roster in one request and adds it to the shown players.
func (s *ProPlayerStore) GetAllProPlayers(ctx context.Context) ([]proplayer.ProPlayer, error) {
	request := requests.Get(stores.URL(nil, "v2", "pro-players", "players"))
	players, err := stores.Fetch(ctx, s.client, s.logger, request, mapLeagues)
	if err != nil {
		return nil, err
	}

	s.flat.Upsert(players...)
	s.Players.Set(s.flat.Values())
	return players, nil
}

// Flatten region -> team -> players, leagues in display order first.
func mapLeagues(raw any) ([]proplayer.ProPlayer, converters.Defaults) {
	leagues, ok := raw.(map[string]any)
	if !ok {
		return []proplayer.ProPlayer{}, converters.Defaults{"$"}
	}

	var (
		players  []proplayer.ProPlayer
		defaults converters.Defaults
	)
	for _, region := range leagueOrder(leagues) {
		teams, ok := leagues[region].(map[string]any)
		if !ok {
			defaults = append(defaults, region)
			continue
		}
		for _, team := range slices.Sorted(maps.Keys(teams)) {
			roster, missing := converters.MapList(teams[team], converters.MapProPlayer)
			for _, field := range missing {
				defaults = append(defaults, region+"."+team+field)
			}
			players = append(players, roster...)
		}
	}

	if players == nil {
		players = []proplayer.ProPlayer{}
	}
	return players, defaults
}

func leagueOrder(leagues map[string]any) []string {
	var order []string
	for _, region := range regions.ProRegions {
		if _, ok := leagues[string(region)]; ok {
			order = append(order, string(region))
		}
	}
	for _, region := range slices.Sorted(maps.Keys(leagues)) {
		if !slices.Contains(order, region) {
			order = append(order, region)
		}
	}
	return order
}

// CreateProPlayer registers a player. GameName and TagLine link an account when set.
func (s *ProPlayerStore) CreateProPlayer(ctx context.Context, player proplayer.ProPlayer) (proplayer.ProPlayer, error) {
	if strings.TrimSpace(player.Player) == "" || strings.TrimSpace(player.Team) == "" {
		return proplayer.ProPlayer{}, fmt.Errorf("%w: player and team are required", errs.ErrInvalidInput)
	}
	if (player.GameName == "") != (player.TagLine == "") {
		return proplayer.ProPlayer{}, fmt.Errorf("%w: riot id needs both game name and tag", errs.ErrInvalidInput)
	}

	request := requests.Post(stores.URL(nil, "v2", "pro-players", "players"), player)
	created, err := stores.Fetch(ctx, s.client, s.logger, request, converters.MapProPlayer)
	if err != nil {
		return proplayer.ProPlayer{}, err
	}

	s.flat.Upsert(created)
	s.Players.Set(s.flat.Values())
	return created, nil
}

// TransferPlayer moves a player to another team. Cached rosters are left as loaded.
func (s *ProPlayerStore) TransferPlayer(ctx context.Context, transfer TransferRequest) (proplayer.ProPlayer, error) {
	if transfer.Player == "" || transfer.FromTeam == "" || transfer.ToTeam == "" {
		return proplayer.ProPlayer{}, fmt.Errorf("%w: player, fromTeam and toTeam are required", errs.ErrInvalidInput)
	}

	request := requests.Put(stores.URL(nil, "v2", "pro-players", "players", "transfer"), transfer)
	moved, err := stores.Fetch(ctx, s.client, s.logger, request, converters.MapProPlayer)
	if err != nil {
		return proplayer.ProPlayer{}, err
	}

	s.flat.Upsert(moved)
	s.Players.Set(s.flat.Values())
	return moved, nil
}

// GetAccountNames loads the puuid to pro player index.
func (s *ProPlayerStore) GetAccountNames(ctx context.Context) (map[string]proplayer.AccountName, error) {
	request := requests.Get(stores.URL(nil, "v2", "pro-players", "account-names"))
	names, err := stores.Fetch(ctx, s.client, s.logger, request, converters.MapAccountNames)
	if err != nil {
		return nil, err
	}

	s.AccountNames.Set(names)
	return names, nil
}

// GetBootcampLeaderboard loads the ranked pro accounts of the bootcamp ladder.
func (s *ProPlayerStore) GetBootcampLeaderboard(ctx context.Context) ([]proplayer.BootcampAccount, error) {
	request := requests.Get(stores.URL(nil, "v2", "pro-players", "bootcamp", "leaderboard"))
	accounts, err := stores.Fetch(ctx, s.client, s.logger, request, func(raw any) ([]proplayer.BootcampAccount, converters.Defaults) {
		return converters.MapList(raw, converters.MapBootcampAccount)
	})
	if err != nil {
		s.Bootcamp.Set([]proplayer.BootcampAccount{})
		return nil, err
	}

	s.Bootcamp.Set(accounts)
	return accounts, nil
}

// GetHistoryStats aggregates the last games of a player per champion.
func (s *ProPlayerStore) GetHistoryStats(ctx context.Context, team string, player string, amount int) (map[int]champion.Stats, error) {
	if strings.TrimSpace(team) == "" || strings.TrimSpace(player) == "" {
		return nil, fmt.Errorf("%w: team and player are required", errs.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount %d", errs.ErrInvalidInput, amount)
	}

	query := url.Values{"amount": {strconv.Itoa(amount)}}
	request := requests.Get(stores.URL(query, "v2", "pro-players", "history-stats", team, player))
	return stores.Fetch(ctx, s.client, s.logger, request, converters.MapChampionStatsByID)
}

// WatchActiveGames follows the live pro games. Every snapshot replaces the list.
func (s *ProPlayerStore) WatchActiveGames(ctx context.Context) error {
	if s.docs == nil {
		return errNoDocuments
	}

	s.live.Cancel(live.ActiveProGames)
	unsubscribe, err := s.docs.Listen(ctx, live.ActiveProGames, func(snapshot docstore.Snapshot) {
		games := make([]proplayer.ProActiveGame, 0, len(snapshot.Documents))
		for _, doc := range snapshot.Documents {
			game, defaults := converters.MapProActiveGame(doc.Data)
			stores.LogDefaults(s.logger, doc.Path, defaults)
			games = append(games, game)
		}
		s.ActiveGames.Set(games)
	}, s.listenError(live.ActiveProGames))
	if err != nil {
		return err
	}

	s.live.Replace(live.ActiveProGames, unsubscribe)
	return nil
}

// WatchLiveStreams follows the live or offline stream channels.
func (s *ProPlayerStore) WatchLiveStreams(ctx context.Context, isLive bool) error {
	if s.docs == nil {
		return errNoDocuments
	}

	stream, target := s.streamTarget(isLive)
	s.live.Cancel(stream)
	unsubscribe, err := s.docs.Listen(ctx, stream, func(snapshot docstore.Snapshot) {
		if !snapshot.Exists() {
			target.Set(map[string]proplayer.Stream{})
			return
		}
		doc := snapshot.Documents[0]
		streams, defaults := converters.MapStreams(doc.Data)
		stores.LogDefaults(s.logger, doc.Path, defaults)
		target.Set(streams)
	}, s.listenError(stream))
	if err != nil {
		return err
	}

	s.live.Replace(stream, unsubscribe)
	return nil
}

// RefreshLiveStreams polls the stream channels once.
func (s *ProPlayerStore) RefreshLiveStreams(ctx context.Context, isLive bool) (map[string]proplayer.Stream, error) {
	state := "not_live"
	if isLive {
		state = "live"
	}

	request := requests.Get(stores.URL(nil, "v2", "pro-players", "live-streams", state))
	streams, err := stores.Fetch(ctx, s.client, s.logger, request, converters.MapStreams)
	if err != nil {
		return nil, err
	}

	_, target := s.streamTarget(isLive)
	target.Set(streams)
	return streams, nil
}

func (s *ProPlayerStore) streamTarget(isLive bool) (string, *observer.Value[map[string]proplayer.Stream]) {
	if isLive {
		return live.LiveStreams, s.LiveStreams
	}
	return live.NotLiveStreams, s.NotLiveStreams
}

func (s *ProPlayerStore) listenError(stream string) func(error) {
	return func(err error) {
		s.logger.Error().Err(err).Msgf(messages.ListenerFailed, stream)
	}
}

// Watching lists the active subscriptions.
func (s *ProPlayerStore) Watching() []string {
	return s.live.Active()
}

// ResetPlayers clears the shown players only.
func (s *ProPlayerStore) ResetPlayers() {
	s.flat.Reset()
	s.Players.Set([]proplayer.ProPlayer{})
}

// ResetState drops every roster, clears the values and stops the listeners.
func (s *ProPlayerStore) ResetState() {
	s.live.CloseAll()

	s.perRegion.Reset()
	s.perTeam.Reset()
	s.perName.Reset()
	s.ResetPlayers()

	s.ActiveGames.Set([]proplayer.ProActiveGame{})
	s.AccountNames.Set(map[string]proplayer.AccountName{})
	s.Bootcamp.Set([]proplayer.BootcampAccount{})
	s.LiveStreams.Set(map[string]proplayer.Stream{})
	s.NotLiveStreams.Set(map[string]proplayer.Stream{})
}

func normalizeTeam(team string) (string, error) {
	team = strings.ToUpper(strings.TrimSpace(team))
	if team == "" {
		return "", fmt.Errorf("%w: team is required", errs.ErrInvalidInput)
	}
	return team, nil
}

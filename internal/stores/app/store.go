package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"leaguerats/internal/observer"
	"leaguerats/internal/stores/accountstore"
	"leaguerats/internal/stores/championstore"
	"leaguerats/internal/stores/leaderboardstore"
	"leaguerats/internal/stores/leaguestore"
	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/internal/stores/runestore"
	"leaguerats/internal/stores/storagestore"
	"leaguerats/pkg/models/proplayer"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type AppStoreDeps struct {
	Accounts     *accountstore.AccountStore
	Matches      *matchstore.MatchStore
	Leagues      *leaguestore.LeagueStore
	Champions    *championstore.ChampionStore
	ProPlayers   *proplayerstore.ProPlayerStore
	Runes        *runestore.RuneStore
	Leaderboards *leaderboardstore.LeaderboardStore
	Storage      *storagestore.StorageStore
	// Follow streams and pro games through document listeners instead of polling.
	Push      bool
	Publisher observer.Publisher
	Logger    zerolog.Logger
}

// AppStore loads the data every page needs and resets the session.
type AppStore struct {
	deps   AppStoreDeps
	logger zerolog.Logger
	mu     sync.Mutex

	Loading *observer.Value[bool]
}

func NewAppStore(deps *AppStoreDeps) *AppStore {
	return &AppStore{
		deps:    *deps,
		logger:  deps.Logger,
		Loading: observer.NewValue("app.loading", false, observer.WithPublisher(deps.Publisher)),
	}
}

// Collects step failures from concurrent loaders.
type failures struct {
	mu   sync.Mutex
	errs []error
}

func (f *failures) add(step string, err error) {
	if err == nil {
		return
	}
	f.mu.Lock()
	f.errs = append(f.errs, fmt.Errorf("%s: %w", step, err))
	f.mu.Unlock()
}

// GetInitialData loads rosters, icons and reference data, then starts the live feeds.
// A failed step doesn't stop the others. Icon lookups never fail.
func (s *AppStore) GetInitialData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Loading.Set(true)
	defer s.Loading.Set(false)

	var failed failures

	players, err := s.deps.ProPlayers.GetAllProPlayers(ctx)
	failed.add("pro players", err)
	if err != nil {
		players = []proplayer.ProPlayer{}
	}

	var g errgroup.Group
	g.Go(func() error {
		images := s.deps.Storage.FetchAllPlayerImages(ctx, players)
		s.logger.Debug().Int("found", len(images)).Msg("player images loaded")
		return nil
	})
	g.Go(func() error {
		logos := s.deps.Storage.FetchAllTeamLogos(ctx)
		s.logger.Debug().Int("found", len(logos)).Msg("team logos loaded")
		return nil
	})
	g.Go(func() error {
		_, err := s.deps.ProPlayers.GetAccountNames(ctx)
		failed.add("account names", err)
		return nil
	})
	_ = g.Wait()

	_, championsErr := s.deps.Champions.GetChampions(ctx)
	failed.add("champions", championsErr)

	var icons errgroup.Group
	if championsErr == nil {
		icons.Go(func() error {
			found := s.deps.Storage.FetchAllChampionIcons(ctx, s.deps.Champions.ChampionIDs())
			s.logger.Debug().Int("found", len(found)).Msg("champion icons loaded")
			return nil
		})
	}
	icons.Go(func() error {
		s.deps.Storage.FetchAllRankIcons(ctx)
		return nil
	})
	icons.Go(func() error {
		_, err := s.deps.Runes.GetRuneInfo(ctx)
		failed.add("rune info", err)
		return nil
	})
	icons.Go(func() error {
		s.deps.Storage.FetchSummonerSpellIcons(ctx)
		return nil
	})
	_ = icons.Wait()

	s.startFeeds(ctx, &failed)

	if err := errors.Join(failed.errs...); err != nil {
		s.logger.Warn().Err(err).Msg("initial data partially loaded")
		return err
	}
	return nil
}

func (s *AppStore) startFeeds(ctx context.Context, failed *failures) {
	if !s.deps.Push {
		_, err := s.deps.ProPlayers.RefreshLiveStreams(ctx, true)
		failed.add("live streams", err)
		_, err = s.deps.ProPlayers.RefreshLiveStreams(ctx, false)
		failed.add("offline streams", err)
		return
	}

	failed.add("live streams", s.deps.ProPlayers.WatchLiveStreams(ctx, true))
	failed.add("offline streams", s.deps.ProPlayers.WatchLiveStreams(ctx, false))
	failed.add("active pro games", s.deps.ProPlayers.WatchActiveGames(ctx))
}

// ResetState clears every store and stops the listeners.
func (s *AppStore) ResetState() {
	resets := []interface{ ResetState() }{
		s.deps.Accounts,
		s.deps.Matches,
		s.deps.Leagues,
		s.deps.Champions,
		s.deps.ProPlayers,
		s.deps.Runes,
		s.deps.Leaderboards,
		s.deps.Storage,
	}
	for _, store := range resets {
		store.ResetState()
	}

	s.Loading.Set(false)
}

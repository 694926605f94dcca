package jobs

import (
	"context"

	"leaguerats/internal/stores/matchstore"

	"github.com/rs/zerolog"
)

// RefreshFeaturedGames replaces the featured games.
func RefreshFeaturedGames(ctx context.Context, matches *matchstore.MatchStore, logger zerolog.Logger) error {
	games, err := matches.GetFeaturedGames(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("featured games refresh failed")
		return err
	}

	logger.Debug().Int("games", len(games)).Msg("featured games refreshed")
	return nil
}

// RefreshWatchedGames polls the live game of every watched player.
func RefreshWatchedGames(ctx context.Context, matches *matchstore.MatchStore, logger zerolog.Logger) error {
	watched := len(matches.Watched())
	if watched == 0 {
		return nil
	}

	if err := matches.RefreshWatched(ctx); err != nil {
		logger.Warn().Err(err).Int("watched", watched).Msg("some active games were not refreshed")
		return err
	}

	logger.Debug().Int("watched", watched).Msg("active games refreshed")
	return nil
}

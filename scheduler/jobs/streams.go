package jobs

import (
	"context"
	"errors"

	"leaguerats/internal/stores/proplayerstore"

	"github.com/rs/zerolog"
)

// RefreshLiveStreams polls both stream lists. Used when documents can't be listened to.
func RefreshLiveStreams(ctx context.Context, pros *proplayerstore.ProPlayerStore, logger zerolog.Logger) error {
	var failures []error

	for _, isLive := range []bool{true, false} {
		streams, err := pros.RefreshLiveStreams(ctx, isLive)
		if err != nil {
			logger.Error().Err(err).Bool("live", isLive).Msg("stream refresh failed")
			failures = append(failures, err)
			continue
		}
		logger.Debug().Bool("live", isLive).Int("streams", len(streams)).Msg("streams refreshed")
	}

	return errors.Join(failures...)
}

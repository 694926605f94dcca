package scheduler

import (
	"context"
	"fmt"
	"time"

	"leaguerats/internal/stores/matchstore"
	"leaguerats/internal/stores/proplayerstore"
	"leaguerats/pkg/config"
	"leaguerats/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

type SchedulerDeps struct {
	Config     config.SchedulerConfiguration
	Matches    *matchstore.MatchStore
	ProPlayers *proplayerstore.ProPlayerStore
	// Streams are pushed by document listeners, so no polling job is needed.
	Push   bool
	Logger zerolog.Logger
}

// Scheduler runs the periodic refresh jobs.
type Scheduler struct {
	cron   gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger
}

// Create a new scheduler with every job registered. Jobs start on Start.
func New(deps *SchedulerDeps) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	scheduler := &Scheduler{
		cron:   s,
		ctx:    ctx,
		cancel: cancel,
		logger: deps.Logger,
	}

	// Overlapping runs are rescheduled.
	_, err = s.NewJob(
		gocron.DurationJob(deps.Config.FeaturedGamesInterval),
		gocron.NewTask(
			jobs.RefreshFeaturedGames,
			ctx,
			deps.Matches,
			deps.Logger,
		),
		gocron.WithName("featured-games"),
		gocron.WithTags("match"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create featured games job: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(deps.Config.ActiveGameInterval),
		gocron.NewTask(
			jobs.RefreshWatchedGames,
			ctx,
			deps.Matches,
			deps.Logger,
		),
		gocron.WithName("watched-games"),
		gocron.WithTags("match"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create watched games job: %w", err)
	}

	if !deps.Push {
		_, err = s.NewJob(
			gocron.DurationJob(deps.Config.StreamsInterval),
			gocron.NewTask(
				jobs.RefreshLiveStreams,
				ctx,
				deps.ProPlayers,
				deps.Logger,
			),
			gocron.WithName("live-streams"),
			gocron.WithTags("proplayer"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create live streams job: %w", err)
		}
	}

	return scheduler, nil
}

// JobNames lists the registered jobs.
func (s *Scheduler) JobNames() []string {
	var names []string
	for _, job := range s.cron.Jobs() {
		names = append(names, job.Name())
	}
	return names
}

func (s *Scheduler) Start() {
	s.logger.Info().Strs("jobs", s.JobNames()).Msg("starting scheduler")
	s.cron.Start()
}

// Shutdown cancels running jobs and waits for them.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		s.logger.Error().Err(err).Msg("error shutting down scheduler")
		return err
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"leaguerats/api/health"
	"leaguerats/api/modules"
	"leaguerats/api/routes"
	"leaguerats/internal/stores/app"
	"leaguerats/pkg/config"
	"leaguerats/pkg/logger"
	"leaguerats/scheduler"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

func main() {
	fx.New(
		modules.Module,
		fx.Invoke(runServer),
	).Run()
}

type serverParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Lifetime  context.Context
	Config    *config.Config
	Router    *routes.Router
	Health    *health.Server
	Scheduler *scheduler.Scheduler
	App       *app.AppStore
	Logger    zerolog.Logger
	LogSink   *logger.FileSink
	S3        *s3.Client
}

func runServer(p serverParams) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", p.Config.Server.Port),
		Handler: p.Router.Handler(p.Config.Server.AllowedOrigins),
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			list, err := net.Listen("tcp", ":"+p.Config.Server.HealthPort)
			if err != nil {
				return fmt.Errorf("couldn't start the health listener: %w", err)
			}
			go func() {
				if err := p.Health.Serve(list); err != nil {
					p.Logger.Error().Err(err).Msg("health server failed")
				}
			}()

			go func() {
				p.Logger.Info().Str("addr", srv.Addr).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Fatal().Err(err).Msg("server failed")
				}
			}()

			// Ready once the initial data is in, even partially.
			go func() {
				if err := p.App.GetInitialData(p.Lifetime); err != nil {
					p.Logger.Warn().Err(err).Msg("initial data partially loaded")
				}
				p.Health.SetServing(true)
				p.Logger.Info().Msg("initial data loaded")
			}()

			p.Scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info().Msg("shutting down server")
			p.Health.Stop()

			if err := p.Scheduler.Shutdown(); err != nil {
				p.Logger.Warn().Err(err).Msg("scheduler shutdown failed")
			}
			p.App.ResetState()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				p.Logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			uploadLogs(shutdownCtx, p)
			p.Logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

// Ship the log file to the log bucket, when there is one.
func uploadLogs(ctx context.Context, p serverParams) {
	if p.S3 == nil || p.Config.Bucket.LogBucket == "" {
		return
	}

	key := fmt.Sprintf("api/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
	if err := p.LogSink.UploadToS3Bucket(ctx, p.S3, p.Config.Bucket.LogBucket, key); err != nil {
		p.Logger.Error().Err(err).Msg("failed to upload logs")
	}
}

package modules

import (
	"context"
	"os"

	"leaguerats/fetcher/assets"
	"leaguerats/fetcher/docstore"
	"leaguerats/fetcher/requests"
	"leaguerats/internal/live"
	"leaguerats/internal/observer"
	"leaguerats/pkg/config"
	"leaguerats/pkg/database"
	"leaguerats/pkg/logger"
	"leaguerats/pkg/redis"
	tiervalues "leaguerats/pkg/riotvalues/tier"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module containing every dependency of the API process.
var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.Provide(config.Load),
	fx.Provide(provideLifetime),
	// infrastructure
	fx.Provide(provideClient),
	fx.Provide(provideRedis),
	fx.Provide(provideDocuments),
	fx.Provide(providePublisher),
	fx.Provide(provideS3),
	fx.Provide(provideResolver),
	fx.Provide(provideTiers),
	fx.Provide(live.NewRegistry),
	// stores
	StoresModule,
	// presentation
	HandlersModule,
)

// The level comes from the environment since the configuration logs while loading.
func provideLogger(lc fx.Lifecycle) (zerolog.Logger, *logger.FileSink, error) {
	log, sink, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return zerolog.Logger{}, nil, err
	}

	lc.Append(fx.StopHook(sink.Close))
	return log, sink, nil
}

// Context of the whole process, cancelled on shutdown.
func provideLifetime(lc fx.Lifecycle) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.StopHook(cancel))
	return ctx
}

func provideClient(cfg *config.Config, logger zerolog.Logger) requests.Sender {
	var limiter *requests.Limiter
	if cfg.API.RateLimit > 0 {
		limiter = requests.NewLimiter(requests.Window{
			Count:    cfg.API.RateLimit,
			Interval: cfg.API.RateLimitInterval,
		})
	}

	return requests.NewClient(&requests.ClientDeps{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
		Limiter: limiter,
	})
}

// Nil when no redis host is configured.
func provideRedis(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*redis.RedisClient, error) {
	if cfg.Redis.Host == "" {
		return nil, nil
	}

	client := redis.NewClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("redis unreachable, listeners will poll")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

// Nil when no database is configured. Stores then read everything from the backend API.
func provideDocuments(lc fx.Lifecycle, cfg *config.Config, client *redis.RedisClient, logger zerolog.Logger) (docstore.Store, error) {
	if cfg.Database.DSN == "" {
		logger.Info().Msg("no database configured, documents disabled")
		return nil, nil
	}

	db, err := database.NewConnection(cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		return nil, err
	}

	rawDb, err := db.DB()
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(rawDb.Close))

	if err := database.RunMigrations(rawDb, cfg.Database.MigrationsPath, cfg.Database.Name, logger); err != nil {
		return nil, err
	}

	deps := &docstore.PostgresStoreDeps{
		DB:           db,
		Logger:       logger,
		PollInterval: cfg.Scheduler.ActiveGameInterval,
	}
	if client != nil {
		deps.Notifier = docstore.NewRedisNotifier(client, logger)
	}
	return docstore.NewPostgresStore(deps), nil
}

func providePublisher(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (observer.Publisher, error) {
	if cfg.NATS.URL == "" {
		return observer.NopPublisher{}, nil
	}

	publisher, err := observer.NewNATSPublisher(cfg.NATS.URL, "leaguerats-api", cfg.NATS.Prefix)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("prefix", cfg.NATS.Prefix).Msg("publishing state changes to nats")
	lc.Append(fx.StopHook(publisher.Close))
	return publisher, nil
}

// Nil when no bucket is configured.
func provideS3(cfg *config.Config) *s3.Client {
	if cfg.Bucket.AssetBucket == "" && cfg.Bucket.LogBucket == "" {
		return nil
	}
	return assets.NewS3Client(cfg.Bucket)
}

func provideResolver(cfg *config.Config, client *s3.Client) assets.Resolver {
	if client == nil || cfg.Bucket.AssetBucket == "" {
		return assets.StaticResolver{BaseURL: cfg.Bucket.PublicURL}
	}
	return assets.NewS3ResolverFromClient(client, cfg.Bucket.AssetBucket, cfg.Bucket.PublicURL, cfg.Bucket.PresignTTL)
}

func provideTiers(cfg *config.Config) (*tiervalues.Table, error) {
	return tiervalues.NewTable(cfg.League.Tiers)
}

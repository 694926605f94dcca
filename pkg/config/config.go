package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Backend API configuration.
type APIConfiguration struct {
	BaseURL string
	Timeout time.Duration

	// Client side throttle, zero disables it.
	RateLimit         int
	RateLimitInterval time.Duration
}

// Document store configuration.
type DatabaseConfiguration struct {
	DSN            string
	MigrationsPath string
	Name           string
	MaxConns       int
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Bucket configuration, used for assets and log uploads.
type BucketConfiguration struct {
	Endpoint     string
	Region       string
	AccessKey    string
	AccessSecret string
	AssetBucket  string
	LogBucket    string
	PublicURL    string
	PresignTTL   time.Duration
}

type NATSConfiguration struct {
	URL    string
	Prefix string
}

type ServerConfiguration struct {
	Port           string
	HealthPort     string
	AllowedOrigins []string
}

type SchedulerConfiguration struct {
	FeaturedGamesInterval time.Duration
	ActiveGameInterval    time.Duration
	StreamsInterval       time.Duration
}

type LeagueConfiguration struct {
	Tiers []string
}

// Front-end bootstrap parameters. Carried only.
type FirebaseConfiguration struct {
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
}

type Config struct {
	Environment string
	LogLevel    string

	API       APIConfiguration
	Database  DatabaseConfiguration
	Redis     RedisConfiguration
	Bucket    BucketConfiguration
	NATS      NATSConfiguration
	Server    ServerConfiguration
	Scheduler SchedulerConfiguration
	League    LeagueConfiguration
	Firebase  FirebaseConfiguration
}

const defaultTiers = "IRON,BRONZE,SILVER,GOLD,PLATINUM,EMERALD,DIAMOND,MASTER,GRANDMASTER,CHALLENGER"

// Load the configuration from the environment.
// Outside docker a .env file is loaded first when present.
func Load(logger zerolog.Logger) (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			logger.Debug().Msg(".env file not found, using environment variables or defaults")
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "local"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		API: APIConfiguration{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
		},
		Database: DatabaseConfiguration{
			DSN:            getEnv("DATABASE_DSN", ""),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
			Name:           getEnv("DATABASE_NAME", "leaguerats"),
		},
		Redis: RedisConfiguration{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Bucket: BucketConfiguration{
			Endpoint:     getEnv("BUCKET_ENDPOINT", ""),
			Region:       getEnv("BUCKET_REGION", "auto"),
			AccessKey:    getEnv("BUCKET_ACCESS_KEY", ""),
			AccessSecret: getEnv("BUCKET_ACCESS_SECRET", ""),
			AssetBucket:  getEnv("BUCKET_ASSET_BUCKET", ""),
			LogBucket:    getEnv("BUCKET_LOG_BUCKET", ""),
			PublicURL:    strings.TrimRight(getEnv("BUCKET_PUBLIC_URL", ""), "/"),
		},
		NATS: NATSConfiguration{
			URL:    getEnv("NATS_URL", ""),
			Prefix: getEnv("NATS_PREFIX", "leaguerats"),
		},
		Server: ServerConfiguration{
			Port:           getEnv("SERVER_PORT", "8080"),
			HealthPort:     getEnv("HEALTH_PORT", "50051"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		},
		League: LeagueConfiguration{
			Tiers: upper(splitList(getEnv("LEAGUE_TIERS", defaultTiers))),
		},
		Firebase: FirebaseConfiguration{
			ProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
			StorageBucket:     getEnv("FIREBASE_STORAGE_BUCKET", ""),
			MessagingSenderID: getEnv("FIREBASE_MESSAGING_SENDER_ID", ""),
			AppID:             getEnv("FIREBASE_APP_ID", ""),
		},
	}

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"API_TIMEOUT", "10s", &cfg.API.Timeout},
		{"API_RATE_LIMIT_INTERVAL", "1s", &cfg.API.RateLimitInterval},
		{"BUCKET_PRESIGN_TTL", "1h", &cfg.Bucket.PresignTTL},
		{"FEATURED_GAMES_INTERVAL", "2m", &cfg.Scheduler.FeaturedGamesInterval},
		{"ACTIVE_GAME_INTERVAL", "30s", &cfg.Scheduler.ActiveGameInterval},
		{"STREAMS_INTERVAL", "1m", &cfg.Scheduler.StreamsInterval},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", d.key)
		}
		*d.target = value
	}

	rateLimit, err := strconv.Atoi(getEnv("API_RATE_LIMIT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_RATE_LIMIT: %w", err)
	}
	cfg.API.RateLimit = rateLimit

	maxConns, err := strconv.Atoi(getEnv("DATABASE_MAX_CONNS", "10"))
	if err != nil || maxConns <= 0 {
		return nil, fmt.Errorf("invalid DATABASE_MAX_CONNS %q", getEnv("DATABASE_MAX_CONNS", ""))
	}
	cfg.Database.MaxConns = maxConns

	if len(cfg.League.Tiers) == 0 {
		return nil, fmt.Errorf("LEAGUE_TIERS must list at least one tier")
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("api_base_url", cfg.API.BaseURL).
		Dur("api_timeout", cfg.API.Timeout).
		Bool("database", cfg.Database.DSN != "").
		Bool("redis", cfg.Redis.Host != "").
		Bool("nats", cfg.NATS.URL != "").
		Str("asset_bucket", cfg.Bucket.AssetBucket).
		Str("server_port", cfg.Server.Port).
		Strs("tiers", cfg.League.Tiers).
		Str("firebase_project", redact(cfg.Firebase.ProjectID)).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

// Redis address in host:port form.
func (r RedisConfiguration) Addr() string {
	return r.Host + ":" + r.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func upper(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToUpper(v)
	}
	return values
}

func redact(value string) string {
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

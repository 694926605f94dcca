package redis

import (
	"context"
	"time"

	"leaguerats/pkg/config"

	"github.com/redis/go-redis/v9"
)

// Type for the client.
type RedisClient struct {
	*redis.Client
}

// Create a client for the configured server.
func NewClient(cfg config.RedisConfiguration) *RedisClient {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     100,
		MinIdleConns: 10,
		PoolTimeout:  30 * time.Second,
	})

	return &RedisClient{
		Client: client,
	}
}

// Check that the server answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close the client connection.
func (r *RedisClient) Close() error {
	return r.Client.Close()
}

// Wrapper to already return the .Err()
func (r *RedisClient) Publish(ctx context.Context, channel string, message any) error {
	return r.Client.Publish(ctx, channel, message).Err()
}

// Subscribe to a channel and wait for the confirmation.
func (r *RedisClient) Subscribe(ctx context.Context, channel string) (*redis.PubSub, error) {
	pubsub := r.Client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}

package docstore

import (
	"context"
	"sync"

	"leaguerats/pkg/redis"

	"github.com/rs/zerolog"
)

const changesChannel = "leaguerats:documents"

// Notifier broadcasts the paths of changed documents between processes.
type Notifier interface {
	Notify(ctx context.Context, path string) error
	Subscribe(ctx context.Context, fn func(path string)) (Unsubscribe, error)
}

// RedisNotifier uses a redis pub/sub channel.
type RedisNotifier struct {
	client  *redis.RedisClient
	channel string
	logger  zerolog.Logger
}

func NewRedisNotifier(client *redis.RedisClient, logger zerolog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, channel: changesChannel, logger: logger}
}

// Notify publishes a changed path.
func (n *RedisNotifier) Notify(ctx context.Context, path string) error {
	return n.client.Publish(ctx, n.channel, path)
}

// Subscribe calls fn for every published path until unsubscribed or ctx ends.
func (n *RedisNotifier) Subscribe(ctx context.Context, fn func(path string)) (Unsubscribe, error) {
	pubsub, err := n.client.Subscribe(ctx, n.channel)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			fn(msg.Payload)
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			if err := pubsub.Close(); err != nil {
				n.logger.Warn().Err(err).Msg("failed to close document subscription")
			}
			<-done
		})
	}
	stop := context.AfterFunc(ctx, unsubscribe)

	return func() {
		stop()
		unsubscribe()
	}, nil
}

package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const redisLockPrefix = "pennywise:lock:"

// releaseScript deletes the lock only if it is still held with our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker is a Locker shared by all instances using the same Redis.
//
// Locks expire after TTL so that a crashed holder can not block a key forever.
type RedisLocker struct {
	Client *redis.Client
	TTL    time.Duration
	Retry  time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		Client: client,
		TTL:    10 * time.Second,
		Retry:  25 * time.Millisecond,
	}
}

// NewRedisClient connects to the Redis server described by a redis:// URL.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return client, nil
}

func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	name := redisLockPrefix + key
	token := uuid.NewString()

	for {
		ok, err := r.Client.SetNX(ctx, name, token, r.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquiring lock %s: %w", key, err)
		}

		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.Retry):
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, r.Client, []string{name}, token).Err(); err != nil {
			log.Error().Err(err).Str("key", key).Msg("could not release budget lock")
		}
	}, nil
}

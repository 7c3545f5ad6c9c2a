package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite carries a redis client backed by a container that lives as long as the test.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Storage *redis.Client
}

// New starts a throwaway redis container and returns a client connected to an empty database.
// Tests are skipped in -short mode.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:       t,
		Logger:  logger,
		Storage: startRedis(ctx, t),
	}
}

// PutRaw stores value under key as is, bypassing any encoding a repository would apply.
func (that *Suite) PutRaw(ctx context.Context, key, value string) {
	that.Helper()

	if err := that.Storage.Set(ctx, key, value, 0).Err(); err != nil {
		that.Fatalf("could not put %q: %v", key, err)
	}
}

// TTL reports the remaining lifetime of key. Redis answers -1 for keys without expiry
// and -2 for missing ones.
func (that *Suite) TTL(ctx context.Context, key string) time.Duration {
	that.Helper()

	ttl, err := that.Storage.TTL(ctx, key).Result()
	if err != nil {
		that.Fatalf("could not read ttl of %q: %v", key, err)
	}

	return ttl
}

// Exists reports whether key is present.
func (that *Suite) Exists(ctx context.Context, key string) bool {
	that.Helper()

	n, err := that.Storage.Exists(ctx, key).Result()
	if err != nil {
		that.Fatalf("could not check %q: %v", key, err)
	}

	return n == 1
}

func startRedis(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis: %v", err)
	}

	// hard kill in case cleanup never runs
	_ = resource.Expire(expireDuration)

	purge := func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis: %v", err)
		}
	}

	pool.MaxWait = maxWaitDuration

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})
	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		purge()
		t.Fatalf("redis never became ready: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		purge()
	})

	if err = client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return client
}

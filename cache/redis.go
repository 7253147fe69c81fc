package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbassignana/EclipseURL/config"
	"github.com/tbassignana/EclipseURL/logger"
)

// Client is the shared Redis connection. It stays nil when Redis is
// unreachable at startup; every caller treats cache errors as non-fatal, so
// the service runs fine without it.
var Client *redis.Client

const dailyCounterTTL = 24 * time.Hour

func clickKey(code string) string      { return "clicks:" + code }
func clickTodayKey(code string) string { return "clicks:" + code + ":today" }

// Connect dials Redis. A failure is logged and leaves Client nil rather than
// aborting startup: the durable counters in Postgres are authoritative.
func Connect(cfg *config.Config) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("invalid redis url, running without cache")
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warn().Err(err).Msg("redis unreachable, running without cache")
		return
	}

	Client = client
	logger.Log.Info().Str("addr", opts.Addr).Msg("redis connected")
}

// IncrementClicks mirrors a click into the fast-path counters: a cumulative
// one and a daily one that expires after 24 hours.
func IncrementClicks(ctx context.Context, shortCode string) error {
	if Client == nil {
		return fmt.Errorf("cache unavailable")
	}
	if err := Client.Incr(ctx, clickKey(shortCode)).Err(); err != nil {
		return err
	}
	if err := Client.Incr(ctx, clickTodayKey(shortCode)).Err(); err != nil {
		return err
	}
	return Client.Expire(ctx, clickTodayKey(shortCode), dailyCounterTTL).Err()
}

// GetClicks reads the cumulative fast-path counter. redis.Nil means the key
// was never written (or evicted); callers fall back to the durable count.
func GetClicks(ctx context.Context, shortCode string) (int64, error) {
	if Client == nil {
		return 0, fmt.Errorf("cache unavailable")
	}
	return Client.Get(ctx, clickKey(shortCode)).Int64()
}

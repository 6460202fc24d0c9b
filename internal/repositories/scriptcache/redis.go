package scriptcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/lesson-forge/internal/redis"
)

const scanCount = 100

// RedisConfig holds the configuration for the Redis cache
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
	TTL    time.Duration
	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
	logger *zap.Logger
}

var _ Repository = (*redisRepository)(nil)

// NewRedis creates a Redis-backed script cache
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.ttl == 0 {
		r.ttl = DefaultTTL
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	fp, err := Fingerprint(input.Request, input.TemplateContent, r.clock.Now())
	if err != nil {
		return nil, err
	}

	raw, err := r.client.Get(ctx, KeyPrefix+fp).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached script for %s", fp)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read cache entry")
	}

	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to decode cache entry")
	}

	return &GetOutput{Entry: &entry}, nil
}

func (r *redisRepository) Set(ctx context.Context, input *SetInput) (*SetOutput, error) {
	if err := validateSet(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	fp, err := Fingerprint(input.Request, input.TemplateContent, now)
	if err != nil {
		return nil, err
	}

	entry := newEntry(fp, input, now)
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal cache entry")
	}

	if err := r.client.Set(ctx, KeyPrefix+fp, raw, r.ttl).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store cache entry")
	}

	r.logger.Debug("cached script", zap.String("fingerprint", fp), zap.Duration("ttl", r.ttl))
	return &SetOutput{Entry: entry}, nil
}

func (r *redisRepository) Clear(ctx context.Context) (*ClearOutput, error) {
	removed := 0
	err := r.scan(ctx, func(keys []string) error {
		n, err := r.client.Del(ctx, keys...).Result()
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete cache keys")
		}
		removed += int(n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("cleared script cache", zap.Int("removed", removed))
	return &ClearOutput{Removed: removed}, nil
}

func (r *redisRepository) ClearExpired(ctx context.Context) (*ClearOutput, error) {
	now := r.clock.Now()
	removed := 0
	err := r.scan(ctx, func(keys []string) error {
		entries, err := r.load(ctx, keys)
		if err != nil {
			return err
		}

		var stale []string
		for key, entry := range entries {
			if entry.expired(now, r.ttl) {
				stale = append(stale, key)
			}
		}
		if len(stale) == 0 {
			return nil
		}

		n, err := r.client.Del(ctx, stale...).Result()
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete cache keys")
		}
		removed += int(n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("cleared expired scripts", zap.Int("removed", removed))
	return &ClearOutput{Removed: removed}, nil
}

func (r *redisRepository) Stats(ctx context.Context) (*StatsOutput, error) {
	var all []*CacheEntry
	err := r.scan(ctx, func(keys []string) error {
		entries, err := r.load(ctx, keys)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			all = append(all, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buildStats(all, r.clock.Now(), r.ttl), nil
}

// scan calls fn with each non-empty batch of cache keys
func (r *redisRepository) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, KeyPrefix+"*", scanCount).Result()
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to scan cache keys")
		}

		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// load reads keys in one round trip. Keys that vanished or hold something
// other than an entry are skipped.
func (r *redisRepository) load(ctx context.Context, keys []string) (map[string]*CacheEntry, error) {
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read cache entries")
	}

	entries := make(map[string]*CacheEntry, len(keys))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var entry CacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			r.logger.Warn("skipping undecodable cache entry", zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		entries[keys[i]] = &entry
	}
	return entries, nil
}

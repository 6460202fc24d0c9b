package scriptcache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
)

// InMemoryConfig holds the configuration for the in-memory cache
type InMemoryConfig struct {
	Clock  clock.Clock
	TTL    time.Duration
	Logger *zap.Logger
}

type inMemoryItem struct {
	entry     *CacheEntry
	expiresAt time.Time
}

type inMemoryRepository struct {
	clock  clock.Clock
	ttl    time.Duration
	logger *zap.Logger

	mu    sync.RWMutex
	items map[string]inMemoryItem
}

var _ Repository = (*inMemoryRepository)(nil)

// NewInMemory creates a process-local script cache, used when no Redis URL
// is configured
func NewInMemory(cfg *InMemoryConfig) (Repository, error) {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	if cfg.TTL < 0 {
		return nil, errors.Wrap(errors.InvalidArgument("ttl cannot be negative"), "invalid config")
	}

	r := &inMemoryRepository{
		clock:  cfg.Clock,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
		items:  make(map[string]inMemoryItem),
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

func (r *inMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if err := validateGet(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	fp, err := Fingerprint(input.Request, input.TemplateContent, now)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	item, ok := r.items[fp]
	r.mu.RUnlock()

	if !ok || !now.Before(item.expiresAt) {
		return nil, errors.NotFoundf("no cached script for %s", fp)
	}

	entry := *item.entry
	return &GetOutput{Entry: &entry}, nil
}

func (r *inMemoryRepository) Set(_ context.Context, input *SetInput) (*SetOutput, error) {
	if err := validateSet(input); err != nil {
		return nil, err
	}

	now := r.clock.Now()
	fp, err := Fingerprint(input.Request, input.TemplateContent, now)
	if err != nil {
		return nil, err
	}

	entry := newEntry(fp, input, now)

	r.mu.Lock()
	r.evictExpired(now)
	r.items[fp] = inMemoryItem{entry: entry, expiresAt: now.Add(r.ttl)}
	r.mu.Unlock()

	r.logger.Debug("cached script", zap.String("fingerprint", fp), zap.Duration("ttl", r.ttl))
	return &SetOutput{Entry: entry}, nil
}

func (r *inMemoryRepository) Clear(_ context.Context) (*ClearOutput, error) {
	r.mu.Lock()
	removed := len(r.items)
	r.items = make(map[string]inMemoryItem)
	r.mu.Unlock()

	r.logger.Info("cleared script cache", zap.Int("removed", removed))
	return &ClearOutput{Removed: removed}, nil
}

func (r *inMemoryRepository) ClearExpired(_ context.Context) (*ClearOutput, error) {
	r.mu.Lock()
	removed := r.evictExpired(r.clock.Now())
	r.mu.Unlock()

	r.logger.Info("cleared expired scripts", zap.Int("removed", removed))
	return &ClearOutput{Removed: removed}, nil
}

func (r *inMemoryRepository) Stats(_ context.Context) (*StatsOutput, error) {
	r.mu.RLock()
	entries := make([]*CacheEntry, 0, len(r.items))
	for _, item := range r.items {
		entries = append(entries, item.entry)
	}
	r.mu.RUnlock()

	return buildStats(entries, r.clock.Now(), r.ttl), nil
}

// evictExpired must be called with mu held
func (r *inMemoryRepository) evictExpired(now time.Time) int {
	removed := 0
	for fp, item := range r.items {
		if !now.Before(item.expiresAt) {
			delete(r.items, fp)
			removed++
		}
	}
	return removed
}

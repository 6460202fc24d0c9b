package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache"
)

// CachedConfig wraps a Client with the script cache
type CachedConfig struct {
	Client  Client
	Cache   scriptcache.Repository
	Metrics metrics.Recorder
	Logger  *zap.Logger
}

// Validate validates the config
func (cfg *CachedConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("client")
	}
	if cfg.Cache == nil {
		vb.RequiredField("cache")
	}
	return vb.Build()
}

type cachedClient struct {
	next    Client
	cache   scriptcache.Repository
	metrics metrics.Recorder
	logger  *zap.Logger
}

var _ Client = (*cachedClient)(nil)

// NewCached returns a Client that answers from the cache when it can and
// stores fresh scripts. Cache failures never fail generation.
func NewCached(cfg *CachedConfig) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := &cachedClient{
		next:    cfg.Client,
		cache:   cfg.Cache,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
	if c.metrics == nil {
		c.metrics = metrics.Noop{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

func (c *cachedClient) GenerateScript(ctx context.Context, input *GenerateInput) (*GenerateOutput, error) {
	if input == nil || input.Request == nil {
		return nil, errors.InvalidArgument("request is required")
	}

	got, err := c.cache.Get(ctx, &scriptcache.GetInput{
		Request:         input.Request,
		TemplateContent: input.TemplateContent,
	})
	switch {
	case err == nil:
		c.metrics.CacheLookup(metrics.CacheHit)
		c.logger.Info("using cached script",
			zap.String("request_id", input.Request.ID),
			zap.String("fingerprint", got.Entry.Fingerprint),
		)
		return &GenerateOutput{Script: got.Entry.Response, Cached: true}, nil
	case errors.IsNotFound(err):
		c.metrics.CacheLookup(metrics.CacheMiss)
	default:
		c.metrics.CacheLookup(metrics.CacheError)
		c.logger.Warn("script cache read failed, generating", zap.Error(err))
	}

	out, err := c.next.GenerateScript(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, err := c.cache.Set(ctx, &scriptcache.SetInput{
		Request:         input.Request,
		TemplateContent: input.TemplateContent,
		Response:        out.Script,
	}); err != nil {
		c.logger.Warn("script cache write failed", zap.Error(err))
	}

	return out, nil
}

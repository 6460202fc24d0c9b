package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	"github.com/KirkDiggler/lesson-forge/internal/config"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/orchestrators/generation"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/idgen"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/logger"
	"github.com/KirkDiggler/lesson-forge/internal/redis"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/output"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/templates"
	"github.com/KirkDiggler/lesson-forge/internal/subjects"
	"github.com/KirkDiggler/lesson-forge/internal/validator"
)

// app is the wired pipeline a command runs against
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
	cache    scriptcache.Repository
	service  generation.Service
	closers  []func() error
}

type appOptions struct {
	// withLLM wires the language model client; only generate needs it
	withLLM bool
	// templates makes an unreadable template root fatal
	templates bool
	// cacheOnly stops after the script cache is built
	cacheOnly bool
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   log,
		registry: metrics.NewRegistry(version),
	}
	a.closers = append(a.closers, func() error {
		_ = log.Sync()
		return nil
	})

	recorder, err := metrics.NewRecorder(a.registry)
	if err != nil {
		return nil, err
	}
	a.recorder = recorder

	cache, err := a.newCache(cfg)
	if err != nil {
		return nil, err
	}
	a.cache = cache
	if opts.cacheOnly {
		return a, nil
	}

	registryCfg := &subjects.RegistryConfig{}
	if cfg.SubjectsFile != "" {
		registryCfg, err = subjects.LoadFile(cfg.SubjectsFile)
		if err != nil {
			return nil, err
		}
	}
	subjectRegistry, err := subjects.NewRegistry(registryCfg)
	if err != nil {
		return nil, err
	}

	scriptValidator, err := validator.New(&validator.Config{
		SubjectSymbols: subjectRegistry.RequiredSymbols(),
		Logger:         log.Named("validator"),
	})
	if err != nil {
		return nil, err
	}

	templateRepo, err := templates.NewFilesystem(&templates.FilesystemConfig{
		Root:   cfg.TemplatesDir,
		Logger: log.Named("templates"),
	})
	if err != nil {
		return nil, err
	}
	loaded, err := templateRepo.Load(ctx)
	switch {
	case err != nil && opts.templates:
		return nil, err
	case err != nil:
		log.Warn("templates unavailable", zap.String("root", cfg.TemplatesDir), zap.Error(err))
	default:
		log.Debug("loaded templates",
			zap.Int("loaded", loaded.Loaded),
			zap.Strings("skipped", loaded.Skipped),
		)
	}

	var client llm.Client
	if opts.withLLM {
		client, err = a.newLLMClient(cfg)
		if err != nil {
			return nil, err
		}
	}

	service, err := generation.NewOrchestrator(&generation.Config{
		TemplateRepo: templateRepo,
		OutputRepo:   output.NewFilesystem(&output.Config{Logger: log.Named("output")}),
		Registry:     subjectRegistry,
		Validator:    scriptValidator,
		IDGenerator:  idgen.NewUUID("req"),
		OutputDir:    cfg.OutputDir,
		LLMClient:    client,
		Clock:        clock.New(),
		Metrics:      recorder,
		Logger:       log.Named("generation"),
	})
	if err != nil {
		return nil, err
	}
	a.service = service

	return a, nil
}

func (a *app) newCache(cfg *config.Config) (scriptcache.Repository, error) {
	if cfg.Cache.RedisURL == "" {
		return scriptcache.NewInMemory(&scriptcache.InMemoryConfig{
			TTL:    cfg.Cache.TTL,
			Logger: a.logger.Named("cache"),
		})
	}

	client, err := redis.NewClientFromURL(cfg.Cache.RedisURL, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "invalid cache.redis_url")
	}
	a.closers = append(a.closers, client.Close)

	return scriptcache.NewRedis(&scriptcache.RedisConfig{
		Client: client,
		TTL:    cfg.Cache.TTL,
		Logger: a.logger.Named("cache"),
	})
}

func (a *app) newLLMClient(cfg *config.Config) (llm.Client, error) {
	base, err := llm.NewOpenAI(&llm.Config{
		Provider:    cfg.LLM.Provider,
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
		Logger:      a.logger.Named("llm"),
	})
	if err != nil {
		return nil, err
	}

	return llm.NewCached(&llm.CachedConfig{
		Client:  base,
		Cache:   a.cache,
		Metrics: a.recorder,
		Logger:  a.logger.Named("cache"),
	})
}

// close writes the metrics file when one is configured and releases
// connections
func (a *app) close() {
	if a.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
			a.logger.Warn("failed to write metrics", zap.Error(err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to close resource", zap.Error(err))
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-mapgen/internal/clients/external"
	"github.com/KirkDiggler/rpg-mapgen/internal/config"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-mapgen/internal/redis"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates"
)

// loadConfig reads the config file, applies flag overrides and installs the logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(&overrides); err != nil {
		return nil, errors.Wrap(err, "invalid flags")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	return cfg, nil
}

// app is the wired map service and whatever it holds open
type app struct {
	service maps.Service
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("Failed to close resource", "error", err)
		}
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	templateRepo, err := templates.NewYAML(&templates.Config{
		Dir:          cfg.Templates.Dir,
		SkipDefaults: cfg.Templates.SkipDefaults,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load template sets")
	}

	mapRepo, err := a.newMapRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var lootCatalog external.Client
	if cfg.Catalog.Enabled {
		lootCatalog, err = external.New(&external.Config{
			BaseURL:     cfg.Catalog.BaseURL,
			HTTPTimeout: cfg.Catalog.HTTPTimeout,
			CacheTTL:    cfg.Catalog.CacheTTL,
		})
		if err != nil {
			a.Close()
			return nil, errors.Wrap(err, "failed to create loot catalog")
		}
	}

	service, err := maps.NewOrchestrator(&maps.Config{
		TemplateRepo:         templateRepo,
		MapRepo:              mapRepo,
		IDGenerator:          idgen.NewUUID("map"),
		LootCatalog:          lootCatalog,
		EventBus:             events.NewBus(),
		Clock:                clock.New(),
		Settings:             cfg.Generation,
		DefaultTemplateSetID: cfg.Templates.DefaultSet,
		MapTTL:               cfg.Storage.MapTTL,
		MaxConcurrent:        cfg.Server.MaxConcurrent,
	})
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create map service")
	}
	a.service = service

	slog.Info("Map service ready",
		"storage", cfg.Storage.Backend,
		"default_template_set", cfg.Templates.DefaultSet,
		"loot_catalog", cfg.Catalog.Enabled,
	)

	return a, nil
}

func (a *app) newMapRepository(ctx context.Context, cfg *config.Config) (layouts.Repository, error) {
	if cfg.Storage.Backend != config.StorageRedis {
		return layouts.NewInMemory(clock.New()), nil
	}

	client, err := redis.New(cfg.Storage.Redis.Options())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}
	a.closers = append(a.closers, client.Close)

	if err := redis.Ping(ctx, client); err != nil {
		return nil, err
	}

	return layouts.NewRedisRepository(&layouts.RedisConfig{Client: client})
}

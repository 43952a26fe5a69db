// Package maps implements the map orchestrator: it resolves template sets,
// runs the generator and keeps the results.
package maps

//go:generate mockgen -destination=mock/mock_service.go -package=mapsmock github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-mapgen/internal/clients/external"
	"github.com/KirkDiggler/rpg-mapgen/internal/engine/sim"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates"
	"github.com/KirkDiggler/rpg-mapgen/internal/spawn"
)

// DefaultMaxConcurrent bounds how many generations run at once
const DefaultMaxConcurrent = 4

// Service defines the interface for map operations
type Service interface {
	// GenerateMap grows, stores and returns a new map
	GenerateMap(ctx context.Context, input *GenerateMapInput) (*GenerateMapOutput, error)

	// GetMap returns a stored map
	GetMap(ctx context.Context, input *GetMapInput) (*GetMapOutput, error)

	// ListMaps returns every live map of an owner
	ListMaps(ctx context.Context, input *ListMapsInput) (*ListMapsOutput, error)

	// DeleteMap removes a stored map
	DeleteMap(ctx context.Context, input *DeleteMapInput) (*DeleteMapOutput, error)

	// ListTemplateSets returns the template sets maps can be generated from
	ListTemplateSets(ctx context.Context, input *ListTemplateSetsInput) (*ListTemplateSetsOutput, error)
}

// Config holds the dependencies for the map orchestrator
type Config struct {
	TemplateRepo templates.Repository
	MapRepo      layouts.Repository
	IDGenerator  idgen.Generator

	// LootCatalog names loot spawns; optional
	LootCatalog external.Client

	// EventBus receives generated and deleted notifications; optional
	EventBus events.EventBus

	// Clock defaults to the system clock
	Clock clock.Clock

	// Settings are the defaults each request may override
	Settings generation.Settings

	DefaultTemplateSetID string

	// MapTTL is how long generated maps are kept; zero uses the repository default
	MapTTL time.Duration

	// MaxConcurrent bounds parallel generations; zero uses DefaultMaxConcurrent
	MaxConcurrent int

	// SpawnPlacementTries is handed to the spawner
	SpawnPlacementTries int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TemplateRepo == nil {
		vb.RequiredField("TemplateRepo")
	}
	if c.MapRepo == nil {
		vb.RequiredField("MapRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.DefaultTemplateSetID == "" {
		vb.RequiredField("DefaultTemplateSetID")
	}
	if c.MapTTL < 0 {
		vb.Field("MapTTL", "must not be negative")
	}
	if c.MaxConcurrent < 0 {
		vb.Field("MaxConcurrent", "must not be negative")
	}
	if c.SpawnPlacementTries < 0 {
		vb.Field("SpawnPlacementTries", "must not be negative")
	}
	if err := c.Settings.Validate(); err != nil {
		vb.Field("Settings", errors.GetMessage(err))
	}

	return vb.Build()
}

type orchestrator struct {
	templateRepo templates.Repository
	mapRepo      layouts.Repository
	idGen        idgen.Generator
	lootCatalog  external.Client
	eventBus     events.EventBus
	clock        clock.Clock

	settings      generation.Settings
	defaultSetID  string
	mapTTL        time.Duration
	spawnTries    int
	generateSlots chan struct{}
}

// NewOrchestrator creates a new map orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent == 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	return &orchestrator{
		templateRepo:  cfg.TemplateRepo,
		mapRepo:       cfg.MapRepo,
		idGen:         cfg.IDGenerator,
		lootCatalog:   cfg.LootCatalog,
		eventBus:      cfg.EventBus,
		clock:         clk,
		settings:      cfg.Settings,
		defaultSetID:  cfg.DefaultTemplateSetID,
		mapTTL:        cfg.MapTTL,
		spawnTries:    cfg.SpawnPlacementTries,
		generateSlots: make(chan struct{}, maxConcurrent),
	}, nil
}

// GenerateMap grows, stores and returns a new map
func (o *orchestrator) GenerateMap(ctx context.Context, input *GenerateMapInput) (*GenerateMapOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	settings, err := o.resolveSettings(input.Overrides)
	if err != nil {
		return nil, err
	}

	setID := input.TemplateSetID
	if setID == "" {
		setID = o.defaultSetID
	}
	setOut, err := o.templateRepo.Get(ctx, &templates.GetInput{ID: setID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load template set %s", setID)
	}
	set := setOut.TemplateSet

	lootNames := o.lootNames(ctx, set)

	select {
	case o.generateSlots <- struct{}{}:
		defer func() { <-o.generateSlots }()
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "gave up waiting for a generation slot")
	}

	mapID := o.idGen.Generate()
	slog.Info("Map generation requested",
		"map_id", mapID,
		"owner_id", input.OwnerID,
		"template_set", set.ID,
		"target_rooms", settings.TargetRooms,
	)

	generator, navMesh, err := o.newGenerator(settings)
	if err != nil {
		return nil, err
	}

	genOut, err := generator.Generate(&generation.GenerateInput{
		MapID:     mapID,
		Templates: set,
		LootNames: lootNames,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate map")
	}
	m := genOut.Map

	if input.RequireQuota && !m.QuotaMet {
		return nil, errors.ResourceExhaustedf(
			"only %d of %d rooms placed after %d attempts",
			m.RoomCount(layout.RoomTypeRoom), m.TargetRooms, m.Attempts,
		)
	}

	now := o.clock.Now()
	m.OwnerID = input.OwnerID
	m.CreatedAt = now
	if o.mapTTL > 0 {
		m.ExpiresAt = now.Add(o.mapTTL)
	}

	if _, err := o.mapRepo.Save(ctx, &layouts.SaveInput{Map: m}); err != nil {
		return nil, errors.Wrap(err, "failed to save map")
	}

	o.publish(ctx, EventMapGenerated, m)

	return &GenerateMapOutput{
		Map:     m,
		NavMesh: navMesh.Last(),
	}, nil
}

// GetMap returns a stored map
func (o *orchestrator) GetMap(ctx context.Context, input *GetMapInput) (*GetMapOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	out, err := o.mapRepo.Get(ctx, &layouts.GetInput{ID: input.MapID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get map %s", input.MapID)
	}

	return &GetMapOutput{Map: out.Map}, nil
}

// ListMaps returns every live map of an owner
func (o *orchestrator) ListMaps(ctx context.Context, input *ListMapsInput) (*ListMapsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.mapRepo.ListByOwner(ctx, &layouts.ListByOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list maps for %s", input.OwnerID)
	}

	return &ListMapsOutput{Maps: out.Maps}, nil
}

// DeleteMap removes a stored map
func (o *orchestrator) DeleteMap(ctx context.Context, input *DeleteMapInput) (*DeleteMapOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MapID == "" {
		return nil, errors.InvalidArgument("map ID is required")
	}

	existing, err := o.mapRepo.Get(ctx, &layouts.GetInput{ID: input.MapID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get map %s", input.MapID)
	}
	if input.OwnerID != "" && existing.Map.OwnerID != input.OwnerID {
		return nil, errors.PermissionDeniedf("map %s belongs to another owner", input.MapID)
	}

	if _, err := o.mapRepo.Delete(ctx, &layouts.DeleteInput{ID: input.MapID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete map %s", input.MapID)
	}

	o.publish(ctx, EventMapDeleted, existing.Map)

	return &DeleteMapOutput{}, nil
}

// ListTemplateSets returns the template sets maps can be generated from
func (o *orchestrator) ListTemplateSets(ctx context.Context, _ *ListTemplateSetsInput) (*ListTemplateSetsOutput, error) {
	out, err := o.templateRepo.List(ctx, &templates.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list template sets")
	}
	return &ListTemplateSetsOutput{TemplateSets: out.TemplateSets}, nil
}

func (o *orchestrator) resolveSettings(overrides *SettingsOverrides) (generation.Settings, error) {
	settings := o.settings
	if overrides != nil {
		if overrides.TargetRooms != 0 {
			settings.TargetRooms = overrides.TargetRooms
		}
		if overrides.MaxIterations != 0 {
			settings.MaxIterations = overrides.MaxIterations
		}
		if overrides.MaxRegenerations != 0 {
			settings.MaxRegenerations = overrides.MaxRegenerations
		}
		if overrides.RoomOdds != nil {
			settings.RoomOdds = *overrides.RoomOdds
		}
		if overrides.ConnectRoomsOdds != nil {
			settings.ConnectRoomsOdds = *overrides.ConnectRoomsOdds
		}
		if overrides.Seed != nil {
			settings.CustomSeed = overrides.Seed
		}
		if overrides.SpawnSeed != nil {
			settings.SpawnSeed = overrides.SpawnSeed
		}
		if overrides.Strategy != "" {
			settings.Strategy = overrides.Strategy
		}
	}

	if err := settings.Validate(); err != nil {
		return generation.Settings{}, errors.Wrap(err, "invalid settings")
	}
	return settings, nil
}

// newGenerator builds a fresh world for one request; generators are single use
func (o *orchestrator) newGenerator(settings generation.Settings) (*generation.Generator, *sim.NavMesh, error) {
	world, err := sim.NewWorld(&sim.Config{CollisionMargin: settings.CollisionMargin})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create world")
	}
	navMesh := sim.NewNavMesh()
	spawner, err := spawn.New(&spawn.Config{PlacementTries: o.spawnTries})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create spawner")
	}

	generator, err := generation.New(&generation.Config{
		World:    world,
		NavMesh:  navMesh,
		Spawner:  spawner,
		Settings: settings,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create generator")
	}
	return generator, navMesh, nil
}

// lootNames asks the catalog for every loot category in the spawn table.
// A catalog failure is not fatal; loot then keeps its table names.
func (o *orchestrator) lootNames(ctx context.Context, set *layout.TemplateSet) map[string][]string {
	if o.lootCatalog == nil {
		return nil
	}

	var categories []string
	for _, entry := range set.SpawnTable.Entries {
		if entry.LootCategory != "" {
			categories = append(categories, entry.LootCategory)
		}
	}
	if len(categories) == 0 {
		return nil
	}

	names, err := o.lootCatalog.ListLootNames(ctx, categories)
	if err != nil {
		slog.Warn("Loot catalog unavailable, using spawn table names",
			"template_set", set.ID,
			"error", err,
		)
		return nil
	}
	return names
}

func (o *orchestrator) publish(ctx context.Context, eventType string, m *layout.Map) {
	if o.eventBus == nil {
		return
	}

	event := events.NewGameEvent(eventType, m, nil)
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish map event",
			"event", eventType,
			"map_id", m.ID,
			"error", err,
		)
	}
}

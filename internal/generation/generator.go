// Package generation grows procedural room graphs.
//
// A run places an entry room at the origin, then grows the graph breadth
// first: every pass tries to attach a new room to each connection point of
// the rooms accepted in the previous pass. Candidates that overlap an
// accepted room are destroyed and retried. Once growth stops, hallway
// branches without any real room are pruned and the surviving doorways are
// paired up or closed off.
package generation

import (
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/rng"
)

// Config holds the dependencies of a Generator
type Config struct {
	World   engine.World
	NavMesh engine.NavMeshBuilder

	// Spawner is optional; without one maps carry no spawns
	Spawner engine.Spawner

	Settings Settings
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.World == nil {
		vb.RequiredField("World")
	}
	if c.NavMesh == nil {
		vb.RequiredField("NavMesh")
	}
	if err := c.Settings.Validate(); err != nil {
		vb.Field("Settings", errors.GetMessage(err))
	}

	return vb.Build()
}

// Generator owns one world and produces maps into it. It is not safe for
// concurrent use; build one per run.
type Generator struct {
	world    engine.World
	navMesh  engine.NavMeshBuilder
	spawner  engine.Spawner
	settings Settings

	state     State
	layoutRNG rng.Source

	templates     *layout.TemplateSet
	roomTemplates []*layout.RoomProperties
	hallTemplates []*layout.RoomProperties

	// rooms is the arena; parent, child and other links are indices into it
	rooms       []*roomProfile
	connections []*connectionProfile
	markers     map[engine.MarkerID]int

	worklist   []int
	backbuffer []int

	remaining int
	stats     layout.Stats
}

// New creates a generator
func New(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Generator{
		world:    cfg.World,
		navMesh:  cfg.NavMesh,
		spawner:  cfg.Spawner,
		settings: cfg.Settings,
		markers:  make(map[engine.MarkerID]int),
	}, nil
}

// GenerateInput selects the templates for a run
type GenerateInput struct {
	MapID     string
	Templates *layout.TemplateSet

	// LootNames maps equipment categories to item names for loot spawns
	LootNames map[string][]string
}

// GenerateOutput carries the finished map
type GenerateOutput struct {
	Map *layout.Map
}

// State returns the phase the generator is in
func (g *Generator) State() State {
	return g.state
}

// Stats returns the counters of the current run
func (g *Generator) Stats() layout.Stats {
	return g.stats
}

// Generate runs the full pipeline. When the room quota is missed the run is
// restarted from scratch, up to MaxRegenerations attempts; the last attempt
// is returned with QuotaMet unset if none succeeds.
func (g *Generator) Generate(input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Templates == nil {
		return nil, errors.InvalidArgument("templates are required")
	}
	if len(input.Templates.StartingRooms) == 0 {
		return nil, errors.InvalidArgumentf("template set %q has no starting rooms", input.Templates.ID)
	}

	g.templates = input.Templates
	g.roomTemplates = input.Templates.TemplatesOfType(layout.RoomTypeRoom)
	g.hallTemplates = input.Templates.TemplatesOfType(layout.RoomTypeHallway)

	var seed int64
	attempt := 0
	for {
		attempt++
		g.Cleanup()

		g.setState(StateSeeding)
		seed = g.layoutSeed(attempt)
		g.layoutRNG = rng.New(seed)

		g.setState(StatePlacingEntry)
		if err := g.placeEntry(); err != nil {
			g.Cleanup()
			return nil, err
		}

		g.setState(StateGrowing)
		g.grow()

		if g.remaining <= 0 {
			break
		}
		if attempt >= g.settings.MaxRegenerations {
			slog.Warn("Room quota not met, keeping best-effort layout",
				"map_id", input.MapID,
				"attempts", attempt,
				"remaining_rooms", g.remaining,
				"target_rooms", g.settings.TargetRooms,
			)
			break
		}

		slog.Info("Room quota not met, regenerating",
			"map_id", input.MapID,
			"attempt", attempt,
			"seed", seed,
			"remaining_rooms", g.remaining,
		)
	}
	quotaMet := g.remaining <= 0

	g.setState(StatePruning)
	g.prune()

	g.setState(StateFinalizingConnections)
	g.finalizeConnections()

	g.setState(StateBuildingNavMesh)
	g.navMesh.Rebuild(g.navMeshInput(input.MapID))

	g.setState(StateSpawningEntities)
	m := g.buildMap(input.MapID, seed, attempt, quotaMet)
	if err := g.spawn(m, input.LootNames); err != nil {
		return nil, err
	}

	g.setState(StateDone)

	slog.Info("Map generated",
		"map_id", m.ID,
		"template_set", m.TemplateSetID,
		"seed", m.Seed,
		"attempts", m.Attempts,
		"rooms", len(m.Rooms),
		"quota_met", m.QuotaMet,
	)

	return &GenerateOutput{Map: m}, nil
}

// Cleanup destroys everything the generator placed and resets all run state
func (g *Generator) Cleanup() {
	g.world.Reset()

	g.rooms = nil
	g.connections = nil
	g.markers = make(map[engine.MarkerID]int)
	g.worklist = nil
	g.backbuffer = nil
	g.remaining = g.settings.TargetRooms
	g.stats = layout.Stats{}
	g.state = StateIdle
}

func (g *Generator) setState(s State) {
	slog.Debug("Generator state changed", "from", g.state.String(), "to", s.String())
	g.state = s
}

func (g *Generator) layoutSeed(attempt int) int64 {
	if g.settings.CustomSeed != nil {
		return *g.settings.CustomSeed + int64(attempt-1)
	}
	return rng.NewSeed()
}

func (g *Generator) spawnSeed() int64 {
	if g.settings.SpawnSeed != nil {
		return *g.settings.SpawnSeed
	}
	return rng.NewSeed()
}

func (g *Generator) placeEntry() error {
	starting := g.templates.StartingRooms
	tmpl := &starting[g.layoutRNG.Intn(len(starting))]
	if err := tmpl.Validate(); err != nil {
		return errors.Wrapf(err, "starting room %q is invalid", tmpl.ID)
	}

	handle, err := g.world.Instantiate(tmpl.Prefab, grid.Identity)
	if err != nil {
		return errors.Wrapf(err, "failed to instantiate starting room %q", tmpl.ID)
	}

	box := engine.NewOrientedBox(tmpl.CollisionBox(), grid.Identity)
	g.world.RegisterVolume(handle, box, engine.LayerRoomVolume)

	idx := g.addRoom(tmpl, grid.Identity, -1, -1, handle, box)
	entry := g.rooms[idx]
	entry.isEntry = true
	entry.isInEntryZone = true

	g.worklist = append(g.worklist, idx)
	return nil
}

func (g *Generator) navMeshInput(mapID string) *engine.NavMeshInput {
	input := &engine.NavMeshInput{
		MapID:    mapID,
		GridUnit: g.settings.GridUnit,
	}
	for _, room := range g.rooms {
		if room.pruned {
			continue
		}
		input.Walkable = append(input.Walkable, room.box.Rect())
	}
	for _, cp := range g.connections {
		if cp.connected && cp.index < cp.other {
			input.Openings = append(input.Openings, cp.world.Position)
		}
	}
	return input
}

func (g *Generator) spawn(m *layout.Map, lootNames map[string][]string) error {
	seed := g.spawnSeed()
	m.SpawnSeed = seed

	if g.spawner == nil || len(m.Rooms) == 0 {
		return nil
	}

	rooms := make([]engine.SpawnRoom, 0, len(m.Rooms))
	for i := range m.Rooms {
		r := &m.Rooms[i]
		rooms = append(rooms, engine.SpawnRoom{
			ID:            r.ID,
			Type:          r.Type,
			Bounds:        r.Bounds,
			IsInEntryZone: r.IsInEntryZone,
		})
	}

	spawns, err := g.spawner.Populate(&engine.SpawnInput{
		MapID:     m.ID,
		Rooms:     rooms,
		Table:     g.templates.SpawnTable,
		Roller:    rng.New(seed),
		LootNames: lootNames,
	})
	if err != nil {
		return errors.Wrap(err, "failed to spawn entities")
	}
	m.Spawns = spawns
	return nil
}

func (g *Generator) buildMap(mapID string, seed int64, attempts int, quotaMet bool) *layout.Map {
	m := &layout.Map{
		ID:            mapID,
		TemplateSetID: g.templates.ID,
		Seed:          seed,
		Attempts:      attempts,
		TargetRooms:   g.settings.TargetRooms,
		QuotaMet:      quotaMet,
		Stats:         g.stats,
		Rooms:         []layout.PlacedRoom{},
		Doorways:      []layout.Doorway{},
	}

	for _, room := range g.rooms {
		if room.pruned {
			continue
		}
		placed := layout.PlacedRoom{
			ID:               roomID(room.index),
			TemplateID:       room.template.ID,
			Prefab:           room.template.Prefab,
			Type:             room.template.Type,
			ParentConnection: room.parentConnection,
			Transform:        room.world,
			Bounds:           room.box.Rect(),
			IsEntry:          room.isEntry,
			IsInEntryZone:    room.isInEntryZone,
			IsLeaf:           len(room.children) == 0,
			HasRoomLeaf:      room.hasRoomLeaf,
		}
		if room.parent >= 0 {
			placed.ParentID = roomID(room.parent)
		}
		for _, child := range room.children {
			placed.ChildIDs = append(placed.ChildIDs, roomID(child))
		}
		m.Rooms = append(m.Rooms, placed)
	}

	for _, cp := range g.connections {
		room := g.rooms[cp.room]
		door := layout.Doorway{
			ID:            doorwayID(cp.index),
			RoomID:        roomID(cp.room),
			Transform:     cp.world,
			IsEntrance:    cp.connection.IsEntrance,
			HasDoor:       cp.connection.HasDoor,
			Connected:     cp.connected,
			Generated:     cp.generated,
			Decoration:    cp.decoration,
			IsInEntryZone: room.isInEntryZone,
		}
		if cp.other >= 0 {
			door.OtherID = doorwayID(cp.other)
		}
		m.Doorways = append(m.Doorways, door)
	}

	return m
}

func roomID(index int) string {
	return fmt.Sprintf("room-%d", index)
}

func doorwayID(index int) string {
	return fmt.Sprintf("door-%d", index)
}

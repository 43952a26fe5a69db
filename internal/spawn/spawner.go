// Package spawn places enemies, hostages, traps and loot into a finished map.
//
// Everything is rolled on the spawn roller handed in with the input, never on
// the layout stream, so spawn placement can change without moving any room.
package spawn

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/tools/spatial"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// DefaultPlacementTries is how many cells are rolled for one spawn before giving up
const DefaultPlacementTries = 4

// Config configures a Spawner
type Config struct {
	// PlacementTries bounds the cells rolled per spawn; zero uses the default
	PlacementTries int
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.PlacementTries < 0 {
		vb.Field("PlacementTries", "must not be negative")
	}

	return vb.Build()
}

// Spawner fills rooms from a weighted spawn table
type Spawner struct {
	tries int
}

// Ensure Spawner implements engine.Spawner
var _ engine.Spawner = (*Spawner)(nil)

// New creates a spawner
func New(cfg *Config) (*Spawner, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tries := cfg.PlacementTries
	if tries == 0 {
		tries = DefaultPlacementTries
	}

	return &Spawner{tries: tries}, nil
}

// spawnEntity is what gets placed into the spatial room
type spawnEntity struct {
	id   string
	kind layout.SpawnKind
}

func (e *spawnEntity) GetID() string {
	return e.id
}

func (e *spawnEntity) GetType() string {
	return string(e.kind)
}

// Populate rolls spawns for every room outside the entry zone
func (s *Spawner) Populate(input *engine.SpawnInput) ([]layout.Spawn, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Roller == nil {
		return nil, errors.InvalidArgument("roller is required")
	}
	if input.Table.PerRoomDie == 0 || len(input.Table.Entries) == 0 {
		return nil, nil
	}

	var spawns []layout.Spawn
	for _, room := range input.Rooms {
		if room.IsInEntryZone {
			continue
		}

		placed, err := s.populateRoom(input, room, len(spawns))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to populate room %s", room.ID)
		}
		spawns = append(spawns, placed...)
	}

	slog.Debug("Spawns placed", "map_id", input.MapID, "count", len(spawns))

	return spawns, nil
}

func (s *Spawner) populateRoom(input *engine.SpawnInput, room engine.SpawnRoom, offset int) ([]layout.Spawn, error) {
	entries := eligible(input.Table.Entries, room.Type)
	if len(entries) == 0 {
		return nil, nil
	}

	cols := int(math.Floor(room.Bounds.Width()))
	rows := int(math.Floor(room.Bounds.Height()))
	if cols < 1 || rows < 1 {
		return nil, nil
	}

	roll, err := input.Roller.Roll(input.Table.PerRoomDie)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll spawn count")
	}
	count := min(roll-1, cols*rows)
	if count <= 0 {
		return nil, nil
	}

	floor := spatial.NewBasicRoom(spatial.BasicRoomConfig{
		ID:   room.ID,
		Type: string(room.Type),
		Grid: spatial.NewSquareGrid(spatial.SquareGridConfig{
			Width:  float64(cols),
			Height: float64(rows),
		}),
	})
	occupied := make(map[spatial.Position]bool)

	var out []layout.Spawn
	for i := 0; i < count; i++ {
		entry, err := pick(input.Roller, entries)
		if err != nil {
			return nil, err
		}
		name, err := spawnName(input.Roller, entry, input.LootNames)
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}

		entity := &spawnEntity{
			id:   fmt.Sprintf("spawn-%d", offset+len(out)),
			kind: entry.Kind,
		}
		pos, ok, err := s.place(input.Roller, floor, occupied, entity, cols, rows)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		out = append(out, layout.Spawn{
			ID:     entity.id,
			Kind:   entry.Kind,
			Name:   name,
			RoomID: room.ID,
			Position: grid.Vector2{
				X: room.Bounds.Min.X + pos.X + 0.5,
				Y: room.Bounds.Min.Y + pos.Y + 0.5,
			},
		})
	}

	return out, nil
}

// place rolls free cells until the spatial room accepts the entity
func (s *Spawner) place(
	roller dice.Roller,
	floor *spatial.BasicRoom,
	occupied map[spatial.Position]bool,
	entity *spawnEntity,
	cols, rows int,
) (spatial.Position, bool, error) {
	for try := 0; try < s.tries; try++ {
		x, err := roller.Roll(cols)
		if err != nil {
			return spatial.Position{}, false, errors.Wrap(err, "failed to roll column")
		}
		y, err := roller.Roll(rows)
		if err != nil {
			return spatial.Position{}, false, errors.Wrap(err, "failed to roll row")
		}

		pos := spatial.Position{X: float64(x - 1), Y: float64(y - 1)}
		if occupied[pos] {
			continue
		}
		if err := floor.PlaceEntity(entity, pos); err != nil {
			slog.Debug("Spawn cell rejected", "entity_id", entity.id, "position", pos, "error", err)
			continue
		}
		occupied[pos] = true
		return pos, true, nil
	}

	return spatial.Position{}, false, nil
}

func eligible(entries []layout.SpawnEntry, roomType layout.RoomType) []layout.SpawnEntry {
	var out []layout.SpawnEntry
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if e.RoomsOnly && roomType != layout.RoomTypeRoom {
			continue
		}
		out = append(out, e)
	}
	return out
}

// pick draws one entry with probability proportional to its weight
func pick(roller dice.Roller, entries []layout.SpawnEntry) (layout.SpawnEntry, error) {
	total := 0
	for _, e := range entries {
		total += e.Weight
	}

	roll, err := roller.Roll(total)
	if err != nil {
		return layout.SpawnEntry{}, errors.Wrap(err, "failed to roll spawn entry")
	}
	for _, e := range entries {
		roll -= e.Weight
		if roll <= 0 {
			return e, nil
		}
	}
	return entries[len(entries)-1], nil
}

// spawnName uses the catalog for loot with a category, else the entry name
func spawnName(roller dice.Roller, entry layout.SpawnEntry, lootNames map[string][]string) (string, error) {
	if entry.LootCategory == "" {
		return entry.Name, nil
	}

	names := lootNames[entry.LootCategory]
	if len(names) == 0 {
		return entry.Name, nil
	}

	roll, err := roller.Roll(len(names))
	if err != nil {
		return "", errors.Wrap(err, "failed to roll loot name")
	}
	return names[roll-1], nil
}

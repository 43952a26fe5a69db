// Package layout provides the data structures shared by the room generator:
// authored room templates and the generated maps built from them.
package layout

import (
	"fmt"

	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// RoomType distinguishes real rooms from the hallways that join them
type RoomType string

const (
	// RoomTypeHallway connects rooms and does not count against the room budget
	RoomTypeHallway RoomType = "hallway"
	// RoomTypeRoom is actual content; each placement consumes one unit of budget
	RoomTypeRoom RoomType = "room"
)

// IsValid reports whether t is a known room type
func (t RoomType) IsValid() bool {
	return t == RoomTypeHallway || t == RoomTypeRoom
}

// Connection is one potential doorway on a room template
type Connection struct {
	// Transform is relative to the room origin; Rotation is the outward facing
	Transform grid.Transform `json:"transform" yaml:"transform"`

	// Required connections are always attempted
	Required bool `json:"required" yaml:"required"`

	// HasDoor places an interactive door when the doorway ends up open
	HasDoor bool `json:"has_door" yaml:"has_door"`

	// IsEntrance is set at runtime on the synthetic entrance only
	IsEntrance bool `json:"-" yaml:"-"`

	// Odds gates optional connections once the room budget is spent
	Odds float64 `json:"odds" yaml:"odds"`
}

// Box is a collision box in room-local grid units
type Box struct {
	Center      grid.Vector2 `json:"center" yaml:"center"`
	HalfExtents grid.Vector2 `json:"half_extents" yaml:"half_extents"`
}

// RoomProperties is the immutable authored data for one room template
type RoomProperties struct {
	ID              string       `json:"id" yaml:"id"`
	Prefab          string       `json:"prefab" yaml:"prefab"`
	Size            grid.Vector2 `json:"size" yaml:"size"`
	Type            RoomType     `json:"type" yaml:"type"`
	HasEntranceDoor bool         `json:"has_entrance_door" yaml:"has_entrance_door"`

	// Bounds overrides the collision box derived from Size
	Bounds *Box `json:"bounds,omitempty" yaml:"bounds,omitempty"`

	ConnectionPoints []Connection `json:"connection_points" yaml:"connection_points"`
}

// ResolvedConnectionPoints returns the connection points a growth step may use
func (p *RoomProperties) ResolvedConnectionPoints() []Connection {
	return p.ConnectionPoints
}

// IsRoom reports whether the template is Room-type content
func (p *RoomProperties) IsRoom() bool {
	return p.Type == RoomTypeRoom
}

// CollisionBox returns the local collision box. Without explicit bounds the
// footprint sits north of the entrance, which is at the origin.
func (p *RoomProperties) CollisionBox() Box {
	if p.Bounds != nil {
		return *p.Bounds
	}
	return Box{
		Center:      grid.Vector2{X: 0, Y: p.Size.Y / 2},
		HalfExtents: grid.Vector2{X: p.Size.X / 2, Y: p.Size.Y / 2},
	}
}

// Entrance returns the synthetic connection a room is attached through:
// the origin, facing south.
func (p *RoomProperties) Entrance() Connection {
	return Connection{
		Transform:  grid.NewTransform(0, 0, grid.South),
		Required:   true,
		HasDoor:    p.HasEntranceDoor,
		IsEntrance: true,
		Odds:       1,
	}
}

// Validate reports authoring mistakes that make a template unusable
func (p *RoomProperties) Validate() error {
	vb := errors.NewValidationBuilder()

	if p.Prefab == "" {
		vb.RequiredField("prefab")
	}
	if p.Size.X <= 0 || p.Size.Y <= 0 {
		vb.Fieldf("size", "must be positive, got %s", p.Size)
	}
	if !p.Type.IsValid() {
		vb.Fieldf("type", "unknown room type %q", p.Type)
	}
	if p.Bounds != nil && (p.Bounds.HalfExtents.X <= 0 || p.Bounds.HalfExtents.Y <= 0) {
		vb.Field("bounds", "half extents must be positive")
	}
	for i, c := range p.ConnectionPoints {
		if c.Odds < 0 || c.Odds > 1 {
			vb.Fieldf(fmt.Sprintf("connection_points[%d].odds", i), "must be within [0, 1], got %g", c.Odds)
		}
		if !c.Transform.Rotation.IsValid() {
			vb.Field(fmt.Sprintf("connection_points[%d].rotation", i), "must be a cardinal direction")
		}
	}

	return vb.Build()
}

// Decorations names the prefabs placed on resolved doorways
type Decorations struct {
	OpenDoor   string `json:"open_door" yaml:"open_door"`
	ClosedDoor string `json:"closed_door" yaml:"closed_door"`
}

// SpawnKind is the category of entity a spawn entry places
type SpawnKind string

// Spawn kinds understood by the spawner
const (
	SpawnKindEnemy   SpawnKind = "enemy"
	SpawnKindHostage SpawnKind = "hostage"
	SpawnKindTrap    SpawnKind = "trap"
	SpawnKindLoot    SpawnKind = "loot"
)

// SpawnEntry is one weighted row of a spawn table
type SpawnEntry struct {
	Kind   SpawnKind `json:"kind" yaml:"kind"`
	Name   string    `json:"name" yaml:"name"`
	Weight int       `json:"weight" yaml:"weight"`

	// RoomsOnly keeps the entry out of hallways
	RoomsOnly bool `json:"rooms_only" yaml:"rooms_only"`

	// LootCategory names an equipment category used to pick a loot name
	LootCategory string `json:"loot_category,omitempty" yaml:"loot_category,omitempty"`
}

// SpawnTable drives entity placement after a layout is finalized
type SpawnTable struct {
	// PerRoomDie is the die rolled for the number of spawns in a room
	PerRoomDie int          `json:"per_room_die" yaml:"per_room_die"`
	Entries    []SpawnEntry `json:"entries" yaml:"entries"`
}

// TemplateSet is everything needed to generate one family of maps
type TemplateSet struct {
	ID            string           `json:"id" yaml:"id"`
	Name          string           `json:"name" yaml:"name"`
	StartingRooms []RoomProperties `json:"starting_rooms" yaml:"starting_rooms"`
	Rooms         []RoomProperties `json:"rooms" yaml:"rooms"`
	Decorations   Decorations      `json:"decorations" yaml:"decorations"`
	SpawnTable    SpawnTable       `json:"spawn_table" yaml:"spawn_table"`
}

// TemplatesOfType returns the growth templates of the given type
func (s *TemplateSet) TemplatesOfType(t RoomType) []*RoomProperties {
	var out []*RoomProperties
	for i := range s.Rooms {
		if s.Rooms[i].Type == t {
			out = append(out, &s.Rooms[i])
		}
	}
	return out
}

// Validate checks the whole set, including every room template
func (s *TemplateSet) Validate() error {
	vb := errors.NewValidationBuilder()

	if s.ID == "" {
		vb.RequiredField("id")
	}
	if len(s.StartingRooms) == 0 {
		vb.Field("starting_rooms", "at least one starting room is required")
	}
	if len(s.Rooms) == 0 {
		vb.Field("rooms", "at least one growth template is required")
	}

	seen := make(map[string]bool)
	check := func(field string, rooms []RoomProperties) {
		for i := range rooms {
			room := &rooms[i]
			name := fmt.Sprintf("%s[%d]", field, i)
			if room.ID == "" {
				vb.RequiredField(name + ".id")
			} else if seen[room.ID] {
				vb.Fieldf(name+".id", "duplicate template id %q", room.ID)
			}
			seen[room.ID] = true
			if err := room.Validate(); err != nil {
				vb.Field(name, errors.GetMessage(err))
			}
		}
	}
	check("starting_rooms", s.StartingRooms)
	check("rooms", s.Rooms)

	if s.SpawnTable.PerRoomDie < 0 {
		vb.Field("spawn_table.per_room_die", "must not be negative")
	}
	for i, e := range s.SpawnTable.Entries {
		if e.Weight <= 0 {
			vb.Fieldf(fmt.Sprintf("spawn_table.entries[%d].weight", i), "must be positive, got %d", e.Weight)
		}
		if e.Name == "" && e.LootCategory == "" {
			vb.Field(fmt.Sprintf("spawn_table.entries[%d]", i), "needs a name or a loot category")
		}
	}

	return vb.Build()
}

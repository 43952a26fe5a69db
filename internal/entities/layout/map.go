package layout

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// Map is a finalized, pruned room graph together with its spawns
type Map struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id,omitempty"`
	TemplateSetID string `json:"template_set_id"`

	// Seed is the layout seed of the attempt that produced this map
	Seed      int64 `json:"seed,string"`
	SpawnSeed int64 `json:"spawn_seed,string"`

	// Attempts counts full regenerations, starting at 1
	Attempts    int   `json:"attempts"`
	TargetRooms int   `json:"target_rooms"`
	QuotaMet    bool  `json:"quota_met"`
	Stats       Stats `json:"stats"`

	Rooms    []PlacedRoom `json:"rooms"`
	Doorways []Doorway    `json:"doorways"`
	Spawns   []Spawn      `json:"spawns"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// GetID returns the map ID
func (m *Map) GetID() string {
	return m.ID
}

// GetType returns the entity type for rpg-toolkit
func (m *Map) GetType() string {
	return "map"
}

// RoomCount returns the number of rooms of the given type
func (m *Map) RoomCount(t RoomType) int {
	n := 0
	for i := range m.Rooms {
		if m.Rooms[i].Type == t {
			n++
		}
	}
	return n
}

// Room looks up a placed room by ID
func (m *Map) Room(id string) (*PlacedRoom, bool) {
	for i := range m.Rooms {
		if m.Rooms[i].ID == id {
			return &m.Rooms[i], true
		}
	}
	return nil, false
}

// Doorway looks up a doorway by ID
func (m *Map) Doorway(id string) (*Doorway, bool) {
	for i := range m.Doorways {
		if m.Doorways[i].ID == id {
			return &m.Doorways[i], true
		}
	}
	return nil, false
}

// Entry returns the entry room, if it survived pruning
func (m *Map) Entry() (*PlacedRoom, bool) {
	for i := range m.Rooms {
		if m.Rooms[i].IsEntry {
			return &m.Rooms[i], true
		}
	}
	return nil, false
}

// PlacedRoom is one surviving room instance
type PlacedRoom struct {
	ID         string   `json:"id"`
	TemplateID string   `json:"template_id"`
	Prefab     string   `json:"prefab"`
	Type       RoomType `json:"type"`

	// ParentID is empty for the entry room
	ParentID string `json:"parent_id,omitempty"`

	// ParentConnection is the index of the parent's connection point used, -1 for the entry
	ParentConnection int `json:"parent_connection"`

	Transform grid.Transform `json:"transform"`
	Bounds    Rect           `json:"bounds"`
	ChildIDs  []string       `json:"child_ids,omitempty"`

	IsEntry       bool `json:"is_entry"`
	IsInEntryZone bool `json:"is_in_entry_zone"`
	IsLeaf        bool `json:"is_leaf"`
	HasRoomLeaf   bool `json:"has_room_leaf"`
}

// GetID returns the room ID
func (r *PlacedRoom) GetID() string {
	return r.ID
}

// GetType returns the entity type for rpg-toolkit
func (r *PlacedRoom) GetType() string {
	return string(r.Type)
}

// Compile-time check that map records implement core.Entity
var (
	_ core.Entity = (*Map)(nil)
	_ core.Entity = (*PlacedRoom)(nil)
)

// Rect is an axis-aligned rectangle in grid units
type Rect struct {
	Min grid.Vector2 `json:"min"`
	Max grid.Vector2 `json:"max"`
}

// Center returns the middle of the rectangle
func (r Rect) Center() grid.Vector2 {
	return grid.Vector2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Width returns the extent along X
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the extent along Y
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Overlaps reports whether the interiors of r and o intersect; shared edges do not count
func (r Rect) Overlaps(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside r or on its edge
func (r Rect) Contains(p grid.Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Union returns the smallest rectangle containing both r and o
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: grid.Vector2{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: grid.Vector2{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

// DecorationKind is what ends up standing in a doorway
type DecorationKind string

// Doorway decorations
const (
	DecorationNone       DecorationKind = "none"
	DecorationOpenDoor   DecorationKind = "open_door"
	DecorationClosedDoor DecorationKind = "closed_door"
)

// Doorway is one resolved connection marker
type Doorway struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`

	// Transform is in map space; Rotation faces out of the owning room
	Transform grid.Transform `json:"transform"`

	IsEntrance    bool           `json:"is_entrance"`
	HasDoor       bool           `json:"has_door"`
	Connected     bool           `json:"connected"`
	Generated     bool           `json:"generated"`
	OtherID       string         `json:"other_id,omitempty"`
	Decoration    DecorationKind `json:"decoration"`
	IsInEntryZone bool           `json:"is_in_entry_zone"`
}

// Spawn is one entity placed by the spawner
type Spawn struct {
	ID       string       `json:"id"`
	Kind     SpawnKind    `json:"kind"`
	Name     string       `json:"name"`
	RoomID   string       `json:"room_id"`
	Position grid.Vector2 `json:"position"`
}

// Stats records what happened during generation, for diagnostics
type Stats struct {
	Iterations         int `json:"iterations"`
	LeafAttempts       int `json:"leaf_attempts"`
	Collisions         int `json:"collisions"`
	InvalidTemplates   int `json:"invalid_templates"`
	DroppedConnections int `json:"dropped_connections"`
	SkippedConnections int `json:"skipped_connections"`
	PrunedRooms        int `json:"pruned_rooms"`
	PairedDoorways     int `json:"paired_doorways"`
	ClosedPairs        int `json:"closed_pairs"`
}

package engine

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// Handle identifies an instance in a World. The zero value is never issued.
type Handle uint64

// MarkerID identifies a registered marker in a World
type MarkerID uint64

// Layer separates volumes and markers into independent query sets
type Layer int

const (
	// LayerRoomVolume holds room collision boxes
	LayerRoomVolume Layer = iota + 1
	// LayerDoorway holds connection markers
	LayerDoorway
)

func (l Layer) String() string {
	switch l {
	case LayerRoomVolume:
		return "room_volume"
	case LayerDoorway:
		return "doorway"
	default:
		return "unknown"
	}
}

// OrientedBox is a box in map space. Rotations are always cardinal, so the
// box is axis-aligned once its half extents are turned by Rotation.
type OrientedBox struct {
	Center      grid.Vector2
	HalfExtents grid.Vector2
	Rotation    grid.Direction
}

// NewOrientedBox places a room-local box using the room's map transform
func NewOrientedBox(local layout.Box, pose grid.Transform) OrientedBox {
	return OrientedBox{
		Center:      pose.Apply(local.Center),
		HalfExtents: local.HalfExtents,
		Rotation:    pose.Rotation,
	}
}

// Rect returns the axis-aligned rectangle covered by the box
func (b OrientedBox) Rect() layout.Rect {
	half := b.HalfExtents
	if b.Rotation == grid.East || b.Rotation == grid.West {
		half = grid.Vector2{X: half.Y, Y: half.X}
	}
	return layout.Rect{
		Min: b.Center.Sub(half),
		Max: b.Center.Add(half),
	}
}

// Shrink returns the box with each half extent reduced by margin, never below zero
func (b OrientedBox) Shrink(margin float64) OrientedBox {
	b.HalfExtents = grid.Vector2{
		X: max(b.HalfExtents.X-margin, 0),
		Y: max(b.HalfExtents.Y-margin, 0),
	}
	return b
}

// ProbeHit describes the marker a probe found
type ProbeHit struct {
	Marker   MarkerID
	Owner    Handle
	Pose     grid.Transform
	Distance float64
}

// NavMeshInput is everything the nav-mesh baker needs
type NavMeshInput struct {
	MapID    string
	GridUnit float64

	// Walkable holds the surviving room footprints
	Walkable []layout.Rect

	// Openings holds the positions of open doorways
	Openings []grid.Vector2
}

// SpawnRoom is a room offered to the spawner
type SpawnRoom struct {
	ID            string
	Type          layout.RoomType
	Bounds        layout.Rect
	IsInEntryZone bool
}

// SpawnInput is everything the spawner needs
type SpawnInput struct {
	MapID  string
	Rooms  []SpawnRoom
	Table  layout.SpawnTable
	Roller dice.Roller

	// LootNames maps an equipment category to item names to draw from
	LootNames map[string][]string
}

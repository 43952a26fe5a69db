package sim

import (
	"log/slog"
	"math"
	"sync"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// openingReach is how close a doorway must be to a shared edge to join two rooms
const openingReach = 0.75

// NavMeshSummary describes the last bake
type NavMeshSummary struct {
	MapID string

	// Cells is the number of walkable one-unit cells
	Cells int

	// Regions is the number of connected walkable areas
	Regions int
}

// cell is keyed on doubled center coordinates so half-unit centers stay integral
type cell struct {
	x, y int
}

// NavMesh bakes a coarse walkability grid from room footprints. Cells in
// different rooms only connect through an open doorway.
type NavMesh struct {
	mu   sync.RWMutex
	last NavMeshSummary
}

// Ensure NavMesh implements engine.NavMeshBuilder
var _ engine.NavMeshBuilder = (*NavMesh)(nil)

// NewNavMesh creates a baker with no bake yet
func NewNavMesh() *NavMesh {
	return &NavMesh{}
}

// Rebuild bakes the input and records a summary
func (n *NavMesh) Rebuild(input *engine.NavMeshInput) {
	if input == nil {
		return
	}

	summary := bake(input)

	n.mu.Lock()
	n.last = summary
	n.mu.Unlock()

	slog.Debug("Nav mesh rebuilt",
		"map_id", input.MapID,
		"cells", summary.Cells,
		"regions", summary.Regions)
}

// Last returns the summary of the most recent bake
func (n *NavMesh) Last() NavMeshSummary {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.last
}

func bake(input *engine.NavMeshInput) NavMeshSummary {
	owner := make(map[cell]int)
	var order []cell

	for room, rect := range input.Walkable {
		cols := int(math.Floor(rect.Width()))
		rows := int(math.Floor(rect.Height()))
		for i := 0; i < cols; i++ {
			for j := 0; j < rows; j++ {
				c := cellAt(grid.Vector2{
					X: rect.Min.X + float64(i) + 0.5,
					Y: rect.Min.Y + float64(j) + 0.5,
				})
				if _, taken := owner[c]; taken {
					continue
				}
				owner[c] = room
				order = append(order, c)
			}
		}
	}

	seen := make(map[cell]bool, len(order))
	regions := 0
	for _, start := range order {
		if seen[start] {
			continue
		}
		regions++
		seen[start] = true
		queue := []cell{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			for _, next := range neighbours(current) {
				room, ok := owner[next]
				if !ok || seen[next] {
					continue
				}
				if room != owner[current] && !hasOpening(current, next, input.Openings) {
					continue
				}
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return NavMeshSummary{MapID: input.MapID, Cells: len(order), Regions: regions}
}

func cellAt(center grid.Vector2) cell {
	return cell{x: int(math.Round(center.X * 2)), y: int(math.Round(center.Y * 2))}
}

func neighbours(c cell) [4]cell {
	return [4]cell{
		{c.x + 2, c.y},
		{c.x - 2, c.y},
		{c.x, c.y + 2},
		{c.x, c.y - 2},
	}
}

func hasOpening(a, b cell, openings []grid.Vector2) bool {
	edge := grid.Vector2{X: float64(a.x+b.x) / 4, Y: float64(a.y+b.y) / 4}
	for _, o := range openings {
		if math.Abs(o.X-edge.X) <= openingReach && math.Abs(o.Y-edge.Y) <= openingReach {
			return true
		}
	}
	return false
}

// Footprints converts placed rooms into walkable rectangles
func Footprints(rooms []layout.PlacedRoom) []layout.Rect {
	out := make([]layout.Rect, 0, len(rooms))
	for i := range rooms {
		out = append(out, rooms[i].Bounds)
	}
	return out
}

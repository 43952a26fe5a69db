package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/engine/sim"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

func rect(minX, minY, maxX, maxY float64) layout.Rect {
	return layout.Rect{Min: grid.Vector2{X: minX, Y: minY}, Max: grid.Vector2{X: maxX, Y: maxY}}
}

func TestNavMesh_Rebuild(t *testing.T) {
	testCases := []struct {
		name    string
		input   *engine.NavMeshInput
		cells   int
		regions int
	}{
		{
			name:    "single room",
			input:   &engine.NavMeshInput{MapID: "m", Walkable: []layout.Rect{rect(-2, 0, 2, 4)}},
			cells:   16,
			regions: 1,
		},
		{
			name: "two rooms joined by an opening",
			input: &engine.NavMeshInput{
				MapID:    "m",
				Walkable: []layout.Rect{rect(-2, 0, 2, 4), rect(-1, 4, 1, 8)},
				Openings: []grid.Vector2{{X: 0, Y: 4}},
			},
			cells:   24,
			regions: 1,
		},
		{
			name: "two rooms touching without an opening",
			input: &engine.NavMeshInput{
				MapID:    "m",
				Walkable: []layout.Rect{rect(-2, 0, 2, 4), rect(-1, 4, 1, 8)},
			},
			cells:   24,
			regions: 2,
		},
		{
			name:    "empty layout",
			input:   &engine.NavMeshInput{MapID: "m"},
			cells:   0,
			regions: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			nav := sim.NewNavMesh()
			nav.Rebuild(tc.input)

			got := nav.Last()
			assert.Equal(t, tc.input.MapID, got.MapID)
			assert.Equal(t, tc.cells, got.Cells)
			assert.Equal(t, tc.regions, got.Regions)
		})
	}
}

func TestNavMesh_RebuildNilIsIgnored(t *testing.T) {
	nav := sim.NewNavMesh()
	nav.Rebuild(nil)
	assert.Equal(t, sim.NavMeshSummary{}, nav.Last())
}

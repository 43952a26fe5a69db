// Package engine defines the collaborators the room generator drives: the
// world it places prefabs into, the nav-mesh baker and the entity spawner.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-mapgen/internal/engine World,NavMeshBuilder,Spawner

import (
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// World is the scene the generator builds into
type World interface {
	// Instantiate places a prefab at pose and returns its handle
	Instantiate(prefab string, pose grid.Transform) (Handle, error)

	// Destroy removes an instance together with its volumes and markers
	Destroy(h Handle)

	// RegisterVolume attaches a collision box to an instance on a layer
	RegisterVolume(h Handle, box OrientedBox, layer Layer)

	// OverlapBox reports whether box intersects any registered volume on layer
	OverlapBox(box OrientedBox, layer Layer) bool

	// RegisterMarker attaches a doorway marker to an instance
	RegisterMarker(h Handle, pose grid.Transform, layer Layer) MarkerID

	// Probe casts from origin along its facing and returns the nearest marker
	// that faces back toward the probe. Markers owned by ignore are skipped.
	Probe(origin grid.Transform, maxDistance float64, layer Layer, ignore Handle) (ProbeHit, bool)

	// Reset destroys every instance
	Reset()
}

// NavMeshBuilder rebuilds walkable surfaces once a layout is final.
// Rebuild is fire-and-forget; the generator never inspects the result.
type NavMeshBuilder interface {
	Rebuild(input *NavMeshInput)
}

// Spawner places entities into a finalized layout
type Spawner interface {
	Populate(input *SpawnInput) ([]layout.Spawn, error)
}

// Package sim provides in-memory implementations of the engine collaborators.
// The World keeps instances, collision volumes and doorway markers in plain
// slices so queries are deterministic for a given sequence of calls.
package sim

import (
	"math"
	"sync"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

const (
	// DefaultLateralTolerance is how far off the probe ray a marker may sit
	DefaultLateralTolerance = 0.25

	// probeBackstep lets a probe hit a marker sitting exactly on its origin
	probeBackstep = 1e-6
)

// Config configures a World
type Config struct {
	// CollisionMargin shrinks every overlap query so touching boxes do not collide
	CollisionMargin float64

	// LateralTolerance is the maximum distance between a marker and the probe ray
	LateralTolerance float64
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CollisionMargin < 0 {
		vb.Field("CollisionMargin", "must not be negative")
	}
	if c.LateralTolerance < 0 {
		vb.Field("LateralTolerance", "must not be negative")
	}

	return vb.Build()
}

type volume struct {
	owner engine.Handle
	box   engine.OrientedBox
	layer engine.Layer
}

type marker struct {
	id    engine.MarkerID
	owner engine.Handle
	pose  grid.Transform
	layer engine.Layer
}

type instance struct {
	prefab string
	pose   grid.Transform
}

// World is an in-memory scene
type World struct {
	mu sync.RWMutex

	margin    float64
	tolerance float64

	nextHandle engine.Handle
	nextMarker engine.MarkerID

	instances map[engine.Handle]instance
	volumes   []volume
	markers   []marker
}

// Ensure World implements engine.World
var _ engine.World = (*World)(nil)

// NewWorld creates an empty world
func NewWorld(cfg *Config) (*World, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tolerance := cfg.LateralTolerance
	if tolerance == 0 {
		tolerance = DefaultLateralTolerance
	}

	return &World{
		margin:    cfg.CollisionMargin,
		tolerance: tolerance,
		instances: make(map[engine.Handle]instance),
	}, nil
}

// Instantiate places a prefab at pose
func (w *World) Instantiate(prefab string, pose grid.Transform) (engine.Handle, error) {
	if prefab == "" {
		return 0, errors.InvalidArgument("prefab is required")
	}
	if !pose.Rotation.IsValid() {
		return 0, errors.InvalidArgumentf("invalid rotation %d", int(pose.Rotation))
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.nextHandle++
	w.instances[w.nextHandle] = instance{prefab: prefab, pose: pose}

	return w.nextHandle, nil
}

// Destroy removes an instance and everything registered against it
func (w *World) Destroy(h engine.Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.instances[h]; !ok {
		return
	}
	delete(w.instances, h)

	volumes := w.volumes[:0]
	for _, v := range w.volumes {
		if v.owner != h {
			volumes = append(volumes, v)
		}
	}
	w.volumes = volumes

	markers := w.markers[:0]
	for _, m := range w.markers {
		if m.owner != h {
			markers = append(markers, m)
		}
	}
	w.markers = markers
}

// RegisterVolume attaches a collision box to an instance
func (w *World) RegisterVolume(h engine.Handle, box engine.OrientedBox, layer engine.Layer) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.instances[h]; !ok {
		return
	}
	w.volumes = append(w.volumes, volume{owner: h, box: box, layer: layer})
}

// OverlapBox reports whether box intersects a registered volume on layer
func (w *World) OverlapBox(box engine.OrientedBox, layer engine.Layer) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	query := box.Shrink(w.margin).Rect()
	for _, v := range w.volumes {
		if v.layer != layer {
			continue
		}
		if query.Overlaps(v.box.Rect()) {
			return true
		}
	}
	return false
}

// RegisterMarker attaches a doorway marker to an instance. It returns zero
// when the instance does not exist.
func (w *World) RegisterMarker(h engine.Handle, pose grid.Transform, layer engine.Layer) engine.MarkerID {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.instances[h]; !ok {
		return 0
	}
	w.nextMarker++
	w.markers = append(w.markers, marker{id: w.nextMarker, owner: h, pose: pose, layer: layer})

	return w.nextMarker
}

// Probe finds the nearest facing marker in front of origin
func (w *World) Probe(
	origin grid.Transform,
	maxDistance float64,
	layer engine.Layer,
	ignore engine.Handle,
) (engine.ProbeHit, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	forward := origin.Forward()
	facing := grid.Opposite(origin.Rotation)

	var best engine.ProbeHit
	found := false
	for _, m := range w.markers {
		if m.layer != layer || m.owner == ignore || m.pose.Rotation != facing {
			continue
		}

		offset := m.pose.Position.Sub(origin.Position)
		along := offset.Dot(forward)
		if along < -probeBackstep || along > maxDistance {
			continue
		}
		lateral := math.Abs(offset.X*forward.Y - offset.Y*forward.X)
		if lateral > w.tolerance {
			continue
		}

		distance := math.Max(along, 0)
		if !found || distance < best.Distance {
			best = engine.ProbeHit{Marker: m.id, Owner: m.owner, Pose: m.pose, Distance: distance}
			found = true
		}
	}

	return best, found
}

// Reset destroys every instance
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.instances = make(map[engine.Handle]instance)
	w.volumes = nil
	w.markers = nil
}

// InstanceCount returns the number of live instances
func (w *World) InstanceCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return len(w.instances)
}

// Prefab returns the prefab an instance was created from
func (w *World) Prefab(h engine.Handle) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	inst, ok := w.instances[h]
	return inst.prefab, ok
}

// PrefabCount returns how many live instances were created from prefab
func (w *World) PrefabCount(prefab string) int {
	w.mu.RLock()
	defer w.mu.RUnlock()

	n := 0
	for _, inst := range w.instances {
		if inst.prefab == prefab {
			n++
		}
	}
	return n
}

// Volumes returns the rectangles of every volume on layer
func (w *World) Volumes(layer engine.Layer) []engine.OrientedBox {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []engine.OrientedBox
	for _, v := range w.volumes {
		if v.layer == layer {
			out = append(out, v.box)
		}
	}
	return out
}

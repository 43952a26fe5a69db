package generation

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// connectionProfile is one doorway marker on a surviving room
type connectionProfile struct {
	index      int
	room       int
	connection layout.Connection
	world      grid.Transform
	marker     engine.MarkerID

	connected bool
	generated bool

	// other is -1 until the doorway is paired
	other int

	decoration       layout.DecorationKind
	decorationHandle engine.Handle
}

// finalizeConnections places a marker on every doorway of every surviving
// room, then resolves each marker exactly once.
func (g *Generator) finalizeConnections() {
	for _, room := range g.rooms {
		if room.pruned {
			continue
		}
		if !room.isEntry {
			g.addConnection(room, room.template.Entrance())
		}
		for _, conn := range room.template.ResolvedConnectionPoints() {
			g.addConnection(room, conn)
		}
	}

	for _, cp := range g.connections {
		if cp.generated {
			continue
		}
		g.resolve(cp)
	}
}

func (g *Generator) addConnection(room *roomProfile, conn layout.Connection) {
	pose := room.world.Mul(conn.Transform)
	cp := &connectionProfile{
		index:      len(g.connections),
		room:       room.index,
		connection: conn,
		world:      pose,
		other:      -1,
		decoration: layout.DecorationNone,
	}
	cp.marker = g.world.RegisterMarker(room.handle, pose, engine.LayerDoorway)
	g.markers[cp.marker] = cp.index
	g.connections = append(g.connections, cp)
}

// resolve probes outward from cp for a facing doorway of another room
func (g *Generator) resolve(cp *connectionProfile) {
	owner := g.rooms[cp.room].handle
	if hit, found := g.world.Probe(cp.world, g.settings.ProbeDistance, engine.LayerDoorway, owner); found {
		if idx, ok := g.markers[hit.Marker]; ok && !g.connections[idx].generated {
			g.pair(cp, g.connections[idx])
			return
		}
	}

	cp.generated = true
	if cp.connection.IsEntrance {
		return
	}
	cp.decoration = layout.DecorationClosedDoor
	g.decorate(cp, g.templates.Decorations.ClosedDoor)
}

// pair links two facing doorways. Entrances are always open; any other pair
// stays open with ConnectRoomsOdds.
func (g *Generator) pair(a, b *connectionProfile) {
	a.other, b.other = b.index, a.index
	a.generated, b.generated = true, true
	g.stats.PairedDoorways++

	open := a.connection.IsEntrance || b.connection.IsEntrance ||
		g.layoutRNG.Float64() < g.settings.ConnectRoomsOdds

	if !open {
		a.connected, b.connected = false, false
		a.decoration, b.decoration = layout.DecorationClosedDoor, layout.DecorationClosedDoor
		g.stats.ClosedPairs++
		// One prefab serves the pair; it sits on a and b only records the kind.
		g.decorate(a, g.templates.Decorations.ClosedDoor)
		return
	}

	a.connected, b.connected = true, true
	if a.connection.HasDoor || b.connection.HasDoor {
		a.decoration, b.decoration = layout.DecorationOpenDoor, layout.DecorationOpenDoor
		// Shared by the pair, as above.
		g.decorate(a, g.templates.Decorations.OpenDoor)
	}
}

func (g *Generator) decorate(cp *connectionProfile, prefab string) {
	if prefab == "" {
		return
	}

	handle, err := g.world.Instantiate(prefab, cp.world)
	if err != nil {
		slog.Error("Failed to place doorway decoration",
			"doorway_id", doorwayID(cp.index),
			"prefab", prefab,
			"error", err,
		)
		return
	}
	cp.decorationHandle = handle
}

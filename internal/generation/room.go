package generation

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

// roomProfile is one placed room instance
type roomProfile struct {
	index    int
	template *layout.RoomProperties
	world    grid.Transform
	box      engine.OrientedBox
	handle   engine.Handle

	// parent is -1 for the entry room
	parent           int
	parentConnection int
	children         []int

	hasRoomLeaf   bool
	isEntry       bool
	isInEntryZone bool
	pruned        bool
}

func (g *Generator) addRoom(
	tmpl *layout.RoomProperties,
	world grid.Transform,
	parent, parentConnection int,
	handle engine.Handle,
	box engine.OrientedBox,
) int {
	idx := len(g.rooms)
	g.rooms = append(g.rooms, &roomProfile{
		index:            idx,
		template:         tmpl,
		world:            world,
		box:              box,
		handle:           handle,
		parent:           parent,
		parentConnection: parentConnection,
	})
	if tmpl.IsRoom() {
		g.remaining--
	}
	return idx
}

func (g *Generator) grow() {
	if g.settings.Strategy == StrategyDepthFirst {
		g.growRecursive(0, 0)
		return
	}

	for i := 0; i < g.settings.MaxIterations; i++ {
		if g.remaining <= 0 || len(g.worklist) == 0 {
			return
		}
		g.iterate()
	}
}

// iterate runs one breadth-first pass. The worklist is swapped into the
// back-buffer first so rooms placed during this pass wait for the next one.
func (g *Generator) iterate() {
	g.backbuffer, g.worklist = g.worklist, g.backbuffer[:0]
	g.stats.Iterations++

	for _, idx := range g.backbuffer {
		resolved := g.generateLeafs(idx, func(child int) {
			g.worklist = append(g.worklist, child)
		})
		if !resolved {
			slog.Debug("Room left connections unresolved",
				"room_id", roomID(idx),
				"template_id", g.rooms[idx].template.ID,
			)
		}
	}
}

// growRecursive is the depth-first variant: each new room grows its own
// subtree before the next connection of its parent is tried.
func (g *Generator) growRecursive(idx, depth int) {
	if depth >= g.settings.MaxIterations || g.remaining <= 0 {
		return
	}
	g.stats.Iterations = max(g.stats.Iterations, depth+1)

	g.generateLeafs(idx, func(child int) {
		g.growRecursive(child, depth+1)
	})
}

// generateLeafs tries to attach a room to every connection point of the room
// at idx and reports whether all attempted connections were resolved.
func (g *Generator) generateLeafs(idx int, placed func(child int)) bool {
	room := g.rooms[idx]
	resolved := true

	for ci, conn := range room.template.ResolvedConnectionPoints() {
		if !conn.Required && g.layoutRNG.Float64() > conn.Odds && g.remaining <= 0 {
			g.stats.SkippedConnections++
			continue
		}

		pose := room.world.Mul(conn.Transform)
		child, ok := g.placeLeaf(idx, ci, pose)
		if !ok {
			resolved = false
			g.stats.DroppedConnections++
			continue
		}

		room.children = append(room.children, child)
		placed(child)
	}

	return resolved
}

// placeLeaf attaches a random template so that its entrance lands on pose
func (g *Generator) placeLeaf(parent, connection int, pose grid.Transform) (int, bool) {
	for attempt := 0; attempt < g.settings.MaxLeafRetry; attempt++ {
		tmpl := g.pickTemplate()
		if tmpl == nil {
			return -1, false
		}
		g.stats.LeafAttempts++

		if err := tmpl.Validate(); err != nil {
			slog.Error("Discarding invalid room template",
				"template_id", tmpl.ID,
				"error", err,
			)
			g.stats.InvalidTemplates++
			continue
		}

		entrance := tmpl.Entrance()
		placement := pose.Mul(entrance.Transform.Inverse())

		handle, err := g.world.Instantiate(tmpl.Prefab, placement)
		if err != nil {
			slog.Error("Failed to instantiate room template",
				"template_id", tmpl.ID,
				"prefab", tmpl.Prefab,
				"error", err,
			)
			g.stats.InvalidTemplates++
			continue
		}

		box := engine.NewOrientedBox(tmpl.CollisionBox(), placement)
		if g.world.OverlapBox(box, engine.LayerRoomVolume) {
			g.world.Destroy(handle)
			g.stats.Collisions++
			continue
		}

		g.world.RegisterVolume(handle, box, engine.LayerRoomVolume)
		return g.addRoom(tmpl, placement, parent, connection, handle, box), true
	}

	return -1, false
}

// pickTemplate chooses between rooms and hallways with RoomOdds. Once the
// budget is spent only hallways are offered.
func (g *Generator) pickTemplate() *layout.RoomProperties {
	rooms := g.roomTemplates
	if g.remaining <= 0 {
		rooms = nil
	}
	halls := g.hallTemplates

	var pool []*layout.RoomProperties
	switch {
	case len(rooms) == 0 && len(halls) == 0:
		return nil
	case len(rooms) == 0:
		pool = halls
	case len(halls) == 0:
		pool = rooms
	case g.layoutRNG.Float64() < g.settings.RoomOdds:
		pool = rooms
	default:
		pool = halls
	}

	return pool[g.layoutRNG.Intn(len(pool))]
}

// prune walks the arena backwards so children settle before their parents,
// then destroys every room with no Room-type content below it.
func (g *Generator) prune() {
	for i := len(g.rooms) - 1; i >= 0; i-- {
		room := g.rooms[i]
		if room.template.IsRoom() {
			room.hasRoomLeaf = true
		}
		if room.hasRoomLeaf && room.parent >= 0 {
			g.rooms[room.parent].hasRoomLeaf = true
		}
	}

	for _, room := range g.rooms {
		if !room.hasRoomLeaf {
			g.world.Destroy(room.handle)
			room.pruned = true
			g.stats.PrunedRooms++
			continue
		}

		kept := room.children[:0]
		for _, child := range room.children {
			if g.rooms[child].hasRoomLeaf {
				kept = append(kept, child)
			}
		}
		room.children = kept
	}
}

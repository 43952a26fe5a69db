package generation

// State is the phase a generator is in
type State int

// Generation phases, in the order a run visits them
const (
	StateIdle State = iota
	StateSeeding
	StatePlacingEntry
	StateGrowing
	StatePruning
	StateFinalizingConnections
	StateBuildingNavMesh
	StateSpawningEntities
	StateDone
)

var stateNames = [...]string{
	"idle",
	"seeding",
	"placing_entry",
	"growing",
	"pruning",
	"finalizing_connections",
	"building_nav_mesh",
	"spawning_entities",
	"done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

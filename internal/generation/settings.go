package generation

import (
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
)

// Strategy selects how growth walks the room graph
type Strategy string

const (
	// StrategyBreadthFirst grows one level of the graph per iteration
	StrategyBreadthFirst Strategy = "breadth_first"
	// StrategyDepthFirst recurses into each new room immediately
	StrategyDepthFirst Strategy = "depth_first"
)

// IsValid reports whether s is a known strategy
func (s Strategy) IsValid() bool {
	return s == StrategyBreadthFirst || s == StrategyDepthFirst
}

// Settings are the tunables of a generation run
type Settings struct {
	// TargetRooms is the number of Room-type instances the map should contain
	TargetRooms int `yaml:"target_rooms"`

	// MaxIterations caps breadth-first growth passes
	MaxIterations int `yaml:"max_iterations"`

	// MaxLeafRetry caps placement attempts per connection point
	MaxLeafRetry int `yaml:"max_leaf_retry"`

	// RoomOdds is the chance a growth step picks a room over a hallway
	RoomOdds float64 `yaml:"room_odds"`

	// ConnectRoomsOdds is the chance a paired, non-entrance doorway stays open
	ConnectRoomsOdds float64 `yaml:"connect_rooms_odds"`

	// CustomSeed fixes the layout seed; attempt n uses CustomSeed+n-1
	CustomSeed *int64 `yaml:"custom_seed,omitempty"`

	// SpawnSeed fixes the spawn seed
	SpawnSeed *int64 `yaml:"spawn_seed,omitempty"`

	// MaxRegenerations caps full restarts when the room quota is missed
	MaxRegenerations int `yaml:"max_regenerations"`

	// GridUnit is the real-world size of one grid cell
	GridUnit float64 `yaml:"grid_unit"`

	// ProbeDistance is how far a doorway looks for a facing doorway
	ProbeDistance float64 `yaml:"probe_distance"`

	// CollisionMargin shrinks overlap queries in the world built for a run
	CollisionMargin float64 `yaml:"collision_margin"`

	Strategy Strategy `yaml:"strategy"`
}

// Upper limits on the counts a run may be asked for. Each regeneration repeats
// the whole growth, so these bound the work one request can cause.
const (
	LimitTargetRooms   = 200
	LimitIterations    = 500
	LimitLeafRetry     = 20
	LimitRegenerations = 50
)

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		TargetRooms:      8,
		MaxIterations:    20,
		MaxLeafRetry:     3,
		RoomOdds:         0.5,
		ConnectRoomsOdds: 0.5,
		MaxRegenerations: 10,
		GridUnit:         4,
		ProbeDistance:    0.5,
		CollisionMargin:  0.01,
		Strategy:         StrategyBreadthFirst,
	}
}

// Validate validates the settings
func (s *Settings) Validate() error {
	vb := errors.NewValidationBuilder()

	vb.IntRange("TargetRooms", s.TargetRooms, 1, LimitTargetRooms)
	vb.IntRange("MaxIterations", s.MaxIterations, 1, LimitIterations)
	vb.IntRange("MaxLeafRetry", s.MaxLeafRetry, 1, LimitLeafRetry)
	if s.RoomOdds < 0 || s.RoomOdds > 1 {
		vb.Field("RoomOdds", "must be within [0, 1]")
	}
	if s.ConnectRoomsOdds < 0 || s.ConnectRoomsOdds > 1 {
		vb.Field("ConnectRoomsOdds", "must be within [0, 1]")
	}
	vb.IntRange("MaxRegenerations", s.MaxRegenerations, 1, LimitRegenerations)
	if s.GridUnit <= 0 {
		vb.Field("GridUnit", "must be positive")
	}
	if s.ProbeDistance < 0 {
		vb.Field("ProbeDistance", "must not be negative")
	}
	if s.CollisionMargin < 0 {
		vb.Field("CollisionMargin", "must not be negative")
	}
	if !s.Strategy.IsValid() {
		vb.Fieldf("Strategy", "unknown strategy %q", s.Strategy)
	}

	return vb.Build()
}

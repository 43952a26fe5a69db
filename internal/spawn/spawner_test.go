package spawn_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-mapgen/internal/spawn"
)

// failingRoller errors on every roll
type failingRoller struct{}

func (failingRoller) Roll(int) (int, error) {
	return 0, errors.Internal("dice fell off the table")
}

func (failingRoller) RollN(int, int) ([]int, error) {
	return nil, errors.Internal("dice fell off the table")
}

type SpawnerTestSuite struct {
	suite.Suite
	spawner *spawn.Spawner
	input   *engine.SpawnInput
}

func TestSpawnerSuite(t *testing.T) {
	suite.Run(t, new(SpawnerTestSuite))
}

func bounds(minX, minY, maxX, maxY float64) layout.Rect {
	return layout.Rect{Min: grid.Vector2{X: minX, Y: minY}, Max: grid.Vector2{X: maxX, Y: maxY}}
}

func (s *SpawnerTestSuite) SetupTest() {
	spawner, err := spawn.New(&spawn.Config{})
	s.Require().NoError(err)
	s.spawner = spawner

	s.input = &engine.SpawnInput{
		MapID: "map-1",
		Rooms: []engine.SpawnRoom{
			{ID: "room-0", Type: layout.RoomTypeRoom, Bounds: bounds(-2, 0, 2, 4), IsInEntryZone: true},
			{ID: "room-1", Type: layout.RoomTypeHallway, Bounds: bounds(-1, 4, 1, 8)},
			{ID: "room-2", Type: layout.RoomTypeRoom, Bounds: bounds(-3, 8, 3, 14)},
			{ID: "room-3", Type: layout.RoomTypeRoom, Bounds: bounds(2, 0, 6, 4)},
		},
		Table: layout.SpawnTable{
			PerRoomDie: 6,
			Entries: []layout.SpawnEntry{
				{Kind: layout.SpawnKindEnemy, Name: "guard", Weight: 3},
				{Kind: layout.SpawnKindHostage, Name: "scientist", Weight: 1, RoomsOnly: true},
				{Kind: layout.SpawnKindLoot, Name: "crate", Weight: 2, RoomsOnly: true, LootCategory: "weapon"},
			},
		},
		Roller:    rng.New(42),
		LootNames: map[string][]string{"weapon": {"Dagger", "Shortsword"}},
	}
}

func (s *SpawnerTestSuite) populateSeeds(n int) [][]layout.Spawn {
	var runs [][]layout.Spawn
	for i := 0; i < n; i++ {
		s.input.Roller = rng.New(int64(1000 + i))
		spawns, err := s.spawner.Populate(s.input)
		s.Require().NoError(err)
		runs = append(runs, spawns)
	}
	return runs
}

func (s *SpawnerTestSuite) TestEntryZoneIsNeverPopulated() {
	for _, spawns := range s.populateSeeds(30) {
		for _, sp := range spawns {
			s.Assert().NotEqual("room-0", sp.RoomID)
		}
	}
}

func (s *SpawnerTestSuite) TestRoomsOnlyEntriesStayOutOfHallways() {
	for _, spawns := range s.populateSeeds(30) {
		for _, sp := range spawns {
			if sp.RoomID == "room-1" {
				s.Assert().Equal(layout.SpawnKindEnemy, sp.Kind)
			}
		}
	}
}

func (s *SpawnerTestSuite) TestLootNamesComeFromTheCatalog() {
	for _, spawns := range s.populateSeeds(30) {
		for _, sp := range spawns {
			if sp.Kind == layout.SpawnKindLoot {
				s.Assert().Contains([]string{"Dagger", "Shortsword"}, sp.Name)
			}
		}
	}
}

func (s *SpawnerTestSuite) TestLootFallsBackToEntryName() {
	s.input.LootNames = nil
	for _, spawns := range s.populateSeeds(30) {
		for _, sp := range spawns {
			if sp.Kind == layout.SpawnKindLoot {
				s.Assert().Equal("crate", sp.Name)
			}
		}
	}
}

func (s *SpawnerTestSuite) TestPositionsAreInsideDistinctCells() {
	rooms := make(map[string]layout.Rect)
	for _, r := range s.input.Rooms {
		rooms[r.ID] = r.Bounds
	}

	for _, spawns := range s.populateSeeds(30) {
		seen := make(map[grid.Vector2]bool)
		ids := make(map[string]bool)
		for _, sp := range spawns {
			s.Assert().True(rooms[sp.RoomID].Contains(sp.Position), "%s at %s", sp.ID, sp.Position)
			s.Assert().False(seen[sp.Position], "two spawns share %s", sp.Position)
			s.Assert().False(ids[sp.ID], "duplicate id %s", sp.ID)
			seen[sp.Position] = true
			ids[sp.ID] = true
		}
	}
}

func (s *SpawnerTestSuite) TestSameSeedSameSpawns() {
	s.input.Roller = rng.New(7)
	first, err := s.spawner.Populate(s.input)
	s.Require().NoError(err)

	s.input.Roller = rng.New(7)
	second, err := s.spawner.Populate(s.input)
	s.Require().NoError(err)

	s.Assert().Equal(first, second)
}

func (s *SpawnerTestSuite) TestEmptyTableSpawnsNothing() {
	s.input.Table = layout.SpawnTable{}

	spawns, err := s.spawner.Populate(s.input)
	s.Require().NoError(err)
	s.Assert().Empty(spawns)
}

func (s *SpawnerTestSuite) TestErrors() {
	s.Run("nil input", func() {
		_, err := s.spawner.Populate(nil)
		s.Assert().True(errors.IsInvalidArgument(err))
	})

	s.Run("missing roller", func() {
		input := *s.input
		input.Roller = nil
		_, err := s.spawner.Populate(&input)
		s.Assert().True(errors.IsInvalidArgument(err))
	})

	s.Run("roller failure", func() {
		input := *s.input
		input.Roller = failingRoller{}
		_, err := s.spawner.Populate(&input)
		s.Require().Error(err)
		s.Assert().Contains(err.Error(), "failed to populate room room-1")
	})

	s.Run("negative tries", func() {
		_, err := spawn.New(&spawn.Config{PlacementTries: -1})
		s.Assert().Error(err)
	})
}

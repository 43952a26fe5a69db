package layout_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

type LayoutTestSuite struct {
	suite.Suite
	room layout.RoomProperties
	set  layout.TemplateSet
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutTestSuite))
}

func (s *LayoutTestSuite) SetupTest() {
	s.room = layout.RoomProperties{
		ID:              "office",
		Prefab:          "rooms/office",
		Size:            grid.Vector2{X: 4, Y: 6},
		Type:            layout.RoomTypeRoom,
		HasEntranceDoor: true,
		ConnectionPoints: []layout.Connection{
			{Transform: grid.NewTransform(0, 6, grid.North), Odds: 0.5},
		},
	}
	s.set = layout.TemplateSet{
		ID:            "test",
		StartingRooms: []layout.RoomProperties{s.room},
		Rooms: []layout.RoomProperties{
			{ID: "hall", Prefab: "halls/straight", Size: grid.Vector2{X: 2, Y: 4}, Type: layout.RoomTypeHallway},
			{ID: "store", Prefab: "rooms/store", Size: grid.Vector2{X: 4, Y: 4}, Type: layout.RoomTypeRoom},
		},
	}
	s.set.StartingRooms[0].ID = "lobby"
}

func (s *LayoutTestSuite) TestCollisionBoxDefaultsToFootprint() {
	box := s.room.CollisionBox()
	s.Assert().Equal(grid.Vector2{X: 0, Y: 3}, box.Center)
	s.Assert().Equal(grid.Vector2{X: 2, Y: 3}, box.HalfExtents)

	custom := layout.Box{Center: grid.Vector2{Y: 1}, HalfExtents: grid.Vector2{X: 1, Y: 1}}
	s.room.Bounds = &custom
	s.Assert().Equal(custom, s.room.CollisionBox())
}

func (s *LayoutTestSuite) TestEntrance() {
	entrance := s.room.Entrance()
	s.Assert().True(entrance.IsEntrance)
	s.Assert().True(entrance.Required)
	s.Assert().True(entrance.HasDoor)
	s.Assert().Equal(grid.NewTransform(0, 0, grid.South), entrance.Transform)
}

func (s *LayoutTestSuite) TestRoomValidate() {
	testCases := []struct {
		name   string
		mutate func(r *layout.RoomProperties)
		valid  bool
	}{
		{name: "valid", mutate: func(*layout.RoomProperties) {}, valid: true},
		{name: "missing prefab", mutate: func(r *layout.RoomProperties) { r.Prefab = "" }},
		{name: "zero size", mutate: func(r *layout.RoomProperties) { r.Size = grid.Vector2{X: 4} }},
		{name: "unknown type", mutate: func(r *layout.RoomProperties) { r.Type = "closet" }},
		{name: "odds above one", mutate: func(r *layout.RoomProperties) { r.ConnectionPoints[0].Odds = 1.5 }},
		{
			name: "degenerate bounds",
			mutate: func(r *layout.RoomProperties) {
				r.Bounds = &layout.Box{HalfExtents: grid.Vector2{X: 1}}
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			room := s.room
			room.ConnectionPoints = append([]layout.Connection(nil), s.room.ConnectionPoints...)
			tc.mutate(&room)

			err := room.Validate()
			if tc.valid {
				s.Assert().NoError(err)
				return
			}
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *LayoutTestSuite) TestTemplateSetValidate() {
	s.Require().NoError(s.set.Validate())

	s.Run("duplicate ids", func() {
		set := s.set
		set.Rooms = append([]layout.RoomProperties(nil), s.set.Rooms...)
		set.Rooms[1].ID = "hall"
		s.Assert().Error(set.Validate())
	})

	s.Run("no starting rooms", func() {
		set := s.set
		set.StartingRooms = nil
		s.Assert().Error(set.Validate())
	})

	s.Run("zero spawn weight", func() {
		set := s.set
		set.SpawnTable.Entries = []layout.SpawnEntry{{Kind: layout.SpawnKindEnemy, Name: "grunt"}}
		s.Assert().Error(set.Validate())
	})
}

func (s *LayoutTestSuite) TestTemplatesOfType() {
	halls := s.set.TemplatesOfType(layout.RoomTypeHallway)
	s.Require().Len(halls, 1)
	s.Assert().Equal("hall", halls[0].ID)

	rooms := s.set.TemplatesOfType(layout.RoomTypeRoom)
	s.Require().Len(rooms, 1)
	s.Assert().Equal("store", rooms[0].ID)
}

func (s *LayoutTestSuite) TestRectOverlaps() {
	a := layout.Rect{Min: grid.Vector2{X: 0, Y: 0}, Max: grid.Vector2{X: 4, Y: 4}}

	s.Assert().True(a.Overlaps(layout.Rect{Min: grid.Vector2{X: 3, Y: 3}, Max: grid.Vector2{X: 5, Y: 5}}))
	s.Assert().False(a.Overlaps(layout.Rect{Min: grid.Vector2{X: 4, Y: 0}, Max: grid.Vector2{X: 8, Y: 4}}), "shared edge")
	s.Assert().True(a.Contains(grid.Vector2{X: 4, Y: 4}))
	s.Assert().Equal(grid.Vector2{X: 2, Y: 2}, a.Center())
}

func (s *LayoutTestSuite) TestMapLookups() {
	m := &layout.Map{
		ID: "map-1",
		Rooms: []layout.PlacedRoom{
			{ID: "room-0", Type: layout.RoomTypeHallway, IsEntry: true},
			{ID: "room-3", Type: layout.RoomTypeRoom},
			{ID: "room-4", Type: layout.RoomTypeRoom},
		},
	}

	s.Assert().Equal("map", m.GetType())
	s.Assert().Equal(2, m.RoomCount(layout.RoomTypeRoom))

	room, ok := m.Room("room-3")
	s.Require().True(ok)
	s.Assert().Equal("room", room.GetType())

	entry, ok := m.Entry()
	s.Require().True(ok)
	s.Assert().Equal("room-0", entry.GetID())

	_, ok = m.Room("room-9")
	s.Assert().False(ok)
}

package testutils

import (
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/grid"
)

func connection(x, y float64, facing grid.Direction, required bool, odds float64) layout.Connection {
	return layout.Connection{
		Transform: grid.NewTransform(x, y, facing),
		Required:  required,
		Odds:      odds,
	}
}

// CreateTestTemplateSet returns a small office template set whose rooms sit
// on integer grid lines
func CreateTestTemplateSet() *layout.TemplateSet {
	return &layout.TemplateSet{
		ID:   "offices",
		Name: "Offices",
		StartingRooms: []layout.RoomProperties{
			{
				ID:     "lobby",
				Prefab: "rooms/lobby",
				Size:   grid.Vector2{X: 4, Y: 4},
				Type:   layout.RoomTypeRoom,
				ConnectionPoints: []layout.Connection{
					connection(0, 4, grid.North, false, 0.5),
					connection(2, 2, grid.East, false, 0.5),
					connection(-2, 2, grid.West, false, 0.5),
				},
			},
		},
		Rooms: []layout.RoomProperties{
			{
				ID:              "office",
				Prefab:          "rooms/office",
				Size:            grid.Vector2{X: 4, Y: 4},
				Type:            layout.RoomTypeRoom,
				HasEntranceDoor: true,
				ConnectionPoints: []layout.Connection{
					connection(0, 4, grid.North, false, 0.5),
					connection(2, 2, grid.East, false, 0.5),
				},
			},
			{
				ID:     "corridor",
				Prefab: "halls/corridor",
				Size:   grid.Vector2{X: 2, Y: 4},
				Type:   layout.RoomTypeHallway,
				ConnectionPoints: []layout.Connection{
					connection(0, 4, grid.North, true, 1),
				},
			},
		},
		Decorations: layout.Decorations{
			OpenDoor:   "props/door_open",
			ClosedDoor: "props/door_closed",
		},
		SpawnTable: layout.SpawnTable{
			PerRoomDie: 4,
			Entries: []layout.SpawnEntry{
				{Kind: layout.SpawnKindEnemy, Name: "intern", Weight: 3},
				{Kind: layout.SpawnKindLoot, Name: "stapler", Weight: 1, RoomsOnly: true, LootCategory: "adventuring-gear"},
			},
		},
	}
}

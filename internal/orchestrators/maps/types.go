package maps

import (
	"github.com/KirkDiggler/rpg-mapgen/internal/engine/sim"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
)

// Event types published on the event bus
const (
	EventMapGenerated = "mapgen.map.generated"
	EventMapDeleted   = "mapgen.map.deleted"
)

// SettingsOverrides replaces individual default settings for one request.
// Zero values keep the default.
type SettingsOverrides struct {
	TargetRooms      int
	MaxIterations    int
	MaxRegenerations int
	RoomOdds         *float64
	ConnectRoomsOdds *float64
	Seed             *int64
	SpawnSeed        *int64
	Strategy         generation.Strategy
}

// GenerateMapInput defines the request to generate a map
type GenerateMapInput struct {
	OwnerID string

	// TemplateSetID defaults to the configured template set
	TemplateSetID string

	Overrides *SettingsOverrides

	// RequireQuota fails the request instead of keeping a best-effort map
	RequireQuota bool
}

// GenerateMapOutput defines the response for generating a map
type GenerateMapOutput struct {
	Map     *layout.Map
	NavMesh sim.NavMeshSummary
}

// GetMapInput defines the request to fetch a map
type GetMapInput struct {
	MapID string
}

// GetMapOutput defines the response for fetching a map
type GetMapOutput struct {
	Map *layout.Map
}

// ListMapsInput defines the request to list an owner's maps
type ListMapsInput struct {
	OwnerID string
}

// ListMapsOutput defines the response for listing maps
type ListMapsOutput struct {
	Maps []*layout.Map
}

// DeleteMapInput defines the request to delete a map
type DeleteMapInput struct {
	MapID string

	// OwnerID, when set, must match the stored owner
	OwnerID string
}

// DeleteMapOutput defines the response for deleting a map
type DeleteMapOutput struct{}

// ListTemplateSetsInput defines the request to list template sets
type ListTemplateSetsInput struct{}

// ListTemplateSetsOutput defines the response for listing template sets
type ListTemplateSetsOutput struct {
	TemplateSets []*layout.TemplateSet
}

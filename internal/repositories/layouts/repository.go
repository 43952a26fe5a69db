// Package layouts provides the interface for generated map persistence
package layouts

//go:generate mockgen -destination=mock/mock_repository.go -package=layoutsmock github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts Repository

import (
	"context"
	"sort"
	"time"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
)

// DefaultTTL is how long a map lives when it carries no expiry of its own
const DefaultTTL = 24 * time.Hour

const (
	errMapNil     = "map cannot be nil"
	errMapIDEmpty = "map ID cannot be empty"
	errOwnerEmpty = "owner ID cannot be empty"
	errMapExpired = "map has already expired"
)

// Repository defines the interface for generated map persistence
type Repository interface {
	// Save stores a map, replacing any map with the same ID
	// Returns errors.InvalidArgument for a nil map, empty ID or past expiry
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a map by ID
	// Returns errors.NotFound if the map does not exist or has expired
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// ListByOwner returns every live map of an owner, oldest first
	ListByOwner(ctx context.Context, input *ListByOwnerInput) (*ListByOwnerOutput, error)

	// Delete removes a map
	// Returns errors.NotFound if the map does not exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the input for saving a map
type SaveInput struct {
	Map *layout.Map
}

// SaveOutput defines the output for saving a map
type SaveOutput struct{}

// GetInput defines the input for getting a map
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a map
type GetOutput struct {
	Map *layout.Map
}

// ListByOwnerInput defines the input for listing an owner's maps
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's maps
type ListByOwnerOutput struct {
	Maps []*layout.Map
}

// DeleteInput defines the input for deleting a map
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a map
type DeleteOutput struct{}

// ttlFor returns how long m should be kept, measured from now
func ttlFor(m *layout.Map, now time.Time) (time.Duration, bool) {
	if m.ExpiresAt.IsZero() {
		return DefaultTTL, true
	}
	ttl := m.ExpiresAt.Sub(now)
	return ttl, ttl > 0
}

// sortMaps orders maps oldest first, then by ID
func sortMaps(maps []*layout.Map) {
	sort.Slice(maps, func(i, j int) bool {
		a, b := maps[i], maps[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

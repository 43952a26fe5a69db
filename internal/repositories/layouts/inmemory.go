package layouts

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/clock"
)

type storedMap struct {
	m         *layout.Map
	expiresAt time.Time
}

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu    sync.RWMutex
	clock clock.Clock
	store map[string]storedMap
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository; a nil clock uses real time
func NewInMemory(clk clock.Clock) *InMemoryRepository {
	if clk == nil {
		clk = clock.New()
	}
	return &InMemoryRepository{
		clock: clk,
		store: make(map[string]storedMap),
	}
}

// Save stores a map
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Map == nil {
		return nil, errors.InvalidArgument(errMapNil)
	}
	if input.Map.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	now := r.clock.Now()
	ttl, live := ttlFor(input.Map, now)
	if !live {
		return nil, errors.InvalidArgument(errMapExpired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Map.ID] = storedMap{m: input.Map, expiresAt: now.Add(ttl)}

	return &SaveOutput{}, nil
}

// Get retrieves a map by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.store[input.ID]
	if !exists || !r.clock.Now().Before(stored.expiresAt) {
		return nil, errors.NotFoundf("map with ID %s not found", input.ID)
	}

	return &GetOutput{Map: stored.m}, nil
}

// ListByOwner returns every live map of an owner, oldest first
func (r *InMemoryRepository) ListByOwner(_ context.Context, input *ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock.Now()
	maps := []*layout.Map{}
	for _, stored := range r.store {
		if stored.m.OwnerID == input.OwnerID && now.Before(stored.expiresAt) {
			maps = append(maps, stored.m)
		}
	}
	sortMaps(maps)

	return &ListByOwnerOutput{Maps: maps}, nil
}

// Delete removes a map
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument(errMapIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.store[input.ID]
	if !exists || !r.clock.Now().Before(stored.expiresAt) {
		return nil, errors.NotFoundf("map with ID %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

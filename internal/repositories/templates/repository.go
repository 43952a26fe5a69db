// Package templates provides the interface for loading room template sets
package templates

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
)

// Repository defines the interface for template set lookup
type Repository interface {
	// Get retrieves a template set by ID
	// Returns errors.InvalidArgument for an empty ID
	// Returns errors.NotFound if no set has that ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// List returns every loaded template set ordered by ID
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting a template set
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a template set
type GetOutput struct {
	TemplateSet *layout.TemplateSet
}

// ListInput defines the input for listing template sets
type ListInput struct{}

// ListOutput defines the output for listing template sets
type ListOutput struct {
	TemplateSets []*layout.TemplateSet
}

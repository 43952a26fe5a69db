// Package v1alpha1 handles the map generation grpc service interface
package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	MapService maps.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.MapService == nil {
		return errors.InvalidArgument("map service is required")
	}
	return nil
}

// Handler implements the map gRPC service
type Handler struct {
	mapService maps.Service
}

// Ensure Handler implements MapServiceServer
var _ MapServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		mapService: cfg.MapService,
	}, nil
}

// GenerateMap grows a new map for the requesting owner
func (h *Handler) GenerateMap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if stringField(req, "owner_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	overrides, err := overridesFromStruct(req.GetFields()["overrides"].GetStructValue())
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.mapService.GenerateMap(ctx, &maps.GenerateMapInput{
		OwnerID:       stringField(req, "owner_id"),
		TemplateSetID: stringField(req, "template_set_id"),
		Overrides:     overrides,
		RequireQuota:  boolField(req, "require_quota"),
	})
	if err != nil {
		return nil, h.fail("GenerateMap", err)
	}

	resp, err := toStruct(map[string]any{
		"map":      output.Map,
		"nav_mesh": navMeshToMap(output.NavMesh),
	})
	if err != nil {
		return nil, h.fail("GenerateMap", err)
	}
	return resp, nil
}

// GetMap returns a stored map
func (h *Handler) GetMap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if stringField(req, "map_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("map_id is required"))
	}

	output, err := h.mapService.GetMap(ctx, &maps.GetMapInput{
		MapID: stringField(req, "map_id"),
	})
	if err != nil {
		return nil, h.fail("GetMap", err)
	}

	resp, err := toStruct(map[string]any{"map": output.Map})
	if err != nil {
		return nil, h.fail("GetMap", err)
	}
	return resp, nil
}

// ListMaps returns the live maps of an owner
func (h *Handler) ListMaps(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if stringField(req, "owner_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	output, err := h.mapService.ListMaps(ctx, &maps.ListMapsInput{
		OwnerID: stringField(req, "owner_id"),
	})
	if err != nil {
		return nil, h.fail("ListMaps", err)
	}

	resp, err := toStruct(map[string]any{"maps": nonNil(output.Maps)})
	if err != nil {
		return nil, h.fail("ListMaps", err)
	}
	return resp, nil
}

// DeleteMap removes a stored map
func (h *Handler) DeleteMap(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if stringField(req, "map_id") == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("map_id is required"))
	}

	_, err := h.mapService.DeleteMap(ctx, &maps.DeleteMapInput{
		MapID:   stringField(req, "map_id"),
		OwnerID: stringField(req, "owner_id"),
	})
	if err != nil {
		return nil, h.fail("DeleteMap", err)
	}

	return &structpb.Struct{}, nil
}

// ListTemplateSets returns the template sets maps can be generated from
func (h *Handler) ListTemplateSets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	output, err := h.mapService.ListTemplateSets(ctx, &maps.ListTemplateSetsInput{})
	if err != nil {
		return nil, h.fail("ListTemplateSets", err)
	}

	resp, err := toStruct(map[string]any{"template_sets": nonNil(output.TemplateSets)})
	if err != nil {
		return nil, h.fail("ListTemplateSets", err)
	}
	return resp, nil
}

// fail logs server-side failures and converts err for the wire
func (h *Handler) fail(method string, err error) error {
	if errors.IsInternal(err) {
		slog.Error("Request failed", "method", method, "error", err)
	}
	return errors.ToGRPCError(err)
}

// RecoverPanic turns a handler panic into an Internal status for the
// recovery interceptor
func RecoverPanic(p any) error {
	slog.Error("Recovered from panic in handler", "panic", p)
	return errors.ToGRPCError(errors.Internal("internal error"))
}

// nonNil keeps empty lists as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

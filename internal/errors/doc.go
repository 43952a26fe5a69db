// Package errors is the structured error type used across the map generator.
//
// Every error carries a Code, a caller-facing message and optional metadata.
// Codes map onto gRPC status codes, and metadata travels as an ErrorInfo
// detail so clients can read it back with FromGRPCError.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("map not found")
//	err := errors.InvalidArgumentf("room odds must be within [0,1], got %f", odds)
//
// Adding metadata:
//
//	err := errors.NotFound("map not found").
//	    WithMeta("map_id", mapID).
//	    WithMeta("owner_id", ownerID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get template set")
//	}
//
// Wrap keeps the code of an *Error and treats anything else as Internal.
// WrapWithCode replaces the code:
//
//	if err := client.Ping(ctx).Err(); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeUnavailable, "redis unreachable")
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // nothing stored under that id
//	}
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//	meta := errors.GetMeta(err)
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	if set.ID == "" {
//	    vb.RequiredField("id")
//	}
//	vb.IntRange("MaxRegenerations", s.MaxRegenerations, 1, generation.LimitRegenerations)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// Build returns InvalidArgument with one metadata entry per failed field.
//
// # gRPC Integration
//
// Handlers convert on the way out:
//
//	out, err := h.service.GetMap(ctx, &maps.GetMapInput{MapID: id})
//	if err != nil {
//	    return nil, errors.ToGRPCError(err)
//	}
//
// Clients convert on the way in:
//
//	resp, err := conn.Invoke(ctx, method, req, resp)
//	if err != nil {
//	    return errors.FromGRPCError(err)
//	}
//
// # Layer Guidelines
//
// Repositories return NotFound and AlreadyExists and wrap driver errors.
// Orchestrators validate input and wrap repository errors with context.
// Handlers convert to gRPC status and log what is Internal.
package errors

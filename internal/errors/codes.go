package errors

import "google.golang.org/grpc/codes"

// Code classifies an error. The set is the part of the gRPC code space the
// map service produces or expects back from its own server.
type Code string

// Error codes
const (
	CodeOK                Code = "OK"
	CodeCanceled          Code = "CANCELED"
	CodeInvalidArgument   Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded  Code = "DEADLINE_EXCEEDED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodePermissionDenied  Code = "PERMISSION_DENIED"
	CodeResourceExhausted Code = "RESOURCE_EXHAUSTED"
	CodeInternal          Code = "INTERNAL"
	CodeUnavailable       Code = "UNAVAILABLE"
)

var grpcCodes = map[Code]codes.Code{
	CodeOK:                codes.OK,
	CodeCanceled:          codes.Canceled,
	CodeInvalidArgument:   codes.InvalidArgument,
	CodeDeadlineExceeded:  codes.DeadlineExceeded,
	CodeNotFound:          codes.NotFound,
	CodeAlreadyExists:     codes.AlreadyExists,
	CodePermissionDenied:  codes.PermissionDenied,
	CodeResourceExhausted: codes.ResourceExhausted,
	CodeInternal:          codes.Internal,
	CodeUnavailable:       codes.Unavailable,
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the matching gRPC code, Unknown for a code outside the set
func (c Code) GRPCCode() codes.Code {
	if gc, ok := grpcCodes[c]; ok {
		return gc
	}
	return codes.Unknown
}

// codeFromGRPC is the reverse of GRPCCode. Anything the service never sends
// is treated as Internal.
func codeFromGRPC(gc codes.Code) Code {
	for c, candidate := range grpcCodes {
		if candidate == gc {
			return c
		}
	}
	return CodeInternal
}

package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies this service in gRPC error details
const ErrorDomain = "mapgen.api"

// ToGRPCError converts an error to a gRPC status error. Metadata is attached
// as a single ErrorInfo detail with every value printed as a string.
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	e, ok := asError(err)
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(e.Code.GRPCCode(), e.Message)
	if len(e.Meta) == 0 {
		return st.Err()
	}

	info := &errdetails.ErrorInfo{
		Reason:   string(e.Code),
		Domain:   ErrorDomain,
		Metadata: make(map[string]string, len(e.Meta)),
	}
	for k, v := range e.Meta {
		info.Metadata[k] = fmt.Sprint(v)
	}
	if detailed, err := st.WithDetails(info); err == nil {
		st = detailed
	}
	return st.Err()
}

// FromGRPCError converts a gRPC status error back into an *Error, restoring
// metadata from an ErrorInfo detail of this domain
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	out := New(codeFromGRPC(st.Code()), st.Message())
	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.Domain != ErrorDomain {
			continue
		}
		for k, v := range info.Metadata {
			out.WithMeta(k, v)
		}
		break
	}

	return out
}

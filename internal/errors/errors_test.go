package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "map not found",
			expected: "NOT_FOUND: map not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("map not found").
		WithMeta("map_id", "123").
		WithMeta("owner_id", "456")

	s.Assert().Equal("123", err.Meta["map_id"])
	s.Assert().Equal("456", err.Meta["owner_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to get map")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to get map", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "map not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("map not found", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "service unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("service unavailable", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCodeKeepsMeta() {
	baseErr := errors.ResourceExhausted("room quota not met").WithMeta("attempts", 3)
	wrapped := errors.WrapWithCode(baseErr, errors.CodeCanceled, "gave up")

	s.Assert().True(errors.IsCanceled(wrapped))
	s.Assert().Equal(3, errors.GetMeta(wrapped)["attempts"])

	wrapped.WithMeta("attempts", 4)
	s.Assert().Equal(3, baseErr.Meta["attempts"], "wrapping copies metadata")
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExistsf("%s", "test") }, errors.CodeAlreadyExists},
		{"PermissionDenied", func() *errors.Error { return errors.PermissionDenied("test") }, errors.CodePermissionDenied},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"ResourceExhausted", func() *errors.Error { return errors.ResourceExhausted("test") }, errors.CodeResourceExhausted},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestFormattedConstructors() {
	err := errors.NotFoundf("map %s not found", "123")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("map 123 not found", err.Message)

	err2 := errors.InvalidArgumentf("invalid target rooms: %d", -2)
	s.Assert().Equal(errors.CodeInvalidArgument, err2.Code)
	s.Assert().Equal("invalid target rooms: -2", err2.Message)
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(invalidErr))

	s.Assert().True(errors.IsInvalidArgument(invalidErr))
	s.Assert().False(errors.IsInvalidArgument(notFoundErr))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.NotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(err))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.NotFound("test").WithMeta("key", "value")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("value", errors.GetMeta(err)["key"])
	s.Assert().Equal("value", errors.GetMeta(wrapped)["key"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")
	stdErr := fmt.Errorf("standard error")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(stdErr))
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	// Test ToGRPCError
	err := errors.NotFound("map not found").
		WithMeta("map_id", "123")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("map not found", st.Message())

	details := st.Details()
	s.Require().Len(details, 1)
	info, ok := details[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Assert().Equal(errors.ErrorDomain, info.Domain)
	s.Assert().Equal(string(errors.CodeNotFound), info.Reason)
	s.Assert().Equal("123", info.Metadata["map_id"])

	// Test FromGRPCError
	grpcErr2 := status.Error(codes.InvalidArgument, "invalid input")
	err2 := errors.FromGRPCError(grpcErr2)
	s.Assert().Equal(errors.CodeInvalidArgument, errors.GetCode(err2))
	s.Assert().Equal("invalid input", errors.GetMessage(err2))
}

func (s *ErrorsTestSuite) TestGRPCMetaRoundTrip() {
	err := errors.ResourceExhausted("room quota not met").
		WithMeta("attempts", 3).
		WithMeta("template_set_id", "bunker")

	back := errors.FromGRPCError(errors.ToGRPCError(err))
	s.Assert().Equal(errors.CodeResourceExhausted, errors.GetCode(back))
	s.Assert().Equal("room quota not met", errors.GetMessage(back))

	meta := errors.GetMeta(back)
	s.Assert().Equal("3", meta["attempts"])
	s.Assert().Equal("bunker", meta["template_set_id"])
}

func (s *ErrorsTestSuite) TestGRPCWithoutMetaHasNoDetails() {
	st, ok := status.FromError(errors.ToGRPCError(errors.NotFound("map not found")))
	s.Require().True(ok)
	s.Assert().Empty(st.Details())

	back := errors.FromGRPCError(st.Err())
	s.Assert().Nil(errors.GetMeta(back))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodePermissionDenied, codes.PermissionDenied},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.CodeResourceExhausted, codes.ResourceExhausted},
		{errors.CodeCanceled, codes.Canceled},
		{errors.CodeDeadlineExceeded, codes.DeadlineExceeded},
		{errors.Code("BOGUS"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

func (s *ErrorsTestSuite) TestFromGRPCErrorCodes() {
	testCases := []struct {
		code     codes.Code
		expected errors.Code
	}{
		{codes.NotFound, errors.CodeNotFound},
		{codes.PermissionDenied, errors.CodePermissionDenied},
		{codes.DeadlineExceeded, errors.CodeDeadlineExceeded},
		{codes.Unimplemented, errors.CodeInternal},
		{codes.Unknown, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			err := errors.FromGRPCError(status.Error(tc.code, "boom"))
			s.Assert().Equal(tc.expected, errors.GetCode(err))
			s.Assert().Equal("boom", errors.GetMessage(err))
		})
	}
}

func (s *ErrorsTestSuite) TestForeignErrorsBecomeInternal() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("disk full")))
	s.Require().True(ok)
	s.Assert().Equal(codes.Internal, st.Code())
	s.Assert().Equal("disk full", st.Message())
}

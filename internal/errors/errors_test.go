package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pickupworld/internal/errors"
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
			message:  "session not found",
			expected: "NOT_FOUND: session not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "size must be >= 2",
			expected: "INVALID_ARGUMENT: size must be >= 2",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	base := errors.ResourceExhausted("no valid position").WithMeta("kind", "box")
	wrapped := errors.Wrap(base, "failed to generate world")

	s.Equal(errors.CodeResourceExhausted, wrapped.Code)
	s.Equal("failed to generate world", wrapped.Message)
	s.Equal("box", wrapped.Meta["kind"])
	s.Equal(base, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	wrapped := errors.Wrap(fmt.Errorf("disk full"), "failed to record episode")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Contains(wrapped.Error(), "disk full")
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.NotFound("layout not found").WithMeta("session_id", "s1")
	wrapped := errors.WrapWithCode(base, errors.CodeFailedPrecondition, "session has not been reset")

	s.Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Equal("s1", wrapped.Meta["session_id"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.True(errors.NotFound("a").Is(errors.NotFound("b")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestHelpers() {
	wrapped := errors.Wrap(errors.FailedPrecondition("episode terminated"), "step failed")

	s.True(errors.IsFailedPrecondition(wrapped))
	s.False(errors.IsNotFound(wrapped))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal("step failed", errors.GetMessage(wrapped))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Nil(errors.GetMeta(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestToGRPCErrorCarriesErrorInfo() {
	err := errors.ResourceExhausted("no valid position for entity").
		WithMeta("kind", "ball").
		WithMeta("attempts", 1000)

	st, ok := status.FromError(errors.ToGRPCError(err))
	s.Require().True(ok)
	s.Equal(codes.ResourceExhausted, st.Code())
	s.Equal("no valid position for entity", st.Message())

	s.Require().Len(st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	s.Require().True(ok)
	s.Equal("RESOURCE_EXHAUSTED", info.GetReason())
	s.Equal("ball", info.GetMetadata()["kind"])
	s.Equal("1000", info.GetMetadata()["attempts"])
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	original := errors.NotFound("session not found").WithMeta("session_id", "abc")

	back := errors.FromGRPCError(errors.ToGRPCError(original))

	s.Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Equal("session not found", errors.GetMessage(back))
	s.Equal("abc", errors.GetMeta(back)["session_id"])
}

func (s *ErrorsTestSuite) TestToGRPCErrorPlainError() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())
	s.Nil(errors.ToGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeResourceExhausted, codes.ResourceExhausted},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeInternal, codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

func (s *ErrorsTestSuite) TestUnknownCodeMapsToUnknown() {
	s.Equal(codes.Unknown, errors.Code("SOMETHING_ELSE").GRPCCode())

	back := errors.FromGRPCError(status.Error(codes.PermissionDenied, "nope"))
	s.True(errors.IsInternal(back))
}

func (s *ErrorsTestSuite) TestContextErrorsKeepTheirCodes() {
	s.Equal(errors.CodeCanceled, errors.GetCode(context.Canceled))
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(fmt.Errorf("step: %w", context.DeadlineExceeded)))

	st, ok := status.FromError(errors.ToGRPCError(context.Canceled))
	s.Require().True(ok)
	s.Equal(codes.Canceled, st.Code())
}

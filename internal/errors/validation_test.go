package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pickupworld/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationErrorOrdersFields() {
	ve := errors.NewValidationError()
	ve.AddFieldError("size", "must be >= 2")
	ve.AddFieldError("num_objs", "must be >= 0")

	s.True(ve.HasErrors())
	s.Equal("validation failed: num_objs: must be >= 0; size: must be >= 2", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestBuilderNoErrors() {
	s.Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestNumericBounds() {
	testCases := []struct {
		name      string
		size      float64
		numObjs   int
		shouldErr bool
	}{
		{"minimum room", 2, 0, false},
		{"default room", 12, 5, false},
		{"room too small", 1, 0, true},
		{"negative objects", 12, -1, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateMinFloat("size", tc.size, 2, vb)
			errors.ValidateMinInt("num_objs", tc.numObjs, 0, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.True(errors.IsInvalidArgument(err))
			} else {
				s.NoError(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRequiredAndEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("session_id", "   ", vb)
	errors.ValidateEnum("logging.level", "loud", []string{"debug", "info"}, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "session_id: is required")
	s.Contains(err.Error(), "logging.level: must be one of: debug, info")
}

package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("topic", "is required")
	ve.AddFieldError("subject", "is invalid")
	ve.AddFieldErrorf("grade_level", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal(
		"validation failed: grade_level: must be at least 1; subject: is invalid; topic: is required",
		ve.Error(),
	)

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("topic", "is required").
		Fieldf("difficulty", "must be between %d and %d", 1, 3).
		RequiredField("subject").
		InvalidField("provider", "not a known provider")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("grade_level", 13, 1, 12, vb)
	errors.ValidateRange("difficulty", 2, 1, 3, vb)
	errors.ValidateRange("max_tokens", 0, 1, 32000, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["grade_level"][0], "must be between 1 and 12")
	s.Assert().Contains(validationErrors["max_tokens"][0], "must be between 1 and 32000")
	s.Assert().NotContains(validationErrors, "difficulty")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	providers := []string{"openai", "ollama"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("provider", "claude", providers, vb)
	errors.ValidateEnum("fallback_provider", "ollama", providers, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	validationErrors := meta["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["provider"][0], "must be one of: openai, ollama")
	s.Assert().NotContains(validationErrors, "fallback_provider")
}

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
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
			message:  "template not found",
			expected: "NOT_FOUND: template not found",
		},
		{
			name:     "injection error",
			code:     errors.CodeInjection,
			message:  "missing injection point",
			expected: "INJECTION: missing injection point",
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
	err := errors.Extraction("missing section").
		WithMeta("section", "problems").
		WithPath("lessons/mathematics/intro.lua")

	s.Assert().Equal("problems", err.Meta["section"])
	s.Assert().Equal("lessons/mathematics/intro.lua", err.Meta["path"])

	err2 := errors.Internal("write failed").
		WithMetaMap(map[string]interface{}{
			"subject": "science",
			"name":    "BioLabSimulator",
		})

	s.Assert().Equal("science", err2.Meta["subject"])
	s.Assert().Equal("BioLabSimulator", err2.Meta["name"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("permission denied")
	wrapped := errors.Wrap(baseErr, "failed to write script")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to write script", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "template not found")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("template not found", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("no such file or directory")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeExtraction, "failed to read source")

	s.Assert().Equal(errors.CodeExtraction, wrapped.Code)
	s.Assert().Equal("failed to read source", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCodeKeepsMeta() {
	baseErr := errors.NotFound("missing").WithPath("a/b.lua")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeExtraction, "failed")

	s.Assert().Equal("a/b.lua", wrapped.Meta["path"])
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
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Configuration", func() *errors.Error { return errors.Configuration("test") }, errors.CodeConfiguration},
		{"Extraction", func() *errors.Error { return errors.Extraction("test") }, errors.CodeExtraction},
		{"Injection", func() *errors.Error { return errors.Injection("test") }, errors.CodeInjection},
		{"ValidationFailed", func() *errors.Error { return errors.ValidationFailed("test") }, errors.CodeValidationFailed},
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
	err := errors.NotFoundf("template %s not found", "mathematics/MathQuest")
	s.Assert().Equal(errors.CodeNotFound, err.Code)
	s.Assert().Equal("template mathematics/MathQuest not found", err.Message)

	err2 := errors.Injectionf("unfilled injection point found: %s", "-- [INJECT_PROBLEMS]")
	s.Assert().Equal(errors.CodeInjection, err2.Code)
	s.Assert().Equal("unfilled injection point found: -- [INJECT_PROBLEMS]", err2.Message)
}

func (s *ErrorsTestSuite) TestAmbiguousSubject() {
	s.Run("no matches", func() {
		err := errors.AmbiguousSubject("lessons/art/intro.lua", nil)
		s.Assert().True(errors.IsAmbiguousSubject(err))
		s.Assert().Contains(err.Message, "no subject found")
		s.Assert().Equal("lessons/art/intro.lua", err.Meta["path"])
	})

	s.Run("several matches", func() {
		err := errors.AmbiguousSubject("science_history/intro.lua", []string{"science", "history"})
		s.Assert().True(errors.IsAmbiguousSubject(err))
		s.Assert().Contains(err.Message, "multiple subjects")
		s.Assert().Equal([]string{"science", "history"}, err.Meta["matches"])
	})
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
	injectionErr := errors.Injection("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.Assert().True(errors.IsNotFound(notFoundErr))
	s.Assert().True(errors.IsNotFound(wrappedErr))
	s.Assert().False(errors.IsNotFound(injectionErr))

	s.Assert().True(errors.IsInjection(injectionErr))
	s.Assert().True(errors.IsInjection(errors.Wrap(injectionErr, "transform failed")))
	s.Assert().False(errors.IsExtraction(injectionErr))
	s.Assert().True(errors.IsConfiguration(errors.Configuration("x")))
	s.Assert().True(errors.IsValidationFailed(errors.ValidationFailed("x")))
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

func (s *ErrorsTestSuite) TestExitCode() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, 0},
		{errors.CodeInternal, 1},
		{errors.CodeValidationFailed, 2},
		{errors.CodeInvalidArgument, 3},
		{errors.CodeConfiguration, 3},
		{errors.CodeAmbiguousSubject, 3},
		{errors.CodeNotFound, 4},
		{errors.CodeExtraction, 5},
		{errors.CodeInjection, 5},
		{errors.CodeUnavailable, 6},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.ExitCode())
		})
	}

	s.Assert().Equal(0, errors.ExitCode(nil))
	s.Assert().Equal(1, errors.ExitCode(fmt.Errorf("plain")))
	s.Assert().Equal(5, errors.ExitCode(errors.Wrap(errors.Injection("x"), "wrapped")))
}

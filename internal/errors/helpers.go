package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-friendly message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// ExitCode returns the CLI exit status for an error
func ExitCode(err error) int {
	return GetCode(err).ExitCode()
}

// Type checking helpers

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return GetCode(err) == CodeConfiguration
}

// IsAmbiguousSubject checks if an error is an ambiguous subject error
func IsAmbiguousSubject(err error) bool {
	return GetCode(err) == CodeAmbiguousSubject
}

// IsExtraction checks if an error is an extraction error
func IsExtraction(err error) bool {
	return GetCode(err) == CodeExtraction
}

// IsInjection checks if an error is an injection error
func IsInjection(err error) bool {
	return GetCode(err) == CodeInjection
}

// IsValidationFailed checks if an error reports a rejected script
func IsValidationFailed(err error) bool {
	return GetCode(err) == CodeValidationFailed
}

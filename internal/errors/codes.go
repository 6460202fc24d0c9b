package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"

	// Pipeline codes
	CodeConfiguration    Code = "CONFIGURATION"
	CodeAmbiguousSubject Code = "AMBIGUOUS_SUBJECT"
	CodeExtraction       Code = "EXTRACTION"
	CodeInjection        Code = "INJECTION"
	CodeValidationFailed Code = "VALIDATION_FAILED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode returns the process exit status the CLI reports for the code.
// 2 is reserved for scripts rejected by the validator.
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeValidationFailed:
		return 2
	case CodeInvalidArgument, CodeConfiguration, CodeAmbiguousSubject:
		return 3
	case CodeNotFound:
		return 4
	case CodeExtraction, CodeInjection:
		return 5
	case CodeUnavailable, CodeDeadlineExceeded, CodeCanceled:
		return 6
	default:
		return 1
	}
}

// Package errors provides the structured error type used across lesson-forge.
//
// Errors carry a Code, a user-facing message, an optional cause, and
// metadata. The pipeline adds its own codes on top of the general ones:
//   - Configuration: unsupported subject or missing subject config
//   - AmbiguousSubject: a source path names no subject, or several
//   - Extraction: malformed source or missing required sections
//   - Injection: missing, duplicate or leftover injection markers
//   - ValidationFailed: a generated script the validator rejected
//
// # Basic Usage
//
//	err := errors.Configurationf("unsupported subject: %s", subject)
//	err := errors.Extraction("missing required section").WithMeta("section", "problems")
//
// File I/O failures are converted at the boundary and carry the path:
//
//	b, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.WrapWithCode(err, errors.CodeExtraction, "failed to read source").WithPath(path)
//	}
//
// # Error Checking
//
//	if errors.IsNotFound(err) {
//	    // Handle not found case
//	}
//
//	code := errors.GetCode(err)
//	os.Exit(code.ExitCode())
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("topic", input.Topic, vb)
//	errors.ValidateRange("grade_level", input.GradeLevel, 1, 12, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return domain-specific errors (NotFound, InvalidArgument)
//   - Include relevant keys and paths in metadata
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Wrap repository and plugin errors with business context
//
// Command layer:
//   - Map errors to exit codes with ExitCode
//   - Print GetMessage to the operator
package errors

package domain

import (
	"errors"
	"strings"
)

// Sentinel errors for the translation pipeline. A QueryError matches the
// sentinel of its kind with errors.Is.
var (
	// ErrIntrospection indicates schema or facet retrieval failed before
	// generation was attempted.
	ErrIntrospection = errors.New("introspection failed")

	// ErrGeneration indicates the generation call failed or its result
	// violated the output contract.
	ErrGeneration = errors.New("generation failed")

	// ErrConfiguration indicates required configuration is missing.
	ErrConfiguration = errors.New("configuration invalid")

	// ErrSchemaViolation indicates the model answered but the value does not
	// satisfy the structured query schema. It is always a generation error.
	ErrSchemaViolation = errors.New("response doesn't satisfy schema")
)

// Other domain errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider type.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ErrorKind discriminates QueryError values.
type ErrorKind string

// Error kinds.
const (
	KindIntrospection ErrorKind = "introspection"
	KindGeneration    ErrorKind = "generation"
	KindConfiguration ErrorKind = "configuration"
)

// String returns the string representation.
func (k ErrorKind) String() string {
	return string(k)
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindIntrospection:
		return ErrIntrospection
	case KindGeneration:
		return ErrGeneration
	case KindConfiguration:
		return ErrConfiguration
	default:
		return nil
	}
}

// QueryError is the single typed error surfaced by the translation pipeline.
// Message is human readable; Err preserves the underlying cause.
type QueryError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the message followed by the cause, if any.
func (e *QueryError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	cause := e.Err.Error()
	if cause == "" {
		return e.Message
	}
	return e.Message + ": " + cause
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *QueryError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewIntrospectionError wraps a schema or facet retrieval failure.
func NewIntrospectionError(cause error) *QueryError {
	return &QueryError{
		Kind:    KindIntrospection,
		Message: "failed to get collection properties",
		Err:     cause,
	}
}

// NewGenerationError wraps a failed model call.
func NewGenerationError(cause error) *QueryError {
	return &QueryError{
		Kind:    KindGeneration,
		Message: "error generating search query",
		Err:     cause,
	}
}

// NewSchemaViolationError reports a model answer that is not a valid
// structured query. It is a generation error with its own message so
// callers can tell it apart from a failed model call. detail may be empty.
func NewSchemaViolationError(detail string) *QueryError {
	return &QueryError{
		Kind:    KindGeneration,
		Message: ErrSchemaViolation.Error(),
		Err:     &detailError{base: ErrSchemaViolation, detail: detail},
	}
}

// NewConfigurationError names every missing configuration value.
func NewConfigurationError(missing ...string) *QueryError {
	msg := "missing required configuration"
	if len(missing) > 0 {
		msg += " (" + strings.Join(missing, ", ") + ")"
	}
	return &QueryError{
		Kind:    KindConfiguration,
		Message: msg,
	}
}

// KindOf returns the kind of the first QueryError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind, true
	}
	return "", false
}

type detailError struct {
	base   error
	detail string
}

func (e *detailError) Error() string { return e.detail }

func (e *detailError) Unwrap() error { return e.base }

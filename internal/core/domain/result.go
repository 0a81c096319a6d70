package domain

import "errors"

// CallError is the error half of a Result.
type CallError struct {
	// Message is safe to show to end users; causes are not included.
	Message string `json:"message"`

	// Kind is set for pipeline errors.
	Kind ErrorKind `json:"kind,omitempty"`
}

// Result is the discriminated outcome returned to callers outside the
// process: exactly one of Data and Error is non-nil.
type Result[T any] struct {
	Data  *T         `json:"data"`
	Error *CallError `json:"error"`
}

// NewResult builds a Result from a call's return values. A nil data with
// a nil err still yields an error result.
func NewResult[T any](data *T, err error) Result[T] {
	if err == nil && data != nil {
		return Result[T]{Data: data}
	}
	if err == nil {
		err = errors.New("no result")
	}
	return Result[T]{Error: NewCallError(err)}
}

// NewCallError converts err into its user-facing form.
func NewCallError(err error) *CallError {
	var qe *QueryError
	if errors.As(err, &qe) {
		return &CallError{Message: qe.Message, Kind: qe.Kind}
	}
	return &CallError{Message: err.Error()}
}

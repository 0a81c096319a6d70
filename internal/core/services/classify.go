package services

import (
	"errors"

	"github.com/custodia-labs/nlquery/internal/core/domain"
)

// classify wraps err as a QueryError of the given kind. Errors that are
// already classified pass through unchanged so each failure is wrapped
// exactly once.
func classify(kind domain.ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var qe *domain.QueryError
	if errors.As(err, &qe) {
		return err
	}
	switch kind {
	case domain.KindIntrospection:
		return domain.NewIntrospectionError(err)
	case domain.KindConfiguration:
		return &domain.QueryError{Kind: domain.KindConfiguration, Message: "invalid configuration", Err: err}
	default:
		return domain.NewGenerationError(err)
	}
}

func asIntrospectionError(err error) error {
	return classify(domain.KindIntrospection, err)
}

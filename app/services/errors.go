package services

import "errors"

// NotFoundError reports that a query matched nothing where an empty result
// is meaningful to the caller. It is not a store failure.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func notFound(msg string) error {
	return &NotFoundError{Message: msg}
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

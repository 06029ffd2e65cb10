package services

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// apiError pairs a clean, client-facing message with a taxonomy
// sentinel from errdefs so callers can classify with errors.Is while
// the HTTP layer echoes Error() verbatim.
type apiError struct {
	msg  string
	kind error
}

func (e *apiError) Error() string { return e.msg }
func (e *apiError) Unwrap() error { return e.kind }

func errInvalid(format string, args ...interface{}) error {
	return &apiError{msg: fmt.Sprintf(format, args...), kind: errdefs.ErrInvalidArgument}
}

func errNotFound(format string, args ...interface{}) error {
	return &apiError{msg: fmt.Sprintf(format, args...), kind: errdefs.ErrNotFound}
}

func errUnauthenticated(format string, args ...interface{}) error {
	return &apiError{msg: fmt.Sprintf(format, args...), kind: errdefs.ErrUnauthenticated}
}

func errForbidden(format string, args ...interface{}) error {
	return &apiError{msg: fmt.Sprintf(format, args...), kind: errdefs.ErrPermissionDenied}
}

func errPolicy(format string, args ...interface{}) error {
	return &apiError{msg: fmt.Sprintf(format, args...), kind: errdefs.ErrConflict}
}

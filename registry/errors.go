package registry

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound signals a successful lookup for a name the registry does
	// not know about.  It is an expected outcome, not a failure.
	ErrNotFound = errors.New("not found in registry")

	// ErrRateLimited signals an explicit too-many-requests response.
	ErrRateLimited = errors.New("rate limited by registry")
)

// TransientError covers timeouts, unexpected status codes and malformed
// payloads.  Sweeps log and skip the affected item.
type TransientError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%v: unexpected status %v: %s", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func transient(op string, status int, err error) error {
	if err == nil {
		err = errors.New("request failed")
	}
	return &TransientError{Op: op, Status: status, Err: err}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited reports whether err is, or wraps, ErrRateLimited.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTransient reports whether err is, or wraps, a *TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

package prime

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroChunkSize is returned when a generator is configured with a
	// chunk size of zero. The check runs before any candidate is tested:
	// silently looping over an empty chunk would never advance the frontier.
	ErrZeroChunkSize = errors.New("chunk size must not be zero")
)

// ErrInvalidPrefix indicates that a caller-supplied known-primes list failed
// the opt-in prefix verification (see Builder.VerifyPrefix).
//
// The underlying verification error can be accessed via errors.Unwrap.
type ErrInvalidPrefix struct {
	cause error
}

func (e *ErrInvalidPrefix) Error() string {
	return fmt.Sprintf("invalid known-primes prefix: %v", e.cause)
}

func (e *ErrInvalidPrefix) Unwrap() error { return e.cause }

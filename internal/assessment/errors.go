package assessment

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected session operations. Use errors.Is to test for them.
var (
	ErrNotAnswered          = errors.New("current question has not been answered")
	ErrAlreadyComplete      = errors.New("assessment is already complete")
	ErrAtFirstQuestion      = errors.New("already at the first question")
	ErrNotComplete          = errors.New("assessment is not complete")
	ErrIndexOutOfRange      = errors.New("question index out of range")
	ErrValueOutOfRange      = errors.New("answer value is not on the scale")
	ErrFollowUpsUnavailable = errors.New("follow-up questions are only available on the final question")
	ErrUnknownOption        = errors.New("unknown follow-up option")
)

// NavigationError reports a session operation that was rejected in the
// session's current state.
type NavigationError struct {
	Op    string // Operation that was attempted, e.g. "advance"
	Index int    // Current question index when the operation was attempted
	Err   error  // One of the sentinel errors above
}

// Error implements the error interface for NavigationError.
func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s at question %d: %v", e.Op, e.Index+1, e.Err)
}

// Unwrap returns the sentinel error.
func (e *NavigationError) Unwrap() error {
	return e.Err
}

func (s *Session) reject(op string, err error) error {
	return &NavigationError{Op: op, Index: s.current, Err: err}
}

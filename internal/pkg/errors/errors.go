package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is a sentinel for callers acting outside their ownership.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is a sentinel for uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrIntegrity is a sentinel for rows referencing entities that no longer exist.
	ErrIntegrity = errors.New("integrity violation")
)

// Error pairs a sentinel kind with a caller-facing message. errors.Is against
// the sentinel still works, while Error() stays clean for API responses.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

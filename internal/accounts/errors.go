// Package accounts implements the account store and session: registration,
// login and persistence of user records over injected storage handles.
package accounts

import "errors"

// Domain errors. Every core operation returns one of these instead of
// panicking across the UI boundary; the handlers translate them into
// notifications. All are recoverable by the user retrying.
var (
	// ErrDuplicateEmail reports a registration with an email that is
	// already taken (exact, case-sensitive match).
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials reports a login with no matching
	// email+password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotLoggedIn reports an operation that needs an active session.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrUserNotFound reports a persist against an id that is no longer in
	// the durable store (e.g. the store was cleared externally).
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput reports rejected form input. Nothing is persisted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedRecord reports persisted text that no longer parses as
	// the expected record shape.
	ErrMalformedRecord = errors.New("malformed store record")
)

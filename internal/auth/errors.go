package auth

import "errors"

var (
	// ErrMissingFields is returned when a username or password is absent from
	// a sign-up or sign-in request.
	ErrMissingFields = errors.New("username and password are required")

	// ErrUsernameTaken is returned when sign-up targets an existing username,
	// whether caught by the lookup or by the unique index on insert.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotAdmin is returned when the acting user's role does not permit the
	// requested operation.
	ErrNotAdmin = errors.New("admin role required")

	// ErrUserNotFound is returned when a target user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrSessionNotFound is returned by session stores for unknown ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionInvalid is returned when a session dereferences a user that
	// no longer exists. Treated as unauthenticated, never as a fault.
	ErrSessionInvalid = errors.New("session references a deleted user")
)

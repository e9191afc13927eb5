package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for any local login failure. The message
	// is deliberately uniform so callers cannot learn whether the email exists.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInvalidToken is returned when a session token fails verification for
	// any reason: bad signature, malformed structure, expiry, missing subject.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrExternalAuth is returned when third-party token validation fails or
	// times out.
	ErrExternalAuth = errors.New("external authentication failed")

	// ErrDuplicate is returned when registration collides with an existing
	// email or username.
	ErrDuplicate = errors.New("email or username already registered")

	// ErrConflict is returned when a write violates a uniqueness constraint
	// outside the registration path, e.g. during identity reconciliation.
	ErrConflict = errors.New("conflicting user record")

	// ErrNotFound is returned when a user lookup by id comes up empty.
	ErrNotFound = errors.New("user not found")

	// ErrValidation is returned when registration input fails validation.
	ErrValidation = errors.New("validation error")
)

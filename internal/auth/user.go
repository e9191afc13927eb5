package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record shared by the local-password and Google login paths.
// PasswordHash is nil for OAuth-only accounts; ExternalID is nil until a Google
// identity has been linked. A stored user always has at least one of the two.
type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash *string
	IsActive     bool
	ExternalID   *string
	Name         string
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  time.Time
}

// HasPassword reports whether the user can log in with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// ExternalAssertion is a verified claim of identity from the external provider.
// It is only constructed after the provider-signed token has been validated,
// so consumers may trust its contents.
type ExternalAssertion struct {
	ExternalID    string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

package auth

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the credential store. Lookups return (nil, nil) on a
// miss. Writes that violate a uniqueness constraint fail with ErrConflict;
// those constraints, not the callers' pre-checks, are the authority on
// duplicates under concurrent requests.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByExternalID(ctx context.Context, externalID string) (*User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) error
	RecordLogin(ctx context.Context, id uuid.UUID, name, avatarURL string) error
}

package books

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a book cannot be located.
var ErrNotFound = errors.New("book not found")

// ErrValidation is returned when input validation fails.
var ErrValidation = errors.New("validation error")

// ValidationError wraps a validation message so callers can distinguish
// client errors from internal failures.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Book represents a catalog entry that users review and favorite.
type Book struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Author         string    `db:"author" json:"author"`
	Description    string    `db:"description" json:"description"`
	Genre          string    `db:"genre" json:"genre"`
	PublishedYear  *int      `db:"published_year" json:"publishedYear,omitempty"`
	GoogleVolumeID string    `db:"google_volume_id" json:"googleVolumeId"`
	Thumbnail      string    `db:"thumbnail" json:"thumbnail"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateBookInput captures the data needed to create a new Book.
type CreateBookInput struct {
	Title          string
	Author         string
	Description    string
	Genre          string
	PublishedYear  *int
	GoogleVolumeID string
	Thumbnail      string
}

// UpdateBookInput captures the editable fields for an existing book. Nil
// means "leave unchanged"; a double pointer distinguishes clearing a field.
type UpdateBookInput struct {
	Title          *string
	Author         *string
	Description    *string
	Genre          *string
	PublishedYear  **int
	GoogleVolumeID *string
	Thumbnail      *string
}

// Repository defines book persistence. Lookups that miss return ErrNotFound.
type Repository interface {
	Create(ctx context.Context, book Book) (Book, error)
	Get(ctx context.Context, id uuid.UUID) (Book, error)
	GetByGoogleVolumeID(ctx context.Context, volumeID string) (Book, error)
	List(ctx context.Context) ([]Book, error)
	Update(ctx context.Context, book Book) (Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookreview/internal/books"
)

// ErrNotFound is returned when a favorite cannot be located.
var ErrNotFound = errors.New("favorite not found")

// ErrDuplicate is returned when a user favorites the same book twice.
var ErrDuplicate = errors.New("book already favorited")

// Favorite links a user to a book they marked as a favorite. The (user, book)
// pair is unique.
type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	BookID    uuid.UUID `db:"book_id" json:"bookId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Repository defines favorite persistence. Add must enforce the (user, book)
// uniqueness and fail with ErrDuplicate; that constraint is the race-breaker
// for concurrent identical requests.
type Repository interface {
	Add(ctx context.Context, favorite Favorite) error
	Remove(ctx context.Context, userID, bookID uuid.UUID) error
	Exists(ctx context.Context, userID, bookID uuid.UUID) (bool, error)
	ListBooks(ctx context.Context, userID uuid.UUID) ([]books.Book, error)
}

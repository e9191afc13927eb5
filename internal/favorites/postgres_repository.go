package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bookreview/internal/books"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add inserts a favorite. The unique (user_id, book_id) index turns a repeat
// insert into ErrDuplicate.
func (r *PostgresRepository) Add(ctx context.Context, favorite Favorite) error {
	const query = `
		INSERT INTO favorites (id, user_id, book_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, favorite.ID, favorite.UserID, favorite.BookID, favorite.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%s: %w", pqErr.Constraint, ErrDuplicate)
		}
		return err
	}
	return nil
}

// Remove deletes a favorite.
func (r *PostgresRepository) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether the user has favorited the book.
func (r *PostgresRepository) Exists(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND book_id = $2)`, userID, bookID)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListBooks returns the user's favorite books, most recently favorited first.
func (r *PostgresRepository) ListBooks(ctx context.Context, userID uuid.UUID) ([]books.Book, error) {
	const query = `
		SELECT b.id, b.title, b.author, b.description, b.genre, b.published_year,
		       b.google_volume_id, b.thumbnail, b.created_at, b.updated_at
		FROM books b
		JOIN favorites f ON f.book_id = b.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	var list []books.Book
	if err := r.db.SelectContext(ctx, &list, query, userID); err != nil {
		return nil, err
	}
	return list, nil
}

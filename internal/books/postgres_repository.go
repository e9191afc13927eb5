package books

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const bookColumns = `id, title, author, description, genre, published_year, google_volume_id, thumbnail, created_at, updated_at`

// Create inserts a new book.
func (r *PostgresRepository) Create(ctx context.Context, book Book) (Book, error) {
	const query = `
		INSERT INTO books (id, title, author, description, genre, published_year, google_volume_id, thumbnail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.Genre,
		book.PublishedYear,
		book.GoogleVolumeID,
		book.Thumbnail,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// Get returns a book by id.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	var book Book
	err := r.db.GetContext(ctx, &book, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// GetByGoogleVolumeID returns a book by its Google Books volume id.
func (r *PostgresRepository) GetByGoogleVolumeID(ctx context.Context, volumeID string) (Book, error) {
	var book Book
	err := r.db.GetContext(ctx, &book, `SELECT `+bookColumns+` FROM books WHERE google_volume_id = $1`, volumeID)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, err
	}
	return book, nil
}

// List returns all books, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Book, error) {
	var list []Book
	if err := r.db.SelectContext(ctx, &list, `SELECT `+bookColumns+` FROM books ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return list, nil
}

// Update replaces an existing book.
func (r *PostgresRepository) Update(ctx context.Context, book Book) (Book, error) {
	const query = `
		UPDATE books
		SET title = $2, author = $3, description = $4, genre = $5, published_year = $6,
		    google_volume_id = $7, thumbnail = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.Description,
		book.Genre,
		book.PublishedYear,
		book.GoogleVolumeID,
		book.Thumbnail,
		book.UpdatedAt,
	)
	if err != nil {
		return Book{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Book{}, err
	}
	if affected == 0 {
		return Book{}, ErrNotFound
	}
	return book, nil
}

// Delete removes a book by id.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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

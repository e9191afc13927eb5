package reviews

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

const reviewColumns = `id, book_id, user_id, title, body, story_rating, style_rating, character_rating, overall_rating, recommended, created_at, updated_at`

// Create inserts a new review.
func (r *PostgresRepository) Create(ctx context.Context, review Review) (Review, error) {
	const query = `
		INSERT INTO reviews (id, book_id, user_id, title, body, story_rating, style_rating, character_rating, overall_rating, recommended, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.BookID,
		review.UserID,
		review.Title,
		review.Body,
		review.StoryRating,
		review.StyleRating,
		review.CharacterRating,
		review.OverallRating,
		review.Recommended,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

// Get returns a review by id.
func (r *PostgresRepository) Get(ctx context.Context, id uuid.UUID) (Review, error) {
	var review Review
	err := r.db.GetContext(ctx, &review, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	if err != nil {
		return Review{}, err
	}
	return review, nil
}

// List returns all reviews, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Review, error) {
	var list []Review
	if err := r.db.SelectContext(ctx, &list, `SELECT `+reviewColumns+` FROM reviews ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByBook returns all reviews for a book, newest first.
func (r *PostgresRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]Review, error) {
	var list []Review
	if err := r.db.SelectContext(ctx, &list, `SELECT `+reviewColumns+` FROM reviews WHERE book_id = $1 ORDER BY created_at DESC`, bookID); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByUser returns all reviews written by a user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	var list []Review
	if err := r.db.SelectContext(ctx, &list, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY created_at DESC`, userID); err != nil {
		return nil, err
	}
	return list, nil
}

// Update replaces an existing review.
func (r *PostgresRepository) Update(ctx context.Context, review Review) (Review, error) {
	const query = `
		UPDATE reviews
		SET title = $2, body = $3, story_rating = $4, style_rating = $5, character_rating = $6,
		    overall_rating = $7, recommended = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.Title,
		review.Body,
		review.StoryRating,
		review.StyleRating,
		review.CharacterRating,
		review.OverallRating,
		review.Recommended,
		review.UpdatedAt,
	)
	if err != nil {
		return Review{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return Review{}, err
	}
	if affected == 0 {
		return Review{}, ErrNotFound
	}
	return review, nil
}

// Delete removes a review by id.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
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

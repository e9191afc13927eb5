package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a review cannot be located.
var ErrNotFound = errors.New("review not found")

// ErrValidation is returned when input validation fails.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when a user tries to modify someone else's review.
var ErrForbidden = errors.New("not the review owner")

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

// Review is a multi-dimensional book review. OverallRating is derived from
// the three dimension ratings and recomputed whenever any of them changes.
type Review struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BookID          uuid.UUID `db:"book_id" json:"bookId"`
	UserID          uuid.UUID `db:"user_id" json:"userId"`
	Title           string    `db:"title" json:"title"`
	Body            string    `db:"body" json:"body"`
	StoryRating     int       `db:"story_rating" json:"storyRating"`
	StyleRating     int       `db:"style_rating" json:"styleRating"`
	CharacterRating int       `db:"character_rating" json:"characterRating"`
	OverallRating   float64   `db:"overall_rating" json:"overallRating"`
	Recommended     bool      `db:"recommended" json:"recommended"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateReviewInput captures the data needed to create a new Review.
type CreateReviewInput struct {
	BookID          uuid.UUID
	Title           string
	Body            string
	StoryRating     int
	StyleRating     int
	CharacterRating int
	Recommended     bool
}

// UpdateReviewInput captures the editable fields for an existing review.
type UpdateReviewInput struct {
	Title           *string
	Body            *string
	StoryRating     *int
	StyleRating     *int
	CharacterRating *int
	Recommended     *bool
}

// Repository defines review persistence. Lookups that miss return ErrNotFound.
type Repository interface {
	Create(ctx context.Context, review Review) (Review, error)
	Get(ctx context.Context, id uuid.UUID) (Review, error)
	List(ctx context.Context) ([]Review, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
	Update(ctx context.Context, review Review) (Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

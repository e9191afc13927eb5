package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bookreview/internal/books"
	"bookreview/internal/moderation"
)

// Service provides review business logic: rating aggregation, text
// moderation, and ownership enforcement.
type Service struct {
	repo     Repository
	bookSvc  *books.Service
	moderate *moderation.Filter
}

// NewService creates a review Service.
func NewService(repo Repository, bookSvc *books.Service, moderate *moderation.Filter) *Service {
	return &Service{repo: repo, bookSvc: bookSvc, moderate: moderate}
}

// overallRating derives the aggregate from the three dimension ratings.
func overallRating(story, style, character int) float64 {
	return float64(story+style+character) / 3.0
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

// Create validates, moderates and stores a new review for an existing book.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateReviewInput) (Review, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)

	if title == "" {
		return Review{}, &ValidationError{Message: "review title is required"}
	}
	if body == "" {
		return Review{}, &ValidationError{Message: "review body is required"}
	}
	if !validRating(input.StoryRating) || !validRating(input.StyleRating) || !validRating(input.CharacterRating) {
		return Review{}, &ValidationError{Message: "ratings must be between 1 and 5"}
	}

	if _, err := s.bookSvc.Get(ctx, input.BookID); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			return Review{}, &ValidationError{Message: "book does not exist"}
		}
		return Review{}, fmt.Errorf("check book: %w", err)
	}

	now := time.Now()
	review := Review{
		ID:              uuid.New(),
		BookID:          input.BookID,
		UserID:          userID,
		Title:           title,
		Body:            s.moderate.Clean(body),
		StoryRating:     input.StoryRating,
		StyleRating:     input.StyleRating,
		CharacterRating: input.CharacterRating,
		OverallRating:   overallRating(input.StoryRating, input.StyleRating, input.CharacterRating),
		Recommended:     input.Recommended,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}
	return created, nil
}

// Get returns a review by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Review, error) {
	return s.repo.Get(ctx, id)
}

// List returns all reviews.
func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.repo.List(ctx)
}

// ListByBook returns all reviews for a book. A book with no reviews yields an
// empty slice, not an error.
func (s *Service) ListByBook(ctx context.Context, bookID uuid.UUID) ([]Review, error) {
	list, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Review{}
	}
	return list, nil
}

// ListByUser returns all reviews written by a user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Review, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Review{}
	}
	return list, nil
}

// Update applies a partial update to the caller's own review. The overall
// rating is recomputed when any dimension changes.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateReviewInput) (Review, error) {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return Review{}, err
	}
	if review.UserID != userID {
		return Review{}, ErrForbidden
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return Review{}, &ValidationError{Message: "review title is required"}
		}
		review.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		if strings.TrimSpace(*input.Body) == "" {
			return Review{}, &ValidationError{Message: "review body is required"}
		}
		review.Body = s.moderate.Clean(strings.TrimSpace(*input.Body))
	}

	ratingsChanged := false
	if input.StoryRating != nil {
		if !validRating(*input.StoryRating) {
			return Review{}, &ValidationError{Message: "ratings must be between 1 and 5"}
		}
		review.StoryRating = *input.StoryRating
		ratingsChanged = true
	}
	if input.StyleRating != nil {
		if !validRating(*input.StyleRating) {
			return Review{}, &ValidationError{Message: "ratings must be between 1 and 5"}
		}
		review.StyleRating = *input.StyleRating
		ratingsChanged = true
	}
	if input.CharacterRating != nil {
		if !validRating(*input.CharacterRating) {
			return Review{}, &ValidationError{Message: "ratings must be between 1 and 5"}
		}
		review.CharacterRating = *input.CharacterRating
		ratingsChanged = true
	}
	if input.Recommended != nil {
		review.Recommended = *input.Recommended
	}

	if ratingsChanged {
		review.OverallRating = overallRating(review.StoryRating, review.StyleRating, review.CharacterRating)
	}
	review.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, review)
	if err != nil {
		return Review{}, fmt.Errorf("update review: %w", err)
	}
	return updated, nil
}

// Delete removes the caller's own review.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	review, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

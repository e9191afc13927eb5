package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreview/internal/books"
)

// Service provides favorite business logic.
type Service struct {
	repo    Repository
	bookSvc *books.Service
}

// NewService creates a favorites Service.
func NewService(repo Repository, bookSvc *books.Service) *Service {
	return &Service{repo: repo, bookSvc: bookSvc}
}

// Add marks a book as a favorite of the user. Favoriting the same book twice
// fails with ErrDuplicate.
func (s *Service) Add(ctx context.Context, userID, bookID uuid.UUID) error {
	if _, err := s.bookSvc.Get(ctx, bookID); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			return books.ErrNotFound
		}
		return fmt.Errorf("check book: %w", err)
	}

	favorite := Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		BookID:    bookID,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Add(ctx, favorite); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Remove unfavorites a book.
func (s *Service) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, bookID)
}

// IsFavorite reports whether the user has favorited the book.
func (s *Service) IsFavorite(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, bookID)
}

// ListBooks returns the user's favorite books. No favorites yields an empty
// slice, not an error.
func (s *Service) ListBooks(ctx context.Context, userID uuid.UUID) ([]books.Book, error) {
	list, err := s.repo.ListBooks(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []books.Book{}
	}
	return list, nil
}

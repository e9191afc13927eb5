package books

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides book business logic over a Repository.
type Service struct {
	repo Repository
}

// NewService creates a book Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new book.
func (s *Service) Create(ctx context.Context, input CreateBookInput) (Book, error) {
	title := strings.TrimSpace(input.Title)
	author := strings.TrimSpace(input.Author)

	if title == "" {
		return Book{}, &ValidationError{Message: "title is required"}
	}
	if author == "" {
		return Book{}, &ValidationError{Message: "author is required"}
	}
	if input.PublishedYear != nil && (*input.PublishedYear < 0 || *input.PublishedYear > time.Now().Year()+1) {
		return Book{}, &ValidationError{Message: "published year is out of range"}
	}

	now := time.Now()
	book := Book{
		ID:             uuid.New(),
		Title:          title,
		Author:         author,
		Description:    strings.TrimSpace(input.Description),
		Genre:          strings.TrimSpace(input.Genre),
		PublishedYear:  input.PublishedYear,
		GoogleVolumeID: strings.TrimSpace(input.GoogleVolumeID),
		Thumbnail:      strings.TrimSpace(input.Thumbnail),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return Book{}, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

// Get returns a book by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Book, error) {
	return s.repo.Get(ctx, id)
}

// GetByGoogleVolumeID returns the book imported from the given Google Books volume.
func (s *Service) GetByGoogleVolumeID(ctx context.Context, volumeID string) (Book, error) {
	volumeID = strings.TrimSpace(volumeID)
	if volumeID == "" {
		return Book{}, &ValidationError{Message: "volume id is required"}
	}
	return s.repo.GetByGoogleVolumeID(ctx, volumeID)
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to an existing book.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateBookInput) (Book, error) {
	book, err := s.repo.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return Book{}, &ValidationError{Message: "title is required"}
		}
		book.Title = strings.TrimSpace(*input.Title)
	}
	if input.Author != nil {
		if strings.TrimSpace(*input.Author) == "" {
			return Book{}, &ValidationError{Message: "author is required"}
		}
		book.Author = strings.TrimSpace(*input.Author)
	}
	if input.Description != nil {
		book.Description = strings.TrimSpace(*input.Description)
	}
	if input.Genre != nil {
		book.Genre = strings.TrimSpace(*input.Genre)
	}
	if input.PublishedYear != nil {
		if year := *input.PublishedYear; year != nil && (*year < 0 || *year > time.Now().Year()+1) {
			return Book{}, &ValidationError{Message: "published year is out of range"}
		}
		book.PublishedYear = *input.PublishedYear
	}
	if input.GoogleVolumeID != nil {
		book.GoogleVolumeID = strings.TrimSpace(*input.GoogleVolumeID)
	}
	if input.Thumbnail != nil {
		book.Thumbnail = strings.TrimSpace(*input.Thumbnail)
	}
	book.UpdatedAt = time.Now()

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	return updated, nil
}

// Delete removes a book.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

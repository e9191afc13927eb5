package reviews

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository stores reviews in an in-process map, ideal for local development or tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	data  map[uuid.UUID]Review
	order []uuid.UUID
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[uuid.UUID]Review)}
}

// Create stores a new review.
func (r *InMemoryRepository) Create(_ context.Context, review Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[review.ID] = review
	r.order = append(r.order, review.ID)
	return review, nil
}

// Get returns a review by ID.
func (r *InMemoryRepository) Get(_ context.Context, id uuid.UUID) (Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.data[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return review, nil
}

// List returns all stored reviews.
func (r *InMemoryRepository) List(_ context.Context) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Review, 0, len(r.order))
	for _, id := range r.order {
		if review, ok := r.data[id]; ok {
			list = append(list, review)
		}
	}
	return list, nil
}

// ListByBook returns all reviews for a book.
func (r *InMemoryRepository) ListByBook(_ context.Context, bookID uuid.UUID) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []Review
	for _, id := range r.order {
		if review, ok := r.data[id]; ok && review.BookID == bookID {
			list = append(list, review)
		}
	}
	return list, nil
}

// ListByUser returns all reviews written by a user.
func (r *InMemoryRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []Review
	for _, id := range r.order {
		if review, ok := r.data[id]; ok && review.UserID == userID {
			list = append(list, review)
		}
	}
	return list, nil
}

// Update replaces an existing review.
func (r *InMemoryRepository) Update(_ context.Context, review Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[review.ID]; !ok {
		return Review{}, ErrNotFound
	}
	r.data[review.ID] = review
	return review, nil
}

// Delete removes a review by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

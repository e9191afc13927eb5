package books

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepository stores books in an in-process map, ideal for local development or tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	data  map[uuid.UUID]Book
	order []uuid.UUID
}

// NewInMemoryRepository constructs a repository seeded with optional initial books.
func NewInMemoryRepository(initial []Book) *InMemoryRepository {
	data := make(map[uuid.UUID]Book)
	order := make([]uuid.UUID, 0, len(initial))
	for _, book := range initial {
		data[book.ID] = book
		order = append(order, book.ID)
	}
	return &InMemoryRepository{data: data, order: order}
}

// Create stores a new book.
func (r *InMemoryRepository) Create(_ context.Context, book Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[book.ID] = book
	r.order = append(r.order, book.ID)
	return book, nil
}

// Get returns a book by ID.
func (r *InMemoryRepository) Get(_ context.Context, id uuid.UUID) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, ok := r.data[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return book, nil
}

// GetByGoogleVolumeID returns a book by its Google Books volume id.
func (r *InMemoryRepository) GetByGoogleVolumeID(_ context.Context, volumeID string) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if book, ok := r.data[id]; ok && book.GoogleVolumeID == volumeID {
			return book, nil
		}
	}
	return Book{}, ErrNotFound
}

// List returns all stored books.
func (r *InMemoryRepository) List(_ context.Context) ([]Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		if book, ok := r.data[id]; ok {
			list = append(list, book)
		}
	}
	return list, nil
}

// Update replaces an existing book.
func (r *InMemoryRepository) Update(_ context.Context, book Book) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[book.ID]; !ok {
		return Book{}, ErrNotFound
	}
	r.data[book.ID] = book
	return book, nil
}

// Delete removes a book by ID.
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

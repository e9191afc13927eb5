package favorites

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"bookreview/internal/books"
)

// InMemoryRepository stores favorites in memory, backed by a book repository
// for the join in ListBooks. Ideal for local development or tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	data     map[uuid.UUID]Favorite
	bookRepo *books.InMemoryRepository
}

// NewInMemoryRepository constructs an empty repository over the given book store.
func NewInMemoryRepository(bookRepo *books.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		data:     make(map[uuid.UUID]Favorite),
		bookRepo: bookRepo,
	}
}

// Add stores a favorite, enforcing (user, book) uniqueness.
func (r *InMemoryRepository) Add(_ context.Context, favorite Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.data {
		if existing.UserID == favorite.UserID && existing.BookID == favorite.BookID {
			return ErrDuplicate
		}
	}
	r.data[favorite.ID] = favorite
	return nil
}

// Remove deletes a favorite.
func (r *InMemoryRepository) Remove(_ context.Context, userID, bookID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.data {
		if existing.UserID == userID && existing.BookID == bookID {
			delete(r.data, id)
			return nil
		}
	}
	return ErrNotFound
}

// Exists reports whether the user has favorited the book.
func (r *InMemoryRepository) Exists(_ context.Context, userID, bookID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.data {
		if existing.UserID == userID && existing.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

// ListBooks returns the user's favorite books, most recently favorited first.
func (r *InMemoryRepository) ListBooks(ctx context.Context, userID uuid.UUID) ([]books.Book, error) {
	r.mu.RLock()
	var own []Favorite
	for _, existing := range r.data {
		if existing.UserID == userID {
			own = append(own, existing)
		}
	}
	r.mu.RUnlock()

	sort.Slice(own, func(i, j int) bool { return own[i].CreatedAt.After(own[j].CreatedAt) })

	var list []books.Book
	for _, favorite := range own {
		book, err := r.bookRepo.Get(ctx, favorite.BookID)
		if err != nil {
			continue
		}
		list = append(list, book)
	}
	return list, nil
}

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository stores users in an in-process map, ideal for local
// development or tests. It enforces the same uniqueness rules as the
// Postgres schema: email, username, and external id (when set).
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[uuid.UUID]User)}
}

// FindByID returns a user by id, or nil on a miss.
func (r *InMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user, ok := r.users[id]; ok {
		copied := user
		return &copied, nil
	}
	return nil, nil
}

// FindByEmail returns a user by email, or nil on a miss.
func (r *InMemoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findBy(func(u User) bool { return u.Email == email }), nil
}

// FindByUsername returns a user by username, or nil on a miss.
func (r *InMemoryRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findBy(func(u User) bool { return u.Username == username }), nil
}

// FindByExternalID returns a user by external id, or nil on a miss.
func (r *InMemoryRepository) FindByExternalID(_ context.Context, externalID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findBy(func(u User) bool { return u.ExternalID != nil && *u.ExternalID == externalID }), nil
}

func (r *InMemoryRepository) findBy(match func(User) bool) *User {
	for _, user := range r.users {
		if match(user) {
			copied := user
			return &copied
		}
	}
	return nil
}

// Create stores a new user, enforcing uniqueness of email, username and external id.
func (r *InMemoryRepository) Create(_ context.Context, user User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return User{}, err
	}

	r.users[user.ID] = user
	return user, nil
}

// Update replaces an existing user record.
func (r *InMemoryRepository) Update(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

// RecordLogin updates the last login time and refreshes profile data.
func (r *InMemoryRepository) RecordLogin(_ context.Context, id uuid.UUID, name, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}

	now := time.Now()
	user.Name = name
	user.AvatarURL = avatarURL
	user.LastLoginAt = now
	user.UpdatedAt = now
	r.users[id] = user
	return nil
}

func (r *InMemoryRepository) checkUnique(candidate User) error {
	for _, existing := range r.users {
		if existing.ID == candidate.ID {
			continue
		}
		if existing.Email == candidate.Email {
			return fmt.Errorf("users_email_key: %w", ErrConflict)
		}
		if existing.Username == candidate.Username {
			return fmt.Errorf("users_username_key: %w", ErrConflict)
		}
		if existing.ExternalID != nil && candidate.ExternalID != nil && *existing.ExternalID == *candidate.ExternalID {
			return fmt.Errorf("users_external_id_key: %w", ErrConflict)
		}
	}
	return nil
}

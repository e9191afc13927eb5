package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExternalValidator validates a raw third-party token and returns the
// identity assertion it carries. Implemented by GoogleAuthenticator.
type ExternalValidator interface {
	ValidateIDToken(ctx context.Context, rawToken string) (*ExternalAssertion, error)
}

// Service orchestrates registration, local login, external login and session
// verification over the credential store.
type Service struct {
	repo     Repository
	hasher   *PasswordHasher
	tokens   *TokenManager
	external ExternalValidator
}

// NewService creates a new auth Service. The external validator may be nil
// when Google login is not configured.
func NewService(repo Repository, hasher *PasswordHasher, tokens *TokenManager, external ExternalValidator) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		external: external,
	}
}

// Register creates a local-password account. The duplicate pre-checks are an
// optimization for the common case; the store's unique constraints decide the
// race when two identical registrations arrive concurrently.
func (s *Service) Register(ctx context.Context, email, username, password string) (*User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	if existing, err := s.repo.FindByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicate
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err != nil {
		return nil, fmt.Errorf("find by username: %w", err)
	} else if existing != nil {
		return nil, ErrDuplicate
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: &hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastLoginAt:  now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &created, nil
}

// Login verifies local credentials and mints a session token. Every failure
// mode collapses into ErrInvalidCredentials so responses never reveal whether
// the email exists.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, fmt.Errorf("find by email: %w", err)
	}

	if user == nil || !user.IsActive || !user.HasPassword() || !s.hasher.Verify(password, *user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if err := s.repo.RecordLogin(ctx, user.ID, user.Name, user.AvatarURL); err != nil {
		return "", nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Reconcile resolves a validated external assertion to exactly one local user.
// The lookup order is the correctness property: external id first, then email
// (linking the external identity to an account that registered locally), and
// only then creation of a fresh account. Deactivated accounts are rejected on
// every resolution path.
func (s *Service) Reconcile(ctx context.Context, assertion *ExternalAssertion) (*User, error) {
	existing, err := s.repo.FindByExternalID(ctx, assertion.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("find by external id: %w", err)
	}
	if existing != nil {
		if !existing.IsActive {
			return nil, ErrInvalidCredentials
		}
		if err := s.repo.RecordLogin(ctx, existing.ID, assertion.Name, assertion.Picture); err != nil {
			return nil, fmt.Errorf("record login: %w", err)
		}
		existing.Name = assertion.Name
		existing.AvatarURL = assertion.Picture
		existing.LastLoginAt = time.Now()
		return existing, nil
	}

	byEmail, err := s.repo.FindByEmail(ctx, normalizeEmail(assertion.Email))
	if err != nil {
		return nil, fmt.Errorf("find by email: %w", err)
	}
	if byEmail != nil {
		if !byEmail.IsActive {
			return nil, ErrInvalidCredentials
		}
		// Link the external identity to the account that registered locally,
		// instead of creating a second account for the same person.
		externalID := assertion.ExternalID
		byEmail.ExternalID = &externalID
		if byEmail.Name == "" {
			byEmail.Name = assertion.Name
		}
		if byEmail.AvatarURL == "" {
			byEmail.AvatarURL = assertion.Picture
		}
		if err := s.repo.Update(ctx, *byEmail); err != nil {
			if errors.Is(err, ErrConflict) {
				return nil, err
			}
			return nil, fmt.Errorf("link external identity: %w", err)
		}
		return byEmail, nil
	}

	now := time.Now()
	externalID := assertion.ExternalID
	user := User{
		ID:          uuid.New(),
		Email:       normalizeEmail(assertion.Email),
		Username:    usernameFromEmail(assertion.Email),
		IsActive:    true,
		ExternalID:  &externalID,
		Name:        assertion.Name,
		AvatarURL:   assertion.Picture,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastLoginAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// LoginExternal validates a raw provider token, reconciles the identity, and
// mints a session token for the resolved user.
func (s *Service) LoginExternal(ctx context.Context, rawToken string) (string, *User, error) {
	if s.external == nil {
		return "", nil, ErrExternalAuth
	}

	assertion, err := s.external.ValidateIDToken(ctx, rawToken)
	if err != nil {
		return "", nil, err
	}

	return s.ReconcileAndIssue(ctx, assertion)
}

// ReconcileAndIssue resolves an already-validated assertion and mints a
// session token for the resulting user. Used by the server-side code flow,
// where the provider token was validated during the code exchange.
func (s *Service) ReconcileAndIssue(ctx context.Context, assertion *ExternalAssertion) (string, *User, error) {
	user, err := s.Reconcile(ctx, assertion)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifySession resolves a bearer token to a user. The token may be either a
// provider-issued ID token or one of our own session tokens; the external
// branch is tried first and the local branch is the fallback, each failing
// with its own typed error before falling through.
func (s *Service) VerifySession(ctx context.Context, rawToken string) (*User, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	if s.external != nil {
		if assertion, err := s.external.ValidateIDToken(ctx, rawToken); err == nil {
			user, err := s.Reconcile(ctx, assertion)
			if errors.Is(err, ErrInvalidCredentials) {
				return nil, ErrInvalidToken
			}
			return user, err
		}
	}

	subject, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find by id: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}

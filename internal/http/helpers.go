package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookreview/internal/auth"
	"bookreview/internal/books"
	"bookreview/internal/favorites"
	"bookreview/internal/reviews"
)

const maxJSONBodyBytes int64 = 1 << 20

var errPayloadTooLarge = errors.New("payload too large")

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	limited := http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	defer func() {
		_ = limited.Close()
	}()

	decoder := json.NewDecoder(limited)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w (max %d bytes)", errPayloadTooLarge, maxErr.Limit)
		}
		return err
	}
	return nil
}

func writeJSONError(w http.ResponseWriter, err error) {
	if errors.Is(err, errPayloadTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}
	// Return generic message to avoid leaking internal JSON parsing details
	writeError(w, http.StatusBadRequest, "invalid request body")
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	value := chi.URLParam(r, key)
	id, err := uuid.Parse(value)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps domain errors onto HTTP status codes. Unrecognized
// errors are logged and reported as an opaque 500.
func handleServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	case errors.Is(err, auth.ErrExternalAuth):
		writeError(w, http.StatusUnauthorized, auth.ErrExternalAuth.Error())
	case errors.Is(err, auth.ErrDuplicate):
		writeError(w, http.StatusConflict, auth.ErrDuplicate.Error())
	case errors.Is(err, auth.ErrConflict), errors.Is(err, favorites.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrNotFound), errors.Is(err, books.ErrNotFound),
		errors.Is(err, reviews.ErrNotFound), errors.Is(err, favorites.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, reviews.ErrForbidden):
		writeError(w, http.StatusForbidden, reviews.ErrForbidden.Error())
	case errors.Is(err, auth.ErrValidation), errors.Is(err, books.ErrValidation),
		errors.Is(err, reviews.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("service error", "error", err)
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}

// userResponse is the wire shape of a user. The password hash never leaves
// the server.
type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Name        string    `json:"name,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

func toUserResponse(user *auth.User) userResponse {
	return userResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

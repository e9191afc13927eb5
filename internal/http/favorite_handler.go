package http

import (
	"net/http"

	"log/slog"

	"bookreview/internal/favorites"
)

// FavoriteHandler exposes favorite endpoints. The acting user always comes
// from the verified session, never from the request body.
type FavoriteHandler struct {
	service *favorites.Service
	logger  *slog.Logger
}

// NewFavoriteHandler creates a handler.
func NewFavoriteHandler(service *favorites.Service, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: service, logger: logger}
}

// Add marks a book as one of the authenticated user's favorites.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	bookID, ok := parseUUIDParam(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.service.Add(r.Context(), user.ID, bookID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Remove unfavorites a book.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	bookID, ok := parseUUIDParam(w, r, "bookID")
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), user.ID, bookID); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Status reports whether the authenticated user has favorited the book.
func (h *FavoriteHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	bookID, ok := parseUUIDParam(w, r, "bookID")
	if !ok {
		return
	}

	isFavorite, err := h.service.IsFavorite(r.Context(), user.ID, bookID)
	if err != nil {
		h.logger.Error("favorite status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check favorite")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isFavorite": isFavorite})
}

// List returns the authenticated user's favorite books.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	list, err := h.service.ListBooks(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("list favorites", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list favorites")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"books": list})
}

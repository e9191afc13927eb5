package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"bookreview/internal/cache"
	"bookreview/internal/exporter"
	"bookreview/internal/metrics"
	"bookreview/internal/reviews"
)

// ReviewHandler exposes review CRUD and export endpoints.
type ReviewHandler struct {
	service   *reviews.Service
	exporter  *exporter.CSVExporter
	cache     *cache.Cache
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewReviewHandler creates a handler.
func NewReviewHandler(service *reviews.Service, csvExporter *exporter.CSVExporter, responseCache *cache.Cache, collector *metrics.Collector, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, exporter: csvExporter, cache: responseCache, collector: collector, logger: logger}
}

// invalidateSummary drops the cached AI summary for a book whose review set
// changed, so the next summary request reflects the mutation.
func (h *ReviewHandler) invalidateSummary(bookID uuid.UUID) {
	if h.cache != nil {
		h.cache.Delete(cache.Key("ai-summary", bookID.String()))
	}
}

// List returns all reviews.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}
	if list == nil {
		list = []reviews.Review{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reviews": list})
}

// Create stores a new review for the authenticated user.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	var payload struct {
		BookID          uuid.UUID `json:"bookId"`
		Title           string    `json:"title"`
		Body            string    `json:"body"`
		StoryRating     int       `json:"storyRating"`
		StyleRating     int       `json:"styleRating"`
		CharacterRating int       `json:"characterRating"`
		Recommended     bool      `json:"recommended"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	review, err := h.service.Create(r.Context(), user.ID, reviews.CreateReviewInput{
		BookID:          payload.BookID,
		Title:           payload.Title,
		Body:            payload.Body,
		StoryRating:     payload.StoryRating,
		StyleRating:     payload.StyleRating,
		CharacterRating: payload.CharacterRating,
		Recommended:     payload.Recommended,
	})
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	if h.collector != nil {
		h.collector.RecordReviewPosted()
	}
	h.invalidateSummary(review.BookID)
	writeJSON(w, http.StatusCreated, review)
}

// Get returns a single review.
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// Update modifies the authenticated user's own review.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	raw := map[string]json.RawMessage{}
	if err := decodeJSONBody(w, r, &raw); err != nil {
		writeJSONError(w, err)
		return
	}

	var payload struct {
		Title           *string `json:"title"`
		Body            *string `json:"body"`
		StoryRating     *int    `json:"storyRating"`
		StyleRating     *int    `json:"styleRating"`
		CharacterRating *int    `json:"characterRating"`
		Recommended     *bool   `json:"recommended"`
	}

	if err := decodeInto(raw, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := reviews.UpdateReviewInput{}
	if _, ok := raw["title"]; ok {
		input.Title = payload.Title
	}
	if _, ok := raw["body"]; ok {
		input.Body = payload.Body
	}
	if _, ok := raw["storyRating"]; ok {
		input.StoryRating = payload.StoryRating
	}
	if _, ok := raw["styleRating"]; ok {
		input.StyleRating = payload.StyleRating
	}
	if _, ok := raw["characterRating"]; ok {
		input.CharacterRating = payload.CharacterRating
	}
	if _, ok := raw["recommended"]; ok {
		input.Recommended = payload.Recommended
	}

	review, err := h.service.Update(r.Context(), user.ID, id, input)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	h.invalidateSummary(review.BookID)
	writeJSON(w, http.StatusOK, review)
}

// Delete removes the authenticated user's own review.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	// The review is gone after Delete, so capture its book first to drop
	// the book's cached summary.
	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, id); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	h.invalidateSummary(review.BookID)
	w.WriteHeader(http.StatusNoContent)
}

// ExportCSV streams the authenticated user's reviews as a CSV download.
func (h *ReviewHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		unauthorized(w)
		return
	}

	list, err := h.service.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("export reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export reviews")
		return
	}

	filename := fmt.Sprintf("reviews-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exporter.Export(w, list); err != nil {
		h.logger.Error("write review export", "error", err)
	}
}

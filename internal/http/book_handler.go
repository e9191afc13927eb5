package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"bookreview/internal/books"
	"bookreview/internal/cache"
	"bookreview/internal/lookup"
	"bookreview/internal/metrics"
	"bookreview/internal/reviews"
	"bookreview/internal/summary"
)

const aiSummaryTTL = time.Hour

// BookHandler exposes book CRUD, metadata lookup and review summarization.
type BookHandler struct {
	service    *books.Service
	reviewSvc  *reviews.Service
	lookupSvc  *lookup.Service
	summarizer *summary.Summarizer
	cache      *cache.Cache
	collector  *metrics.Collector
	logger     *slog.Logger
}

// NewBookHandler creates a handler. The lookup service may be nil when the
// Google Books integration is not configured.
func NewBookHandler(service *books.Service, reviewSvc *reviews.Service, lookupSvc *lookup.Service, summarizer *summary.Summarizer, responseCache *cache.Cache, collector *metrics.Collector, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		service:    service,
		reviewSvc:  reviewSvc,
		lookupSvc:  lookupSvc,
		summarizer: summarizer,
		cache:      responseCache,
		collector:  collector,
		logger:     logger,
	}
}

// invalidateSummary drops a book's cached AI summary after a mutation.
func (h *BookHandler) invalidateSummary(id uuid.UUID) {
	if h.cache != nil {
		h.cache.Delete(cache.Key("ai-summary", id.String()))
	}
}

// List returns all books.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list books", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list books")
		return
	}
	if list == nil {
		list = []books.Book{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": list})
}

// Create stores a new book.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title          string `json:"title"`
		Author         string `json:"author"`
		Description    string `json:"description"`
		Genre          string `json:"genre"`
		PublishedYear  *int   `json:"publishedYear"`
		GoogleVolumeID string `json:"googleVolumeId"`
		Thumbnail      string `json:"thumbnail"`
	}

	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONError(w, err)
		return
	}

	book, err := h.service.Create(r.Context(), books.CreateBookInput{
		Title:          payload.Title,
		Author:         payload.Author,
		Description:    payload.Description,
		Genre:          payload.Genre,
		PublishedYear:  payload.PublishedYear,
		GoogleVolumeID: payload.GoogleVolumeID,
		Thumbnail:      payload.Thumbnail,
	})
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, book)
}

// Get returns a single book.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// GetByGoogleVolume returns the book imported from a Google Books volume.
func (h *BookHandler) GetByGoogleVolume(w http.ResponseWriter, r *http.Request) {
	volumeID := chi.URLParam(r, "volumeID")

	book, err := h.service.GetByGoogleVolumeID(r.Context(), volumeID)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, book)
}

// Update modifies a book.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
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
		Title          *string `json:"title"`
		Author         *string `json:"author"`
		Description    *string `json:"description"`
		Genre          *string `json:"genre"`
		PublishedYear  *int    `json:"publishedYear"`
		GoogleVolumeID *string `json:"googleVolumeId"`
		Thumbnail      *string `json:"thumbnail"`
	}

	if err := decodeInto(raw, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := books.UpdateBookInput{}
	if _, ok := raw["title"]; ok {
		input.Title = payload.Title
	}
	if _, ok := raw["author"]; ok {
		input.Author = payload.Author
	}
	if _, ok := raw["description"]; ok {
		input.Description = payload.Description
	}
	if _, ok := raw["genre"]; ok {
		input.Genre = payload.Genre
	}
	if _, ok := raw["publishedYear"]; ok {
		value := payload.PublishedYear
		input.PublishedYear = &value
	}
	if _, ok := raw["googleVolumeId"]; ok {
		input.GoogleVolumeID = payload.GoogleVolumeID
	}
	if _, ok := raw["thumbnail"]; ok {
		input.Thumbnail = payload.Thumbnail
	}

	book, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	h.invalidateSummary(id)
	writeJSON(w, http.StatusOK, book)
}

// Delete removes a book.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	h.invalidateSummary(id)
	w.WriteHeader(http.StatusNoContent)
}

// ListReviews returns all reviews for a book.
func (h *BookHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if _, err := h.service.Get(r.Context(), id); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	list, err := h.reviewSvc.ListByBook(r.Context(), id)
	if err != nil {
		h.logger.Error("list book reviews", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reviews": list})
}

// Lookup searches the Google Books API for metadata matching a query.
func (h *BookHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if h.lookupSvc == nil {
		writeError(w, http.StatusNotImplemented, "metadata lookup is not available")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	metadata, err := h.lookupSvc.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, lookup.ErrInvalidQuery):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, lookup.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("metadata lookup", "error", err)
			writeError(w, http.StatusBadGateway, "metadata lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, metadata)
}

type aiSummaryResponse struct {
	BookID      string `json:"bookId"`
	Summary     string `json:"summary"`
	ReviewCount int    `json:"reviewCount"`
}

// AISummary returns an extractive summary of a book's reviews. Responses are
// book-scoped, never user-scoped, so they are safe to cache.
func (h *BookHandler) AISummary(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	key := cache.Key("ai-summary", id.String())
	if h.cache != nil {
		if cached, ok := h.cache.Get(key); ok {
			if h.collector != nil {
				h.collector.RecordCacheHit()
			}
			writeJSON(w, http.StatusOK, cached)
			return
		}
		if h.collector != nil {
			h.collector.RecordCacheMiss()
		}
	}

	book, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	list, err := h.reviewSvc.ListByBook(r.Context(), id)
	if err != nil {
		h.logger.Error("list reviews for summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to summarize reviews")
		return
	}

	texts := make([]string, 0, len(list)+1)
	for _, review := range list {
		texts = append(texts, review.Body)
	}
	if len(texts) == 0 && book.Description != "" {
		texts = append(texts, book.Description)
	}

	response := aiSummaryResponse{
		BookID:      id.String(),
		Summary:     h.summarizer.Summarize(texts),
		ReviewCount: len(list),
	}

	if h.cache != nil {
		h.cache.Set(key, response, aiSummaryTTL)
	}
	writeJSON(w, http.StatusOK, response)
}

func decodeInto(raw map[string]json.RawMessage, payload any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, payload)
}

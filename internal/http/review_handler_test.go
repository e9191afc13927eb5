package http

import (
	"math"
	"net/http"
	"strings"
	"testing"
)

func TestReviewLifecycle(t *testing.T) {
	router := newTestRouter(t)
	owner := registerAndLogin(t, router, "owner@test.com", "owner", "secret123")
	other := registerAndLogin(t, router, "other@test.com", "other", "secret123")
	bookID := createBook(t, router, owner, "Dune")

	rec := doJSON(t, router, "POST", "/api/v1/reviews", owner, map[string]any{
		"bookId":          bookID,
		"title":           "A rotten start, a great finish",
		"body":            "The opening act is rotten but it recovers.",
		"storyRating":     4,
		"styleRating":     3,
		"characterRating": 5,
		"recommended":     true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID            string  `json:"id"`
		Body          string  `json:"body"`
		OverallRating float64 `json:"overallRating"`
	}
	decodeBody(t, rec, &created)

	if strings.Contains(created.Body, "rotten") {
		t.Fatalf("banned word survived moderation: %q", created.Body)
	}
	if !strings.Contains(created.Body, "***") {
		t.Fatalf("expected masked body, got %q", created.Body)
	}
	if math.Abs(created.OverallRating-4.0) > 1e-9 {
		t.Fatalf("overall rating = %v, want 4.0", created.OverallRating)
	}

	// A different user cannot edit the review.
	rec = doJSON(t, router, "PUT", "/api/v1/reviews/"+created.ID, other, map[string]any{
		"storyRating": 1,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}

	// The owner can, and the overall rating is recomputed.
	rec = doJSON(t, router, "PUT", "/api/v1/reviews/"+created.ID, owner, map[string]any{
		"storyRating": 1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update returned %d: %s", rec.Code, rec.Body.String())
	}
	var updated struct {
		OverallRating float64 `json:"overallRating"`
	}
	decodeBody(t, rec, &updated)
	if math.Abs(updated.OverallRating-3.0) > 1e-9 {
		t.Fatalf("recomputed overall = %v, want 3.0", updated.OverallRating)
	}

	rec = doJSON(t, router, "DELETE", "/api/v1/reviews/"+created.ID, other, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d", rec.Code)
	}

	rec = doJSON(t, router, "DELETE", "/api/v1/reviews/"+created.ID, owner, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("owner delete returned %d", rec.Code)
	}
}

func TestReviewUnknownBookRejected(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@test.com", "owner", "secret123")

	rec := doJSON(t, router, "POST", "/api/v1/reviews", token, map[string]any{
		"bookId":          "6f1b0a54-0000-4000-8000-000000000000",
		"title":           "Ghost review",
		"body":            "For a book that does not exist.",
		"storyRating":     3,
		"styleRating":     3,
		"characterRating": 3,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestReviewExportCSV(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@test.com", "owner", "secret123")
	bookID := createBook(t, router, token, "Dune")

	rec := doJSON(t, router, "POST", "/api/v1/reviews", token, map[string]any{
		"bookId":          bookID,
		"title":           "Exported review",
		"body":            "Worth keeping a copy of.",
		"storyRating":     5,
		"styleRating":     5,
		"characterRating": 5,
		"recommended":     true,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, "GET", "/api/v1/reviews/export", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export returned %d: %s", rec.Code, rec.Body.String())
	}
	if contentType := rec.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if !strings.Contains(rec.Body.String(), "Exported review") {
		t.Fatalf("export is missing the review: %q", rec.Body.String())
	}

	// Export is scoped to the caller.
	stranger := registerAndLogin(t, router, "stranger@test.com", "stranger", "secret123")
	rec = doJSON(t, router, "GET", "/api/v1/reviews/export", stranger, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stranger export returned %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Exported review") {
		t.Fatal("export leaked another user's review")
	}
}

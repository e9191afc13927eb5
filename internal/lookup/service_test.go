package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.Search(context.Background(), "ab"); !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestSearchParsesVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "dune" {
			t.Fatalf("unexpected query %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{
				"id": "vol-123",
				"volumeInfo": {
					"title": "Dune",
					"authors": ["Frank Herbert"],
					"description": "Desert planet.",
					"categories": ["Fiction"],
					"publishedDate": "1965-08-01",
					"imageLinks": {"thumbnail": "http://img/dune.jpg"}
				}
			}]
		}`))
	}))
	defer server.Close()

	svc := NewService(server.Client(), WithBaseURL(server.URL))

	meta, err := svc.Search(context.Background(), "dune")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if meta.Title != "Dune" || meta.Author != "Frank Herbert" || meta.GoogleVolumeID != "vol-123" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if meta.PublishedYear == nil || *meta.PublishedYear != 1965 {
		t.Fatalf("expected published year 1965, got %v", meta.PublishedYear)
	}
	if meta.Genre != "Fiction" {
		t.Fatalf("expected genre Fiction, got %q", meta.Genre)
	}
}

func TestSearchNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	svc := NewService(server.Client(), WithBaseURL(server.URL))

	if _, err := svc.Search(context.Background(), "nothing here"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(server.Client(), WithBaseURL(server.URL))

	if _, err := svc.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestParseYear(t *testing.T) {
	cases := map[string]*int{
		"1965":       intPtr(1965),
		"1965-08":    intPtr(1965),
		"1965-08-01": intPtr(1965),
		"":           nil,
		"bad":        nil,
	}
	for input, want := range cases {
		got := parseYear(input)
		switch {
		case want == nil && got != nil:
			t.Fatalf("parseYear(%q) = %d, want nil", input, *got)
		case want != nil && (got == nil || *got != *want):
			t.Fatalf("parseYear(%q) = %v, want %d", input, got, *want)
		}
	}
}

func intPtr(v int) *int { return &v }

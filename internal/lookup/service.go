// Package lookup fetches book metadata from the Google Books API so users can
// search for a title before adding it to the catalog.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidQuery is returned when the lookup query is empty or too short.
	ErrInvalidQuery = errors.New("query must be at least 3 characters")
	// ErrNotFound is returned when no metadata could be located for the query.
	ErrNotFound = errors.New("no metadata found for the supplied query")
)

// Metadata captures the subset of book fields populated by lookups.
type Metadata struct {
	Title          string `json:"title"`
	Author         string `json:"author"`
	Description    string `json:"description"`
	Genre          string `json:"genre"`
	PublishedYear  *int   `json:"publishedYear,omitempty"`
	GoogleVolumeID string `json:"googleVolumeId"`
	Thumbnail      string `json:"thumbnail"`
}

const defaultGoogleBooksURL = "https://www.googleapis.com/books/v1"

// Service performs metadata lookups against the Google Books API.
type Service struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// Option configures the Service during construction.
type Option func(*Service)

// WithBaseURL overrides the base URL for Google Books requests.
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey attaches an API key to requests.
func WithAPIKey(key string) Option {
	return func(s *Service) {
		s.apiKey = key
	}
}

// NewService constructs a Service.
func NewService(client *http.Client, opts ...Option) *Service {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	svc := &Service{
		client:  client,
		baseURL: defaultGoogleBooksURL,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			PublishedDate string   `json:"publishedDate"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search returns metadata for the best volume match of the supplied query.
func (s *Service) Search(ctx context.Context, query string) (Metadata, error) {
	cleaned := strings.TrimSpace(query)
	if len(cleaned) < 3 {
		return Metadata{}, ErrInvalidQuery
	}

	endpoint, err := url.Parse(s.baseURL + "/volumes")
	if err != nil {
		return Metadata{}, fmt.Errorf("build google books url: %w", err)
	}

	values := url.Values{}
	values.Set("q", cleaned)
	values.Set("maxResults", "1")
	if s.apiKey != "" {
		values.Set("key", s.apiKey)
	}
	endpoint.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("google books request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("google books responded with status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Metadata{}, fmt.Errorf("decode google books response: %w", err)
	}

	if len(payload.Items) == 0 {
		return Metadata{}, ErrNotFound
	}

	item := payload.Items[0]
	info := item.VolumeInfo

	meta := Metadata{
		Title:          info.Title,
		Description:    info.Description,
		GoogleVolumeID: item.ID,
		Thumbnail:      info.ImageLinks.Thumbnail,
	}
	if len(info.Authors) > 0 {
		meta.Author = strings.Join(info.Authors, ", ")
	}
	if len(info.Categories) > 0 {
		meta.Genre = info.Categories[0]
	}
	if year := parseYear(info.PublishedDate); year != nil {
		meta.PublishedYear = year
	}

	if meta.Title == "" {
		return Metadata{}, ErrNotFound
	}
	return meta, nil
}

// parseYear extracts the leading year from a Google Books publishedDate,
// which may be "2006", "2006-01" or "2006-01-02".
func parseYear(date string) *int {
	head, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if len(head) != 4 {
		return nil
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return nil
	}
	return &year
}

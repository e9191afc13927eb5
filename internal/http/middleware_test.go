package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well formed", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", want: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", want: ""},
		{name: "scheme only", header: "Bearer ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := bearerToken(req); got != tc.want {
				t.Fatalf("bearerToken() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIPLimiterBlocksBursts(t *testing.T) {
	limiter := newIPLimiter(rate.Limit(1), 2)

	if !limiter.allow("10.0.0.1") || !limiter.allow("10.0.0.1") {
		t.Fatal("burst requests should be allowed")
	}
	if limiter.allow("10.0.0.1") {
		t.Fatal("request over the burst should be denied")
	}

	// Other clients are unaffected.
	if !limiter.allow("10.0.0.2") {
		t.Fatal("a different ip should have its own bucket")
	}
}

func TestIPLimiterPrunesIdleVisitors(t *testing.T) {
	current := time.Now()
	limiter := newIPLimiter(rate.Limit(1), 2)
	limiter.now = func() time.Time { return current }

	limiter.allow("10.0.0.1")
	limiter.allow("10.0.0.2")

	// 10.0.0.2 stays active while 10.0.0.1 goes idle past the TTL.
	current = current.Add(8 * time.Minute)
	limiter.allow("10.0.0.2")
	current = current.Add(4 * time.Minute)
	limiter.allow("10.0.0.3")

	limiter.mu.Lock()
	_, staleKept := limiter.visitors["10.0.0.1"]
	_, activeKept := limiter.visitors["10.0.0.2"]
	limiter.mu.Unlock()

	if staleKept {
		t.Fatal("idle visitor should have been pruned")
	}
	if !activeKept {
		t.Fatal("recently seen visitor should survive pruning")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := newRateLimitMiddleware(newIPLimiter(rate.Limit(1), 1))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	req.RemoteAddr = "203.0.113.9:4321"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first request returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request returned %d, want 429", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/health", "", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
}

func TestDecodeJSONBodyRejectsOversizedPayload(t *testing.T) {
	var b strings.Builder
	b.Grow(int(maxJSONBodyBytes) + 32)
	b.WriteString(`{"data":"`)
	for i := int64(0); i < maxJSONBodyBytes; i++ {
		b.WriteByte('a')
	}
	b.WriteString(`"}`)

	req := httptest.NewRequest("POST", "/api/v1/books", strings.NewReader(b.String()))
	rec := httptest.NewRecorder()

	var dst map[string]string
	err := decodeJSONBody(rec, req, &dst)
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
	if !strings.Contains(err.Error(), "payload too large") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/books", strings.NewReader(`{"surprise":true}`))
	rec := httptest.NewRecorder()

	var dst struct {
		Title string `json:"title"`
	}
	if err := decodeJSONBody(rec, req, &dst); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

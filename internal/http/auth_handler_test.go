package http

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegisterLoginMe(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "u@test.com", "u", "secret123")

	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a three-segment token, got %q", token)
	}

	rec := doJSON(t, router, "GET", "/api/v1/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me returned %d: %s", rec.Code, rec.Body.String())
	}

	var me userResponse
	decodeBody(t, rec, &me)
	if me.Email != "u@test.com" || me.Username != "u" {
		t.Fatalf("unexpected user: %+v", me)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "u@test.com", "u", "secret123")

	cases := []struct {
		name  string
		email string
	}{
		{name: "wrong password", email: "u@test.com"},
		{name: "unknown email", email: "nobody@test.com"},
	}

	var messages []string
	for _, tc := range cases {
		rec := doJSON(t, router, "POST", "/api/v1/auth/login", "", map[string]string{
			"email":    tc.email,
			"password": "not-the-password",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rec.Code)
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		messages = append(messages, body["error"])
	}

	if messages[0] != messages[1] {
		t.Fatalf("failure messages differ: %q vs %q", messages[0], messages[1])
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "u@test.com", "u", "secret123")

	rec := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "u@test.com",
		"username": "other",
		"password": "secret123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "u@test.com",
		"username": "u",
		"password": "short",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMeRequiresValidToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "GET", "/api/v1/users/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}

	rec = doJSON(t, router, "GET", "/api/v1/users/me", "not.a.token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestGoogleTokenLoginUnavailable(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/api/v1/auth/google", "", map[string]string{
		"idToken": "opaque-google-token",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when google login is not configured, got %d", rec.Code)
	}
}

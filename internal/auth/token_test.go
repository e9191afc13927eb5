package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three dot-separated segments, got %d", len(parts))
	}

	subject, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if subject != "user-42" {
		t.Fatalf("expected subject %q, got %q", "user-42", subject)
	}
}

func TestTokenIssueEmptySubject(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	if _, err := manager.Issue(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
}

func TestTokenExpiry(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Advance the verifier's clock past the expiry.
	manager.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenNegativeTTL(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Second)

	token, err := manager.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for already-expired token, got %v", err)
	}
}

func TestTokenTamperedSignature(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	token, err := manager.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	for i := range sig {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		if flipped[i] == 'A' {
			flipped[i] = 'B'
		} else {
			flipped[i] = 'A'
		}
		tampered := parts[0] + "." + parts[1] + "." + string(flipped)
		if _, err := manager.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for signature byte %d flipped, got %v", i, err)
		}
	}
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenManager("one-secret", time.Minute)
	verifier := NewTokenManager("another-secret", time.Minute)

	token, err := issuer.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestTokenMalformed(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)

	for _, malformed := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := manager.Verify(malformed); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", malformed, err)
		}
	}
}

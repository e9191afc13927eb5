package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("DATA_STORE", "memory")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected default token TTL 30m, got %s", cfg.TokenTTL)
	}
	if !cfg.UseInMemoryStore() {
		t.Fatal("expected in-memory store by default")
	}
	if cfg.GoogleEnabled() {
		t.Fatal("expected Google OAuth disabled without client credentials")
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Fatal("expected default allowed origins")
	}
}

func TestLoadMissingSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("SECRET_KEY_FILE", filepath.Join(t.TempDir(), "missing"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error when SECRET_KEY is not set")
	}
}

func TestLoadInvalidTokenTTL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("TOKEN_TTL_MINUTES", "zero")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid TOKEN_TTL_MINUTES")
	}
}

func TestLoadInvalidBcryptCost(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BCRYPT_COST", "99")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range BCRYPT_COST")
	}
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATA_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_URL_FILE", filepath.Join(t.TempDir(), "missing"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error when postgres store has no DATABASE_URL")
	}
}

func TestLoadSecretFromFile(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SECRET_KEY", "")

	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECRET_KEY_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SecretKey != "file-secret" {
		t.Fatalf("expected secret from file, got %q", cfg.SecretKey)
	}
}

func TestParseCSV(t *testing.T) {
	got := parseCSV(" a , ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected parseCSV result: %v", got)
	}
}

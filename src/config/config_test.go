package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.BlogBasePath != "/blog" {
		t.Errorf("expected default blog base path /blog, got %q", cfg.BlogBasePath)
	}
	if cfg.ImageFetchTimeout != 30*time.Second {
		t.Errorf("expected default fetch timeout 30s, got %s", cfg.ImageFetchTimeout)
	}
	if len(cfg.JWTSecret) < 32 {
		t.Errorf("expected a generated JWT secret of at least 32 chars, got %d", len(cfg.JWTSecret))
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("BLOG_BASE_PATH", "/articles")
	t.Setenv("IMAGE_FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("JWT_SECRET", "explicit-secret-value-that-is-long-enough")

	cfg := Load()

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.BlogBasePath != "/articles" {
		t.Errorf("expected blog base path /articles, got %q", cfg.BlogBasePath)
	}
	if cfg.ImageFetchTimeout != 5*time.Second {
		t.Errorf("expected fetch timeout 5s, got %s", cfg.ImageFetchTimeout)
	}
	if cfg.JWTSecret != "explicit-secret-value-that-is-long-enough" {
		t.Errorf("expected explicit JWT secret, got %q", cfg.JWTSecret)
	}
}

func TestLoad_ConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "port: 7070\nmedia_dir: /var/media\nblog_base_path: /writing\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7071")

	cfg := Load()

	// Environment wins over the file; the file wins over defaults
	if cfg.Port != 7071 {
		t.Errorf("expected env port 7071 to win, got %d", cfg.Port)
	}
	if cfg.MediaDir != "/var/media" {
		t.Errorf("expected media dir from file, got %q", cfg.MediaDir)
	}
	if cfg.BlogBasePath != "/writing" {
		t.Errorf("expected blog base path from file, got %q", cfg.BlogBasePath)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadRequiresBackendBaseURL(t *testing.T) {
	t.Setenv("MAMMAPIZZA_APP_ENV", "dev")
	t.Setenv("MAMMAPIZZA_WHATSAPP_NUMBER", "51987654321")
	t.Setenv("MAMMAPIZZA_BACKEND_BASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when backend base url is missing")
	}
}

func TestLoadRejectsRelativeBackendURL(t *testing.T) {
	t.Setenv("MAMMAPIZZA_APP_ENV", "dev")
	t.Setenv("MAMMAPIZZA_WHATSAPP_NUMBER", "51987654321")
	t.Setenv("MAMMAPIZZA_BACKEND_BASE_URL", "/api")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for relative backend url")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAMMAPIZZA_APP_ENV", "dev")
	t.Setenv("MAMMAPIZZA_WHATSAPP_NUMBER", "51987654321")
	t.Setenv("MAMMAPIZZA_BACKEND_BASE_URL", "http://localhost:4000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.App.Port)
	}
	if cfg.Cart.TTL != 12*time.Hour {
		t.Fatalf("expected default cart ttl 12h, got %s", cfg.Cart.TTL)
	}
	if cfg.Cart.CookieName != "mp_session" {
		t.Fatalf("unexpected cart cookie name %s", cfg.Cart.CookieName)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatal("expected dev environment")
	}
}

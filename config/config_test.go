package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DEEPGRAM_API_KEY", "dg-test")
	t.Setenv("OPENAI_API_KEY", "oa-test")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}

	if cfg.Port != "8011" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.OpenAIModel)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected default session TTL, got %v", cfg.SessionTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("expected default CORS origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Voice != "luna" {
		t.Fatalf("expected default voice, got %q", cfg.Voice)
	}
}

func TestLoadCollectsAllMissingRequirements(t *testing.T) {
	t.Setenv("DEEPGRAM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected missing keys to fail the load")
	}
	for _, needle := range []string{"DEEPGRAM_API_KEY", "OPENAI_API_KEY"} {
		if !strings.Contains(err.Error(), needle) {
			t.Fatalf("expected error to mention %s, got %v", needle, err)
		}
	}
}

func TestLoadRejectsInvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_TTL_SECONDS", "soon")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SESSION_TTL_SECONDS") {
		t.Fatalf("expected TTL validation error, got %v", err)
	}
}

func TestLoadSplitsCORSOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("expected origins split and trimmed, got %v", cfg.CORSOrigins)
	}
}

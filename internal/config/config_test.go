package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "shelfkeeper",
			Database:  "main",
		},
		Session: SessionConfig{
			Secret:     strings.Repeat("s", 32),
			CookieName: "shelfkeeper_session",
			TTL:        24 * time.Hour,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingSessionSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.Secret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SESSION_SECRET")
	}
	if !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Errorf("expected error to mention SESSION_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_ShortSessionSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.Secret = "too-short"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for short SESSION_SECRET")
	}
	if !strings.Contains(err.Error(), "32 characters") {
		t.Errorf("expected error to mention minimum length, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_NonPositiveSessionTTL(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Session.TTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for zero SESSION_TTL")
	}
	if !strings.Contains(err.Error(), "SESSION_TTL") {
		t.Errorf("expected error to mention SESSION_TTL, got: %v", err)
	}
}

func TestConfig_Validate_PartialGitHubOAuth(t *testing.T) {
	cfg := validBaseConfig()
	cfg.OAuth.GitHub.ClientID = "abc123"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for partially configured GitHub OAuth")
	}
	if !strings.Contains(err.Error(), "GITHUB_CLIENT_SECRET") {
		t.Errorf("expected error to mention GITHUB_CLIENT_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_FullGitHubOAuth(t *testing.T) {
	cfg := validBaseConfig()
	cfg.OAuth.GitHub = GitHubOAuthConfig{
		ClientID:     "abc123",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost:8080/github/callback",
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_CollectsMultipleErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Database.Namespace = ""
	cfg.Session.Secret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"SERVER_PORT", "DB_NAMESPACE", "SESSION_SECRET"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

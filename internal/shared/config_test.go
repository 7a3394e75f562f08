package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Spotify.RedirectURI != "http://127.0.0.1:8080/callback" {
			t.Errorf("expected loopback redirect URI, got %s", config.Spotify.RedirectURI)
		}

		if config.Cache.Path != "tokens.db" {
			t.Errorf("expected cache path tokens.db, got %s", config.Cache.Path)
		}

		if len(config.Spotify.Scopes) == 0 {
			t.Error("expected default scopes to be present")
		}

		if config.Spotify.ClientID != "" {
			t.Errorf("expected empty client_id in template, got %s", config.Spotify.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		t.Run("Refuses To Overwrite", func(t *testing.T) {
			if err := CreateConfigFile(configPath); err == nil {
				t.Error("expected error for existing config file")
			}
		})
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		content := `
[spotify]
client_id = "my_client_id"
client_secret = "my_client_secret"
redirect_uri = "http://localhost:9090/auth"
scopes = ["user-read-private"]

[cache]
path = "/tmp/tempo-tokens.db"
`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Spotify.ClientID != "my_client_id" {
			t.Errorf("expected client_id my_client_id, got %s", config.Spotify.ClientID)
		}
		if config.Spotify.RedirectURI != "http://localhost:9090/auth" {
			t.Errorf("unexpected redirect URI: %s", config.Spotify.RedirectURI)
		}
		if config.Cache.Path != "/tmp/tempo-tokens.db" {
			t.Errorf("unexpected cache path: %s", config.Cache.Path)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[spotify\nbroken"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("AuthConfig Conversion", func(t *testing.T) {
		sc := SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "http://127.0.0.1:8080/callback",
			Scopes:       []string{"user-read-private"},
		}

		cfg := sc.AuthConfig()
		if cfg.Credentials.ClientID != "id" || cfg.Credentials.ClientSecret != "secret" {
			t.Errorf("unexpected credentials: %+v", cfg.Credentials)
		}
		if cfg.Credentials.RedirectURI != sc.RedirectURI {
			t.Errorf("unexpected redirect URI: %s", cfg.Credentials.RedirectURI)
		}
		if len(cfg.Scopes) != 1 || cfg.Scopes[0] != "user-read-private" {
			t.Errorf("unexpected scopes: %v", cfg.Scopes)
		}
	})
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tempo/auth"
	"github.com/desertthunder/tempo/internal/shared"
	"github.com/desertthunder/tempo/internal/tokencache"
)

// noCacheConfig keeps runner tests from touching the working directory.
func noCacheConfig() *shared.Config {
	config := shared.DefaultConfig()
	config.Cache.Path = ""
	return config
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("With All Dependencies Provided", func(t *testing.T) {
			config := noCacheConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			store := auth.NewStore(0)

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Store:  store,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.store != store {
				t.Error("expected store to be set")
			}
		})

		t.Run("With Nil Logger Uses Default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: noCacheConfig()})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("With Nil Output Uses Stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: noCacheConfig()})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("Preloads Cached Token", func(t *testing.T) {
			cache, err := tokencache.Open(":memory:")
			if err != nil {
				t.Fatalf("failed to open cache: %v", err)
			}
			saved := &auth.TokenSet{
				AccessToken:  "cached_access",
				RefreshToken: "cached_refresh",
				ExpiresAt:    time.Now().Add(time.Hour),
			}
			if err := cache.Save(saved); err != nil {
				t.Fatalf("failed to seed cache: %v", err)
			}

			runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Cache: cache})
			defer runner.Close()

			ts := runner.store.Current()
			if ts == nil || ts.AccessToken != "cached_access" {
				t.Errorf("expected cached token preloaded into store, got %+v", ts)
			}
		})
	})

	t.Run("spotifyClient", func(t *testing.T) {
		t.Run("Missing Credentials", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: noCacheConfig()})
			if _, err := runner.spotifyClient(); !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Client Is Reused", func(t *testing.T) {
			config := noCacheConfig()
			config.Spotify.ClientID = "id"
			config.Spotify.ClientSecret = "secret"

			runner := NewRunner(RunnerOpts{Config: config})
			first, err := runner.spotifyClient()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			second, err := runner.spotifyClient()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if first != second {
				t.Error("expected the same client on repeated calls")
			}
		})
	})

	t.Run("persistTokens", func(t *testing.T) {
		cache, err := tokencache.Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}

		runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Cache: cache})
		defer runner.Close()

		runner.store.Install(&auth.TokenSet{
			AccessToken: "persist_me",
			ExpiresAt:   time.Now().Add(time.Hour),
		})
		runner.persistTokens()

		loaded, err := cache.Load()
		if err != nil {
			t.Fatalf("expected token in cache, got %v", err)
		}
		if loaded.AccessToken != "persist_me" {
			t.Errorf("unexpected cached token: %+v", loaded)
		}
	})

	t.Run("AuthStatus", func(t *testing.T) {
		t.Run("Not Authenticated", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Output: output})

			if err := runner.AuthStatus(context.Background(), nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Not authenticated") {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("Authenticated", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Output: output})
			runner.store.Install(&auth.TokenSet{
				AccessToken: "access",
				Scopes:      []string{"user-read-private"},
				ExpiresAt:   time.Now().Add(time.Hour),
			})

			if err := runner.AuthStatus(context.Background(), nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			got := output.String()
			if !strings.Contains(got, "Authenticated") {
				t.Errorf("unexpected output: %q", got)
			}
			if !strings.Contains(got, "user-read-private") {
				t.Errorf("expected scopes in output: %q", got)
			}
		})
	})

	t.Run("AuthLogout", func(t *testing.T) {
		cache, err := tokencache.Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open cache: %v", err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Cache: cache, Output: output})
		defer runner.Close()

		runner.store.Install(&auth.TokenSet{AccessToken: "access", ExpiresAt: time.Now().Add(time.Hour)})
		runner.persistTokens()

		if err := runner.AuthLogout(context.Background(), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.store.Current() != nil {
			t.Error("expected store cleared after logout")
		}
		if _, err := cache.Load(); !errors.Is(err, tokencache.ErrNoToken) {
			t.Errorf("expected cache cleared after logout, got %v", err)
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: noCacheConfig(), Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := output.String(); got != "{\"key\":\"value\"}\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: noCacheConfig()})
		commands := runner.register()
		if len(commands) != 7 {
			t.Fatalf("expected 7 top-level commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}
		for _, want := range []string{"setup", "auth", "profile", "track", "playlist", "player", "raw"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tempo/auth"
	"github.com/desertthunder/tempo/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the full authorization code flow: opens the browser,
// captures the redirect locally, exchanges the code, and caches the tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.config.Spotify.ClientID == "" || r.config.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	timeout := cmd.Duration("timeout")

	flow, err := auth.NewFlow(r.config.Spotify.AuthConfig(),
		auth.WithTimeout(timeout),
		auth.WithLogger(r.logger),
		auth.WithBrowser(shared.OpenBrowser))
	if err != nil {
		return err
	}

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	r.writePlain("→ Waiting for authorization (%s timeout)...\n", timeout)

	if err := flow.Authorize(ctx, r.store); err != nil {
		switch {
		case errors.Is(err, auth.ErrAuthorizationDenied):
			return fmt.Errorf("%w: authorization was denied in the browser", shared.ErrAuthFailed)
		case errors.Is(err, auth.ErrAuthorizationTimeout):
			return fmt.Errorf("%w: no redirect received before the timeout", shared.ErrAuthFailed)
		default:
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
	}

	r.persistTokens()

	r.writePlainln("✓ Authorization successful")
	if r.cache != nil {
		r.writePlain("✓ Tokens saved to %s\n\n", r.config.Cache.Path)
	}
	r.writePlain("You can now use: tempo playlist list\n")
	return nil
}

// AuthStatus reports whether a token set is present and still valid.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	ts := r.store.Current()
	if ts == nil {
		r.writePlain("✗ Not authenticated. Run: tempo auth login\n")
		return nil
	}

	r.writePlain("✓ Authenticated\n")
	if len(ts.Scopes) > 0 {
		r.writePlain("Scopes: %s\n", strings.Join(ts.Scopes, " "))
	}
	if r.store.Valid() {
		r.writePlain("Access token valid until %s\n", ts.ExpiresAt.Format(time.RFC1123))
	} else if ts.RefreshToken != "" {
		r.writePlain("Access token expired, will refresh on next request\n")
	} else {
		r.writePlain("Access token expired and no refresh token; run: tempo auth login\n")
	}
	return nil
}

// AuthLogout clears the in-memory store and the on-disk cache.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.store.Invalidate()
	if r.cache != nil {
		if err := r.cache.Clear(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrCache, err)
		}
	}
	r.writePlain("✓ Logged out\n")
	return nil
}

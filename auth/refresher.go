package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// Refresher exchanges a stored refresh token for a new access token when
// the store's token set has expired or is about to.
//
// Concurrent callers share one in-flight exchange: duplicate refreshes are
// wasteful and can invalidate the winning attempt's refresh token on some
// providers, so the second caller waits for the first's result instead.
type Refresher struct {
	conf  *oauth2.Config
	store *Store
	group singleflight.Group
}

// NewRefresher prepares a refresher bound to store.
func NewRefresher(cfg Config, store *Store) (*Refresher, error) {
	conf, err := cfg.oauth2Config()
	if err != nil {
		return nil, err
	}
	return &Refresher{conf: conf, store: store}, nil
}

// EnsureValid is a no-op while the store holds a valid token set; otherwise
// it refreshes. When no refresh token exists, or the token endpoint rejects
// the refresh grant, the store is invalidated and the error wraps
// [ErrReauthorizationRequired]. Network-class failures wrap
// [ErrRefreshFailed] and may be retried by the caller.
func (r *Refresher) EnsureValid(ctx context.Context) error {
	if r.store.Valid() {
		return nil
	}
	return r.refresh(ctx, true)
}

// Refresh forces a refresh exchange even when the stored token still looks
// valid. Used when the API rejects a token the store considers live.
func (r *Refresher) Refresh(ctx context.Context) error {
	return r.refresh(ctx, false)
}

func (r *Refresher) refresh(ctx context.Context, revalidate bool) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		// A waiter queued behind a completed refresh sees a valid store
		// and must not refresh again.
		if revalidate && r.store.Valid() {
			return nil, nil
		}
		return nil, r.exchangeRefreshToken(ctx)
	})
	return err
}

func (r *Refresher) exchangeRefreshToken(ctx context.Context) error {
	cur := r.store.Current()
	if cur == nil {
		return fmt.Errorf("%w: no token installed", ErrReauthorizationRequired)
	}
	if cur.RefreshToken == "" {
		r.store.Invalidate()
		return fmt.Errorf("%w: %w", ErrReauthorizationRequired, ErrNoRefreshToken)
	}

	src := r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cur.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response.StatusCode < 500 {
			// The accounts service rejected the refresh grant itself, so
			// the stored credentials are beyond repair.
			r.store.Invalidate()
			return fmt.Errorf("%w: token endpoint returned %d: %s",
				ErrReauthorizationRequired, rErr.Response.StatusCode, retrieveMessage(rErr))
		}
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	rotated := ""
	if tok.RefreshToken != "" && tok.RefreshToken != cur.RefreshToken {
		rotated = tok.RefreshToken
	}
	r.store.UpdateAccess(tok.AccessToken, tok.Expiry, rotated)
	return nil
}

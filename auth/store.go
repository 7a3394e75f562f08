package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DefaultExpiryMargin is subtracted from the token expiry when judging
// validity. It absorbs clock skew and in-flight request latency.
const DefaultExpiryMargin = 10 * time.Second

// TokenSet holds the credentials issued by the accounts service.
// ExpiresAt is an absolute instant derived from issue time plus the
// server-reported lifetime.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	Scopes       []string
	ExpiresAt    time.Time
}

// newTokenSet converts an [oauth2.Token] into a TokenSet, picking up the
// granted scope list the token endpoint reports alongside the token.
func newTokenSet(tok *oauth2.Token) *TokenSet {
	ts := &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		ts.Scopes = strings.Fields(scope)
	}
	return ts
}

// Store owns the live [TokenSet] for one authorized user. At most one set
// is live at a time and every read or write goes through a single mutex,
// so concurrent pipeline calls can safely share a store.
type Store struct {
	mu     sync.Mutex
	token  *TokenSet
	margin time.Duration
	now    func() time.Time
}

// NewStore creates an empty store. A margin of zero or less selects
// [DefaultExpiryMargin].
func NewStore(margin time.Duration) *Store {
	if margin <= 0 {
		margin = DefaultExpiryMargin
	}
	return &Store{margin: margin, now: time.Now}
}

// Current returns a snapshot of the stored token set, or nil when the
// store is empty.
func (s *Store) Current() *TokenSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return nil
	}
	snapshot := *s.token
	snapshot.Scopes = append([]string(nil), s.token.Scopes...)
	return &snapshot
}

// Install replaces the stored token set. Used after a completed
// authorization flow.
func (s *Store) Install(ts *TokenSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ts
}

// Valid reports whether a token set is present and not within the expiry
// margin.
func (s *Store) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil || s.token.AccessToken == "" {
		return false
	}
	return s.now().Before(s.token.ExpiresAt.Add(-s.margin))
}

// UpdateAccess replaces the access token and expiry after a successful
// refresh. The refresh token is preserved unless the server rotated it, in
// which case the replacement is passed as newRefreshToken.
func (s *Store) UpdateAccess(accessToken string, expiresAt time.Time, newRefreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		s.token = &TokenSet{}
	}
	s.token.AccessToken = accessToken
	s.token.ExpiresAt = expiresAt
	if newRefreshToken != "" {
		s.token.RefreshToken = newRefreshToken
	}
}

// Invalidate clears the store, forcing the next request to require a full
// reauthorization.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

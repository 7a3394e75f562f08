package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/tempo/auth"
	"golang.org/x/oauth2"
)

// newTestClient builds a client against a stub API server with a live
// token already installed. tokenURL may be empty when no refresh is
// expected.
func newTestClient(t *testing.T, apiURL, tokenURL string) (*Client, *auth.Store) {
	t.Helper()

	store := auth.NewStore(0)
	store.Install(&auth.TokenSet{
		AccessToken:  "live_access",
		RefreshToken: "refresh_token",
		ExpiresAt:    time.Now().Add(time.Hour),
	})

	cfg := auth.Config{
		Credentials: auth.Credentials{
			ClientID:     "test_client_id",
			ClientSecret: "test_client_secret",
		},
		Endpoint: oauth2.Endpoint{AuthURL: tokenURL + "/authorize", TokenURL: tokenURL + "/token"},
	}

	client, err := New(cfg, store, WithBaseURL(apiURL))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client, store
}

func TestClient(t *testing.T) {
	t.Run("Authenticated GET Decodes Response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer live_access" {
				t.Errorf("expected bearer token on request, got %q", got)
			}
			if r.URL.Path != "/tracks/track123" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			fmt.Fprint(w, `{"id": "track123", "name": "Song", "type": "track", "duration_ms": 1000}`)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		track, err := client.Track(context.Background(), "track123")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if track.ID != "track123" || track.Name != "Song" {
			t.Errorf("unexpected track: %+v", track)
		}
	})

	t.Run("Error Envelope Mapping", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error": {"status": 404, "message": "Non existing id"}}`)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		_, err := client.Track(context.Background(), "missing")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindNotFound || apiErr.Status != http.StatusNotFound {
			t.Errorf("expected not_found/404, got %s/%d", apiErr.Kind, apiErr.Status)
		}
		if apiErr.Message != "Non existing id" {
			t.Errorf("expected envelope message, got %q", apiErr.Message)
		}
		if apiErr.Retryable() {
			t.Error("404 must not be retryable")
		}
	})

	t.Run("Rate Limit Carries Retry After", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error": {"status": 429, "message": "Too many requests"}}`)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		_, err := client.Track(context.Background(), "track123")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindRateLimited {
			t.Errorf("expected rate_limited, got %s", apiErr.Kind)
		}
		if apiErr.RetryAfter != 5*time.Second {
			t.Errorf("expected RetryAfter 5s, got %s", apiErr.RetryAfter)
		}
		if !apiErr.Retryable() {
			t.Error("429 must be retryable")
		}
	})

	t.Run("Server Fault", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "upstream unavailable")
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		_, err := client.Track(context.Background(), "track123")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindRemoteFault {
			t.Errorf("expected remote_fault, got %s", apiErr.Kind)
		}
		if apiErr.Message != "upstream unavailable" {
			t.Errorf("expected body snippet as message, got %q", apiErr.Message)
		}
		if !apiErr.Retryable() {
			t.Error("5xx must be retryable")
		}
	})

	t.Run("Malformed Success Body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": "track123", "name": `)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		_, err := client.Track(context.Background(), "track123")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindMalformedResponse {
			t.Errorf("expected malformed_response, got %s", apiErr.Kind)
		}
		if apiErr.Retryable() {
			t.Error("a decode failure must not be retryable")
		}
	})

	t.Run("Empty Success Body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		if err := client.Pause(context.Background()); err != nil {
			t.Errorf("expected 204 to succeed, got %v", err)
		}
	})

	t.Run("Network Failure", func(t *testing.T) {
		client, _ := newTestClient(t, "http://127.0.0.1:1", "")
		_, err := client.Track(context.Background(), "track123")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindNetwork {
			t.Errorf("expected network kind, got %s", apiErr.Kind)
		}
		if !apiErr.Retryable() {
			t.Error("network failures must be retryable")
		}
	})

	t.Run("Rejected Token Refreshed Once", func(t *testing.T) {
		var refreshes atomic.Int32
		tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			refreshes.Add(1)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "fresh_access", "token_type": "Bearer", "expires_in": 3600}`)
		}))
		defer tokenSrv.Close()

		var apiCalls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch apiCalls.Add(1) {
			case 1:
				if got := r.Header.Get("Authorization"); got != "Bearer live_access" {
					t.Errorf("first attempt should carry the stale token, got %q", got)
				}
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error": {"status": 401, "message": "The access token expired"}}`)
			default:
				if got := r.Header.Get("Authorization"); got != "Bearer fresh_access" {
					t.Errorf("retry should carry the refreshed token, got %q", got)
				}
				fmt.Fprint(w, `{"id": "track123", "name": "Song", "type": "track"}`)
			}
		}))
		defer srv.Close()

		client, store := newTestClient(t, srv.URL, tokenSrv.URL)
		track, err := client.Track(context.Background(), "track123")
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if track.ID != "track123" {
			t.Errorf("unexpected track: %+v", track)
		}
		if n := refreshes.Load(); n != 1 {
			t.Errorf("expected exactly one refresh, got %d", n)
		}
		if n := apiCalls.Load(); n != 2 {
			t.Errorf("expected exactly two API calls, got %d", n)
		}
		if ts := store.Current(); ts.AccessToken != "fresh_access" {
			t.Errorf("expected refreshed token installed, got %s", ts.AccessToken)
		}
	})

	t.Run("Persistent 401 Fails After One Retry", func(t *testing.T) {
		var refreshes atomic.Int32
		tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			refreshes.Add(1)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token": "fresh_access", "token_type": "Bearer", "expires_in": 3600}`)
		}))
		defer tokenSrv.Close()

		var apiCalls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiCalls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"status": 401, "message": "Bad token"}}`)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, tokenSrv.URL)
		_, err := client.Track(context.Background(), "track123")

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Kind != KindUnauthorized {
			t.Errorf("expected unauthorized, got %s", apiErr.Kind)
		}
		if n := refreshes.Load(); n != 1 {
			t.Errorf("expected exactly one refresh, got %d", n)
		}
		if n := apiCalls.Load(); n != 2 {
			t.Errorf("expected exactly two API calls, got %d", n)
		}
	})

	t.Run("No Credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should reach the API without credentials")
		}))
		defer srv.Close()

		client, store := newTestClient(t, srv.URL, "")
		store.Invalidate()

		_, err := client.Track(context.Background(), "track123")
		if !errors.Is(err, auth.ErrReauthorizationRequired) {
			t.Errorf("expected ErrReauthorizationRequired, got %v", err)
		}
	})

	t.Run("Paging Query Clamps", func(t *testing.T) {
		cases := []struct {
			name                  string
			limit, offset         int
			wantLimit, wantOffset string
		}{
			{"Defaults", 0, 0, "20", "0"},
			{"Above Maximum", 500, 10, "50", "10"},
			{"Negative Offset", 10, -5, "10", "0"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					q := r.URL.Query()
					if got := q.Get("limit"); got != tc.wantLimit {
						t.Errorf("expected limit=%s, got %s", tc.wantLimit, got)
					}
					if got := q.Get("offset"); got != tc.wantOffset {
						t.Errorf("expected offset=%s, got %s", tc.wantOffset, got)
					}
					fmt.Fprint(w, `{"items": [], "total": 0}`)
				}))
				defer srv.Close()

				client, _ := newTestClient(t, srv.URL, "")
				if _, err := client.SavedTracks(context.Background(), tc.limit, tc.offset); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			})
		}
	})

	t.Run("CurrentPlayback Without Active Device", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client, _ := newTestClient(t, srv.URL, "")
		state, err := client.CurrentPlayback(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if state != nil {
			t.Errorf("expected nil state for 204, got %+v", state)
		}
	})
}

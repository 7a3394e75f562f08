package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// DefaultAuthorizeTimeout bounds the wait for the browser redirect.
const DefaultAuthorizeTimeout = 2 * time.Minute

// Flow drives the Authorization Code exchange: authorize URL construction,
// redirect capture on a loopback listener, and the code-for-token exchange.
type Flow struct {
	conf    *oauth2.Config
	addr    string
	path    string
	timeout time.Duration
	logger  *log.Logger
	browser func(url string) error
}

// FlowOption configures a [Flow].
type FlowOption func(*Flow)

// WithTimeout bounds the redirect wait. Zero or negative keeps the default.
func WithTimeout(d time.Duration) FlowOption {
	return func(f *Flow) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithLogger attaches a logger to the flow.
func WithLogger(l *log.Logger) FlowOption {
	return func(f *Flow) { f.logger = l }
}

// WithBrowser replaces the function used to open the user's browser in
// [Flow.Authorize].
func WithBrowser(open func(url string) error) FlowOption {
	return func(f *Flow) { f.browser = open }
}

// NewFlow validates the configuration and prepares a flow. The redirect URI
// must point at a loopback host; its host and path decide where the
// redirect capture listens.
func NewFlow(cfg Config, opts ...FlowOption) (*Flow, error) {
	conf, err := cfg.oauth2Config()
	if err != nil {
		return nil, err
	}

	addr, path, err := splitRedirect(conf.RedirectURL)
	if err != nil {
		return nil, err
	}

	f := &Flow{
		conf:    conf,
		addr:    addr,
		path:    path,
		timeout: DefaultAuthorizeTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard)
	}
	return f, nil
}

// AuthorizeURL builds the authorize endpoint URL carrying the client id,
// redirect URI, space-joined scope list, response_type=code, and the given
// state token. The caller must have generated state unpredictably, e.g.
// with [GenerateState].
func (f *Flow) AuthorizeURL(state string) string {
	return f.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// AwaitRedirect listens on the redirect address for a single authorization
// callback and blocks until it arrives, the timeout elapses, or ctx is
// cancelled. The listener is released before the call returns on every
// path.
//
// A redirect carrying an error parameter fails with
// [ErrAuthorizationDenied]; a state value other than the one given fails
// with [ErrStateMismatch]; an unbounded wait is cut off with
// [ErrAuthorizationTimeout].
func (f *Flow) AwaitRedirect(ctx context.Context, state string) (*Grant, error) {
	return f.awaitRedirect(ctx, state, nil)
}

// awaitRedirect implements the capture. ready, when non-nil, runs once the
// listener is bound, so the browser can only be pointed at a live port.
func (f *Flow) awaitRedirect(ctx context.Context, state string, ready func()) (*Grant, error) {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener on %s: %w", f.addr, err)
	}

	handler := newCallbackHandler(state, f.path)
	srv := &http.Server{Handler: handler}

	serverErrs := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			f.logger.Warn("error shutting down callback server", "error", err)
			srv.Close()
		}
	}()

	if ready != nil {
		ready()
	}

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Grant, nil
	case err := <-serverErrs:
		return nil, fmt.Errorf("callback server error: %w", err)
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", ErrAuthorizationTimeout, f.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Exchange trades the authorization grant for a [TokenSet]. The expiry
// instant is computed from the current time plus the lifetime the token
// endpoint reports.
func (f *Flow) Exchange(ctx context.Context, grant *Grant) (*TokenSet, error) {
	tok, err := f.conf.Exchange(ctx, grant.Code)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) {
			return nil, &ExchangeError{
				StatusCode: rErr.Response.StatusCode,
				Message:    retrieveMessage(rErr),
			}
		}
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return newTokenSet(tok), nil
}

// Authorize runs the whole flow: opens the browser on the authorize URL,
// waits for the redirect, exchanges the code, and installs the resulting
// token set into store.
func (f *Flow) Authorize(ctx context.Context, store *Store) error {
	state := GenerateState()
	authURL := f.AuthorizeURL(state)

	grant, err := f.awaitRedirect(ctx, state, func() {
		if f.browser == nil {
			f.logger.Info("open this URL in your browser to authorize", "url", authURL)
			return
		}
		if err := f.browser(authURL); err != nil {
			f.logger.Warn("failed to open browser, open the URL manually", "url", authURL, "error", err)
		}
	})
	if err != nil {
		return err
	}

	ts, err := f.Exchange(ctx, grant)
	if err != nil {
		return err
	}

	store.Install(ts)
	f.logger.Info("authorization complete", "scopes", strings.Join(ts.Scopes, " "))
	return nil
}

// retrieveMessage extracts the most specific message an [oauth2.RetrieveError]
// carries.
func retrieveMessage(rErr *oauth2.RetrieveError) string {
	switch {
	case rErr.ErrorDescription != "":
		return rErr.ErrorDescription
	case rErr.ErrorCode != "":
		return rErr.ErrorCode
	default:
		return strings.TrimSpace(string(rErr.Body))
	}
}

package auth

import (
	"fmt"
	"net/http"
	"sync"
)

// Grant is the transient product of one authorization flow. It is consumed
// by the token exchange and then discarded.
type Grant struct {
	Code  string
	State string
}

// CallbackResult carries the outcome of the redirect capture.
type CallbackResult struct {
	Grant *Grant
	err   error
}

func (c CallbackResult) Error() error {
	return c.err
}

// callbackHandler captures a single OAuth2 redirect on the loopback
// listener. The state parameter is validated against the value sent with
// the authorize URL, and only the first matching request is processed.
type callbackHandler struct {
	state      string
	path       string
	resultChan chan CallbackResult
	once       sync.Once
	mu         sync.Mutex
	consumed   bool
}

func newCallbackHandler(state, path string) *callbackHandler {
	return &callbackHandler{
		state:      state,
		path:       path,
		resultChan: make(chan CallbackResult, 1),
	}
}

// ServeHTTP handles the redirect request from the user's browser.
//
// Requests for other paths (favicons, probes) are rejected without
// consuming the capture.
func (h *callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != h.path {
		http.NotFound(w, r)
		return
	}

	h.mu.Lock()
	if h.consumed {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.consumed = true
	h.mu.Unlock()

	query := r.URL.Query()

	if state := query.Get("state"); state != h.state {
		h.send(CallbackResult{err: fmt.Errorf("%w: got %q", ErrStateMismatch, state)})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		errParam := query.Get("error")
		errDesc := query.Get("error_description")
		if errParam == "" {
			errParam = "no code in redirect"
		}
		err := fmt.Errorf("%w: %s", ErrAuthorizationDenied, errParam)
		if errDesc != "" {
			err = fmt.Errorf("%w: %s - %s", ErrAuthorizationDenied, errParam, errDesc)
		}
		h.send(CallbackResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.send(CallbackResult{Grant: &Grant{Code: code, State: h.state}})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, callbackSuccessPage)
}

// send delivers the result exactly once; later calls are dropped.
func (h *callbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel the capture outcome is delivered on.
// It receives exactly one value and is then closed.
func (h *callbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const callbackSuccessPage = `<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to your application.</p>
    </div>
</body>
</html>
`

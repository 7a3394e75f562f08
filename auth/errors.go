package auth

import "fmt"

var (
	ErrNotAuthenticated        = fmt.Errorf("not authenticated")
	ErrAuthorizationDenied     = fmt.Errorf("authorization denied")
	ErrStateMismatch           = fmt.Errorf("state parameter mismatch")
	ErrAuthorizationTimeout    = fmt.Errorf("authorization timed out")
	ErrReauthorizationRequired = fmt.Errorf("reauthorization required")
	ErrNoRefreshToken          = fmt.Errorf("no refresh token available")
	ErrRefreshFailed           = fmt.Errorf("token refresh failed")
	ErrInvalidRedirectURI      = fmt.Errorf("invalid redirect URI")
	ErrMissingCredentials      = fmt.Errorf("missing credentials")
)

// ExchangeError reports a non-2xx response from the token endpoint during
// the authorization_code grant.
type ExchangeError struct {
	StatusCode int
	Message    string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: status %d: %s", e.StatusCode, e.Message)
}

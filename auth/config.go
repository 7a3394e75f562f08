package auth

import (
	"fmt"
	"net"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	// DefaultRedirectURI is used when no redirect URI is configured.
	DefaultRedirectURI = "http://127.0.0.1:8080/callback"
)

// SpotifyEndpoint is the Spotify accounts service endpoint pair.
var SpotifyEndpoint = oauth2.Endpoint{
	AuthURL:  spotifyAuthURL,
	TokenURL: spotifyTokenURL,
}

// Credentials identifies the application to the accounts service.
// Immutable for the process lifetime.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// Config couples application credentials with the requested scopes and the
// provider endpoints. A zero Endpoint means Spotify.
type Config struct {
	Credentials Credentials
	Scopes      []string
	Endpoint    oauth2.Endpoint
}

// oauth2Config validates the credentials and builds the [oauth2.Config]
// both the flow engine and the refresher operate on.
func (c Config) oauth2Config() (*oauth2.Config, error) {
	if c.Credentials.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id", ErrMissingCredentials)
	}
	if c.Credentials.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client_secret", ErrMissingCredentials)
	}

	redirect := c.Credentials.RedirectURI
	if redirect == "" {
		redirect = DefaultRedirectURI
	}

	endpoint := c.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = SpotifyEndpoint
	}

	return &oauth2.Config{
		ClientID:     c.Credentials.ClientID,
		ClientSecret: c.Credentials.ClientSecret,
		RedirectURL:  redirect,
		Scopes:       c.Scopes,
		Endpoint:     endpoint,
	}, nil
}

// splitRedirect breaks a loopback redirect URI into the address to listen
// on and the callback path. Only loopback hosts are accepted.
func splitRedirect(redirect string) (addr, path string, err error) {
	u, err := url.Parse(redirect)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRedirectURI, err)
	}

	host := u.Hostname()
	if host != "localhost" && host != "127.0.0.1" && host != "::1" {
		return "", "", fmt.Errorf("%w: %s is not a loopback host", ErrInvalidRedirectURI, host)
	}

	port := u.Port()
	if port == "" {
		return "", "", fmt.Errorf("%w: missing port in %s", ErrInvalidRedirectURI, redirect)
	}

	path = u.Path
	if path == "" {
		path = "/"
	}

	return net.JoinHostPort(host, port), path, nil
}

// GenerateState returns an unpredictable anti-forgery state token.
func GenerateState() string {
	return uuid.New().String()
}

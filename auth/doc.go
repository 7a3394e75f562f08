// Package auth implements the OAuth2 Authorization Code flow against the
// Spotify accounts service and manages the resulting token lifecycle.
//
// # Flow
//
// [Flow] drives a one-time authorization: it builds the authorize URL,
// captures the redirect on a loopback listener, and exchanges the
// authorization code for a [TokenSet].
//
// The redirect capture is single-use. Exactly one callback is consumed and
// the listener is torn down on every exit path (success, denial, state
// mismatch, timeout, cancellation).
//
// # Store
//
// [Store] owns the live [TokenSet]. All reads and writes are serialized, so
// one store can back any number of concurrent API calls.
//
// # Refresher
//
// [Refresher] keeps the store valid. Concurrent callers that discover an
// expired token share a single in-flight refresh exchange; when the token
// endpoint rejects the refresh grant the store is invalidated and
// [ErrReauthorizationRequired] is returned, which means the user has to go
// through [Flow.Authorize] again.
package auth

package spotify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrorKind classifies an [APIError].
type ErrorKind string

const (
	KindBadRequest        ErrorKind = "bad_request"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindNotFound          ErrorKind = "not_found"
	KindRateLimited       ErrorKind = "rate_limited"
	KindRemoteFault       ErrorKind = "remote_fault"
	KindMalformedResponse ErrorKind = "malformed_response"
	KindNetwork           ErrorKind = "network"
)

// APIError is the uniform failure shape the request pipeline produces. It
// distinguishes "the server said no" (status and kind mapped from the
// response) from "the client failed to understand yes"
// ([KindMalformedResponse]).
type APIError struct {
	Status     int
	Kind       ErrorKind
	Message    string
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("spotify: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("spotify: %s (status %d): %s", e.Kind, e.Status, e.Message)
}

// Retryable reports whether the caller may sensibly retry the request,
// possibly after [APIError.RetryAfter]. The pipeline itself never retries
// or sleeps.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindRemoteFault, KindNetwork:
		return true
	default:
		return false
	}
}

// errorEnvelope is the provider's regular error body:
// {"error": {"status": 404, "message": "Not Found"}}.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// newAPIError maps a non-success response onto the error taxonomy, parsing
// the JSON error envelope when present and falling back to the raw body.
func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{
		Status: resp.StatusCode,
		Kind:   kindFromStatus(resp.StatusCode),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Message = bodySnippet(body)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
	}

	return apiErr
}

func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindBadRequest
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindRemoteFault
	default:
		return KindBadRequest
	}
}

// parseRetryAfter handles both forms of the Retry-After header: a delay in
// seconds and an HTTP date. Unparseable values yield zero; the caller still
// sees [KindRateLimited].
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// bodySnippet keeps error messages readable when the body isn't the
// expected envelope.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "empty response body"
	}
	const max = 200
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// UnsupportedVariantError reports a playable item whose discriminant names
// a variant this client does not decode.
type UnsupportedVariantError struct {
	Type string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported playable item type %q", e.Type)
}

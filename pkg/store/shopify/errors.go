package shopify

import (
	"fmt"
	"strings"
)

// AuthError reports a rejected credential (HTTP 401). Fatal: the version
// fallback ladder never retries it.
type AuthError struct {
	Store  string
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("store %q: access token rejected (status %d)", e.Store, e.Status)
}

// PermissionError reports a token that lacks the required scope (HTTP 403).
type PermissionError struct {
	Store  string
	Status int
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("store %q: token lacks permission (status %d)", e.Store, e.Status)
}

// NetworkError wraps a connection or timeout failure.
type NetworkError struct {
	Store string
	Err   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("store %q: upstream unreachable: %v", e.Store, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response that is neither an auth nor a
// permission failure; it sends the fetch down the version ladder.
type StatusError struct {
	Store  string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store %q: unexpected status %d", e.Store, e.Status)
}

// VersionAttempt records the outcome of one rung of the fallback ladder.
type VersionAttempt struct {
	Version string
	Status  int // 0 when the failure was not an HTTP status
	Err     error
}

// VersionExhaustedError reports that every configured API version failed.
type VersionExhaustedError struct {
	Store    string
	Resource string
	Attempts []VersionAttempt
}

func (e *VersionExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		if a.Status != 0 {
			parts = append(parts, fmt.Sprintf("%s: status %d", a.Version, a.Status))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %v", a.Version, a.Err))
		}
	}
	return fmt.Sprintf("store %q: all API versions failed for %s [%s]",
		e.Store, e.Resource, strings.Join(parts, "; "))
}

// PartialPageError reports a page failure mid-pagination. The partially
// accumulated records are discarded, never returned as complete.
type PartialPageError struct {
	Page int
	Err  error
}

func (e *PartialPageError) Error() string {
	return fmt.Sprintf("page %d failed mid-pagination, partial results discarded: %v", e.Page, e.Err)
}

func (e *PartialPageError) Unwrap() error { return e.Err }

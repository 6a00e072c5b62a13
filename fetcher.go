package giftwatch

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET request and returns the response body.
	// Failures are reported as *FetchError.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// FetchErrorKind is a coarse category of fetch failure.
type FetchErrorKind string

// FetchErrorKind constants.
const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchDNS        FetchErrorKind = "dns"
	FetchConnection FetchErrorKind = "connection"
	FetchTLS        FetchErrorKind = "tls"
	FetchStatus     FetchErrorKind = "status"
	FetchRedirect   FetchErrorKind = "redirect"
	FetchCanceled   FetchErrorKind = "canceled"
	FetchInvalidURL FetchErrorKind = "invalid-url"
	FetchBody       FetchErrorKind = "body"
	FetchUnknown    FetchErrorKind = "unknown"
)

// FetchError describes a failed fetch.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int // set for FetchStatus
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == FetchStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FetchErrorKindOf returns the kind of a fetch failure.
// Context errors map to FetchCanceled or FetchTimeout; any other error
// that is not a *FetchError maps to FetchUnknown.
func FetchErrorKindOf(err error) FetchErrorKind {
	var fe *FetchError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fe):
		return fe.Kind
	case errors.Is(err, context.DeadlineExceeded):
		return FetchTimeout
	case errors.Is(err, context.Canceled):
		return FetchCanceled
	}
	return FetchUnknown
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// Package http provides an HTTP-based implementation of giftwatch.Fetcher
// for fetching product pages. It does not execute JavaScript.
package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/fwojciec/giftwatch"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for a single HTTP request.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the tool to the sites it fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; GiftWatch/1.0; +https://github.com/fwojciec/giftwatch)"

// Request headers sent with every fetch.
const (
	acceptLanguage = "de-DE,de;q=0.9,en;q=0.8"
	accept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// maxRedirects matches net/http's default redirect limit.
const maxRedirects = 10

// maxBodyBytes caps the response body to keep huge pages from exhausting memory.
const maxBodyBytes = 10 << 20

var errTooManyRedirects = errors.New("stopped after too many redirects")

// Ensure Fetcher implements giftwatch.Fetcher at compile time.
var _ giftwatch.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for a single HTTP request.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, following redirects.
// The body is decoded to UTF-8 using the declared or sniffed charset.
// Any failure, including a non-2xx status, is returned as *giftwatch.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", &giftwatch.FetchError{Kind: giftwatch.FetchInvalidURL, URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &giftwatch.FetchError{Kind: giftwatch.FetchInvalidURL, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &giftwatch.FetchError{Kind: classify(err), URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &giftwatch.FetchError{Kind: giftwatch.FetchStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &giftwatch.FetchError{Kind: giftwatch.FetchBody, URL: rawURL, Err: err}
	}

	html, err := io.ReadAll(body)
	if err != nil {
		kind := classify(err)
		if kind == giftwatch.FetchUnknown {
			kind = giftwatch.FetchBody
		}
		return "", &giftwatch.FetchError{Kind: kind, URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}

	return string(html), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// classify maps a transport error to a stable failure kind.
func classify(err error) giftwatch.FetchErrorKind {
	if errors.Is(err, errTooManyRedirects) {
		return giftwatch.FetchRedirect
	}
	if errors.Is(err, context.Canceled) {
		return giftwatch.FetchCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return giftwatch.FetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return giftwatch.FetchTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return giftwatch.FetchDNS
	}

	if isTLSError(err) {
		return giftwatch.FetchTLS
	}

	var opErr *net.OpError
	switch {
	case errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return giftwatch.FetchConnection
	}

	return giftwatch.FetchUnknown
}

func isTLSError(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		headerErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &headerErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

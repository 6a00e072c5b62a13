package giftwatch_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/giftwatch"
	"github.com/stretchr/testify/assert"
)

func TestPriceResult_Found(t *testing.T) {
	t.Parallel()

	assert.True(t, (&giftwatch.PriceResult{Price: 9.99, Currency: giftwatch.EUR, Source: "text:eur"}).Found())
	assert.False(t, giftwatch.NotFound().Found())
	assert.False(t, (*giftwatch.PriceResult)(nil).Found())
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	r := giftwatch.NotFound()

	assert.Zero(t, r.Price)
	assert.Empty(t, r.Currency)
	assert.Equal(t, "not-found", r.Source)
}

func TestRequestError(t *testing.T) {
	t.Parallel()

	r := giftwatch.RequestError(giftwatch.FetchTimeout)

	assert.False(t, r.Found())
	assert.Empty(t, r.Currency)
	assert.Equal(t, "request-error:timeout", r.Source)
	assert.True(t, giftwatch.IsRequestError(r.Source))
	assert.False(t, giftwatch.IsRequestError("json-ld:price"))
}

func TestFetchErrorKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want giftwatch.FetchErrorKind
	}{
		{"nil", nil, ""},
		{"fetch error", &giftwatch.FetchError{Kind: giftwatch.FetchDNS}, giftwatch.FetchDNS},
		{"wrapped fetch error", fmt.Errorf("attempt 2: %w", &giftwatch.FetchError{Kind: giftwatch.FetchTLS}), giftwatch.FetchTLS},
		{"deadline", context.DeadlineExceeded, giftwatch.FetchTimeout},
		{"canceled", context.Canceled, giftwatch.FetchCanceled},
		{"other", errors.New("boom"), giftwatch.FetchUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, giftwatch.FetchErrorKindOf(tt.err))
		})
	}
}

func TestFetchError_Error(t *testing.T) {
	t.Parallel()

	err := &giftwatch.FetchError{Kind: giftwatch.FetchStatus, URL: "https://shop.example/p", StatusCode: 503}
	assert.Equal(t, "fetch https://shop.example/p: HTTP 503", err.Error())

	inner := errors.New("connection refused")
	err = &giftwatch.FetchError{Kind: giftwatch.FetchConnection, URL: "https://shop.example/p", Err: inner}
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, inner)
}

package track_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/fwojciec/giftwatch/mock"
	"github.com/fwojciec/giftwatch/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerReturning(result *giftwatch.PriceResult) *mock.PriceChecker {
	return &mock.PriceChecker{
		CheckPriceFn: func(context.Context, string) *giftwatch.PriceResult {
			return result
		},
	}
}

func noAlert() *mock.AlertService {
	return &mock.AlertService{
		FindAlertByIdeaFn: func(context.Context, string) (*giftwatch.Alert, error) {
			return nil, giftwatch.Errorf(giftwatch.ENOTFOUND, "alert not found")
		},
	}
}

func TestTracker_CheckIdea(t *testing.T) {
	t.Parallel()

	idea := &giftwatch.Idea{ID: "idea-1", Title: "Lamp", URL: "https://shop.example/lamp", Currency: giftwatch.CHF, Active: true}

	t.Run("records found price", func(t *testing.T) {
		t.Parallel()

		var saved *giftwatch.PricePoint
		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 49.9, Currency: giftwatch.EUR, Source: "json-ld:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(_ context.Context, p *giftwatch.PricePoint) error {
					saved = p
					return nil
				},
			},
			Alerts: noAlert(),
		}

		check, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "idea-1", saved.IdeaID)
		assert.InDelta(t, 49.9, saved.Price, 1e-9)
		assert.Equal(t, giftwatch.EUR, saved.Currency)
		assert.Equal(t, "json-ld:price", saved.Source)
		assert.Same(t, saved, check.PricePoint)
		assert.Nil(t, check.Alert)
	})

	t.Run("falls back to the idea currency", func(t *testing.T) {
		t.Parallel()

		var saved *giftwatch.PricePoint
		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 12, Source: "custom"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(_ context.Context, p *giftwatch.PricePoint) error {
					saved = p
					return nil
				},
			},
			Alerts: noAlert(),
		}

		_, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		assert.Equal(t, giftwatch.CHF, saved.Currency)
	})

	t.Run("records nothing when no price is found", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Checker: checkerReturning(giftwatch.RequestError(giftwatch.FetchTimeout)),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error {
					t.Fatal("no price point expected")
					return nil
				},
			},
		}

		check, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		assert.Nil(t, check.PricePoint)
		assert.Equal(t, "request-error:timeout", check.Result.Source)
	})

	t.Run("marks alert triggered when price reaches threshold", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)
		var markedAt time.Time
		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 40, Currency: giftwatch.EUR, Source: "meta:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error { return nil },
			},
			Alerts: &mock.AlertService{
				FindAlertByIdeaFn: func(_ context.Context, ideaID string) (*giftwatch.Alert, error) {
					return &giftwatch.Alert{IdeaID: ideaID, Threshold: 40, Active: true}, nil
				},
				MarkAlertTriggeredFn: func(_ context.Context, ideaID string, at time.Time) error {
					assert.Equal(t, "idea-1", ideaID)
					markedAt = at
					return nil
				},
			},
			Now: func() time.Time { return now },
		}

		check, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		require.NotNil(t, check.Alert)
		assert.Equal(t, now, markedAt)
		require.NotNil(t, check.Alert.LastTriggeredAt)
		assert.Equal(t, now, *check.Alert.LastTriggeredAt)
	})

	t.Run("leaves alert alone above threshold", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 40.01, Currency: giftwatch.EUR, Source: "meta:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error { return nil },
			},
			Alerts: &mock.AlertService{
				FindAlertByIdeaFn: func(_ context.Context, ideaID string) (*giftwatch.Alert, error) {
					return &giftwatch.Alert{IdeaID: ideaID, Threshold: 40, Active: true}, nil
				},
			},
		}

		check, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		assert.Nil(t, check.Alert)
	})

	t.Run("leaves inactive alert alone", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 5, Currency: giftwatch.EUR, Source: "meta:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error { return nil },
			},
			Alerts: &mock.AlertService{
				FindAlertByIdeaFn: func(_ context.Context, ideaID string) (*giftwatch.Alert, error) {
					return &giftwatch.Alert{IdeaID: ideaID, Threshold: 40, Active: false}, nil
				},
			},
		}

		check, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		assert.Nil(t, check.Alert)
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 5, Currency: giftwatch.EUR, Source: "meta:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error {
					return errors.New("disk full")
				},
			},
		}

		_, err := tr.CheckIdea(context.Background(), idea)

		assert.EqualError(t, err, "disk full")
	})

	t.Run("waits for the idea's domain", func(t *testing.T) {
		t.Parallel()

		var domain string
		tr := &track.Tracker{
			Checker: checkerReturning(giftwatch.NotFound()),
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, d string) error {
					domain = d
					return nil
				},
			},
		}

		_, err := tr.CheckIdea(context.Background(), idea)

		require.NoError(t, err)
		assert.Equal(t, "shop.example", domain)
	})
}

func TestTracker_CheckAll(t *testing.T) {
	t.Parallel()

	t.Run("checks active ideas and aggregates results", func(t *testing.T) {
		t.Parallel()

		ideas := []*giftwatch.Idea{
			{ID: "a", URL: "https://a.example/p", Active: true},
			{ID: "b", URL: "https://b.example/p", Active: true},
			{ID: "c", URL: "https://c.example/p", Active: true},
			{ID: "d", URL: "https://d.example/p", Active: true},
		}
		results := map[string]*giftwatch.PriceResult{
			"https://a.example/p": {Price: 10, Currency: giftwatch.EUR, Source: "meta:price"},
			"https://b.example/p": {Price: 20, Currency: giftwatch.EUR, Source: "text:eur"},
			"https://c.example/p": giftwatch.NotFound(),
			"https://d.example/p": giftwatch.RequestError(giftwatch.FetchDNS),
		}

		var mu sync.Mutex
		var recorded []string
		var filter giftwatch.IdeaFilter
		tr := &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(_ context.Context, f giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					filter = f
					return ideas, nil
				},
			},
			Checker: &mock.PriceChecker{
				CheckPriceFn: func(_ context.Context, url string) *giftwatch.PriceResult {
					return results[url]
				},
			},
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(_ context.Context, p *giftwatch.PricePoint) error {
					mu.Lock()
					defer mu.Unlock()
					recorded = append(recorded, p.IdeaID)
					return nil
				},
			},
			Alerts: &mock.AlertService{
				FindAlertByIdeaFn: func(_ context.Context, ideaID string) (*giftwatch.Alert, error) {
					if ideaID == "a" {
						return &giftwatch.Alert{IdeaID: "a", Threshold: 15, Active: true}, nil
					}
					return nil, giftwatch.Errorf(giftwatch.ENOTFOUND, "alert not found")
				},
				MarkAlertTriggeredFn: func(context.Context, string, time.Time) error { return nil },
			},
			Concurrency: 2,
		}

		result, err := tr.CheckAll(context.Background(), nil)

		require.NoError(t, err)
		require.NotNil(t, filter.Active)
		assert.True(t, *filter.Active)
		assert.Equal(t, 4, result.Checked)
		assert.Equal(t, 2, result.Recorded)
		assert.Equal(t, 1, result.NotFound)
		assert.Equal(t, 1, result.Failed)
		assert.ElementsMatch(t, []string{"a", "b"}, recorded)
		require.Len(t, result.Triggered, 1)
		assert.Equal(t, "a", result.Triggered[0].Idea.ID)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					return []*giftwatch.Idea{
						{ID: "a", URL: "https://a.example/p"},
						{ID: "b", URL: "https://b.example/p"},
					}, nil
				},
			},
			Checker: checkerReturning(giftwatch.NotFound()),
		}

		var events []track.ProgressEvent
		_, err := tr.CheckAll(context.Background(), func(e track.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, track.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, track.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, track.ProgressCompleted, events[2].Type)
		assert.Equal(t, 2, events[2].Completed)
		assert.Equal(t, track.ProgressFinished, events[3].Type)
	})

	t.Run("counts ideas that fail to record", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					return []*giftwatch.Idea{{ID: "a", URL: "https://a.example/p"}}, nil
				},
			},
			Checker: checkerReturning(&giftwatch.PriceResult{Price: 1, Currency: giftwatch.EUR, Source: "meta:price"}),
			Prices: &mock.PricePointService{
				CreatePricePointFn: func(context.Context, *giftwatch.PricePoint) error {
					return giftwatch.Errorf(giftwatch.ENOTFOUND, "idea not found")
				},
			},
		}

		var failed []track.ProgressEvent
		result, err := tr.CheckAll(context.Background(), func(e track.ProgressEvent) {
			if e.Type == track.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, failed, 1)
		assert.Equal(t, giftwatch.ENOTFOUND, giftwatch.ErrorCode(failed[0].Error))
	})

	t.Run("returns error when ideas cannot be listed", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					return nil, errors.New("database locked")
				},
			},
		}

		_, err := tr.CheckAll(context.Background(), nil)

		assert.EqualError(t, err, "database locked")
	})

	t.Run("handles no active ideas", func(t *testing.T) {
		t.Parallel()

		tr := &track.Tracker{
			Ideas: &mock.IdeaService{
				FindIdeasFn: func(context.Context, giftwatch.IdeaFilter) ([]*giftwatch.Idea, error) {
					return nil, nil
				},
			},
		}

		result, err := tr.CheckAll(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Checked)
	})
}

package track

import (
	"context"
	"time"

	"github.com/fwojciec/giftwatch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of ideas checked in parallel by CheckAll.
const DefaultConcurrency = 4

// Tracker re-samples the prices of saved ideas, records every observation
// and evaluates price alerts.
type Tracker struct {
	Ideas       giftwatch.IdeaService
	Prices      giftwatch.PricePointService
	Alerts      giftwatch.AlertService
	Checker     giftwatch.PriceChecker
	RateLimiter giftwatch.DomainLimiter // optional
	Concurrency int

	// Now defaults to time.Now.
	Now func() time.Time
}

// Check is the outcome of checking a single idea.
type Check struct {
	Idea   *giftwatch.Idea
	Result *giftwatch.PriceResult

	// PricePoint is the recorded observation, nil when no price was found.
	PricePoint *giftwatch.PricePoint

	// Alert is set when the idea's alert fired on this check.
	Alert *giftwatch.Alert
}

// Result holds the outcome of a CheckAll run.
type Result struct {
	Checked   int
	Recorded  int
	NotFound  int
	Failed    int
	Triggered []*Check
}

// ProgressEvent reports progress during a CheckAll run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Idea      *giftwatch.Idea
	Check     *Check
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting check progress.
type ProgressFunc func(event ProgressEvent)

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

// CheckIdea checks the current price of one idea. A found price is stored
// as a new observation in the idea's currency when the page did not name
// one, and the idea's alert is marked triggered when the price reaches its
// threshold. Pages without a price are not an error; the returned Check
// then has no PricePoint.
func (t *Tracker) CheckIdea(ctx context.Context, idea *giftwatch.Idea) (*Check, error) {
	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(ctx, Domain(idea.URL)); err != nil {
			return nil, err
		}
	}

	check := &Check{
		Idea:   idea,
		Result: t.Checker.CheckPrice(ctx, idea.URL),
	}
	if !check.Result.Found() {
		return check, nil
	}

	currency := check.Result.Currency
	if currency == "" {
		currency = idea.Currency
	}
	if currency == "" {
		currency = giftwatch.DefaultCurrency
	}

	point := &giftwatch.PricePoint{
		IdeaID:   idea.ID,
		Price:    check.Result.Price,
		Currency: currency,
		Source:   check.Result.Source,
	}
	if err := t.Prices.CreatePricePoint(ctx, point); err != nil {
		return nil, err
	}
	check.PricePoint = point

	if t.Alerts == nil {
		return check, nil
	}
	alert, err := t.Alerts.FindAlertByIdea(ctx, idea.ID)
	if giftwatch.ErrorCode(err) == giftwatch.ENOTFOUND {
		return check, nil
	} else if err != nil {
		return nil, err
	}
	if !alert.Triggered(point.Price) {
		return check, nil
	}

	at := t.now().UTC()
	if err := t.Alerts.MarkAlertTriggered(ctx, idea.ID, at); err != nil {
		return nil, err
	}
	alert.LastTriggeredAt = &at
	check.Alert = alert

	return check, nil
}

// checkResult holds the outcome of checking a single idea in CheckAll.
type checkResult struct {
	idea  *giftwatch.Idea
	check *Check
	err   error
}

// CheckAll checks every active idea concurrently. Failures of individual
// ideas are counted and reported through progress; only a failure to list
// the ideas aborts the run. The progress callback, if provided, is called
// from the calling goroutine.
func (t *Tracker) CheckAll(ctx context.Context, progress ProgressFunc) (*Result, error) {
	active := true
	ideas, err := t.Ideas.FindIdeas(ctx, giftwatch.IdeaFilter{Active: &active})
	if err != nil {
		return nil, err
	}

	concurrency := t.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(ideas)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan checkResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, idea := range ideas {
			g.Go(func() error {
				check, err := t.CheckIdea(gctx, idea)
				resultCh <- checkResult{idea: idea, check: check, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{}
	for r := range resultCh {
		result.Checked++

		if r.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: result.Checked,
					Total:     total,
					Idea:      r.idea,
					Error:     r.err,
				})
			}
			continue
		}

		switch {
		case r.check.PricePoint != nil:
			result.Recorded++
		case giftwatch.IsRequestError(r.check.Result.Source):
			result.Failed++
		default:
			result.NotFound++
		}
		if r.check.Alert != nil {
			result.Triggered = append(result.Triggered, r.check)
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: result.Checked,
				Total:     total,
				Idea:      r.idea,
				Check:     r.check,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return result, nil
}

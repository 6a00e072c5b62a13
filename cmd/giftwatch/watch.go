package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/fwojciec/giftwatch/cron"
)

// Run executes the watch command. It blocks until the context is canceled.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if c.Concurrency > 0 {
		deps.Tracker.Concurrency = c.Concurrency
	}

	opts := []cron.Option{cron.WithLogger(deps.Logger)}
	if !c.NoInitial {
		opts = append(opts, cron.WithRunOnStart())
	}
	scheduler := cron.NewScheduler(opts...)

	err := scheduler.Schedule(c.Schedule, func(ctx context.Context) {
		fmt.Fprintf(deps.Stdout, "%s checking prices\n", time.Now().Format(timeLayout))
		result, err := deps.Tracker.CheckAll(ctx, nil)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", giftwatch.ErrorMessage(err))
			return
		}
		printSummary(deps, result)
	})
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Watching prices on schedule %q. Press Ctrl+C to stop.\n", c.Schedule)
	scheduler.Start()

	<-deps.Ctx.Done()
	scheduler.Stop()

	fmt.Fprintln(deps.Stdout, "Stopped watching.")
	return nil
}

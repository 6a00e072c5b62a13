package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
	"github.com/fwojciec/giftwatch/track"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	if c.ID != "" {
		idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
		if err != nil {
			return fail(deps, err)
		}
		check, err := deps.Tracker.CheckIdea(deps.Ctx, idea)
		if err != nil {
			return fail(deps, err)
		}
		printCheck(deps, check)
		return nil
	}

	if c.Concurrency > 0 {
		deps.Tracker.Concurrency = c.Concurrency
	}

	result, err := deps.Tracker.CheckAll(deps.Ctx, checkProgress(deps))
	if err != nil {
		return fail(deps, err)
	}
	printSummary(deps, result)
	return nil
}

// checkProgress prints one line per checked idea.
func checkProgress(deps *Dependencies) track.ProgressFunc {
	return func(event track.ProgressEvent) {
		switch event.Type {
		case track.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Checking %d ideas\n", event.Total)
		case track.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] ", event.Completed, event.Total)
			printCheck(deps, event.Check)
		case track.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: error: %s\n", event.Completed, event.Total, event.Idea.Title, giftwatch.ErrorMessage(event.Error))
		}
	}
}

// printCheck prints the outcome of checking one idea.
func printCheck(deps *Dependencies, check *track.Check) {
	result := check.Result
	switch {
	case result.Found():
		fmt.Fprintf(deps.Stdout, "%s: %s (%s)\n", check.Idea.Title, giftwatch.FormatAmount(check.PricePoint.Price, check.PricePoint.Currency), result.Source)
	case giftwatch.IsRequestError(result.Source):
		fmt.Fprintf(deps.Stdout, "%s: request failed (%s)\n", check.Idea.Title, result.Source)
	default:
		fmt.Fprintf(deps.Stdout, "%s: no price found\n", check.Idea.Title)
	}

	if check.Alert != nil {
		fmt.Fprintf(deps.Stdout, "  ALERT: %s is at or below %s\n", check.Idea.Title, giftwatch.FormatAmount(check.Alert.Threshold, check.PricePoint.Currency))
	}
}

func printSummary(deps *Dependencies, result *track.Result) {
	fmt.Fprintf(deps.Stdout, "Checked %d ideas: %d prices recorded, %d without price, %d failed\n",
		result.Checked, result.Recorded, result.NotFound, result.Failed)
	for _, check := range result.Triggered {
		fmt.Fprintf(deps.Stdout, "  ALERT: %s is at %s\n", check.Idea.Title, giftwatch.FormatAmount(check.PricePoint.Price, check.PricePoint.Currency))
	}
}

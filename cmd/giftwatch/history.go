package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	points, err := deps.Prices.FindPricePoints(deps.Ctx, idea.ID)
	if err != nil {
		return fail(deps, err)
	}

	if len(points) == 0 {
		fmt.Fprintf(deps.Stdout, "No prices recorded for %q. Use 'giftwatch check %s' to fetch one.\n", idea.Title, idea.ID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s\n", idea.Title)
	lowest := points[0]
	for _, p := range points {
		fmt.Fprintf(deps.Stdout, "  %s  %12s  %s\n", p.CreatedAt.Format(timeLayout), giftwatch.FormatAmount(p.Price, p.Currency), p.Source)
		if p.Price < lowest.Price {
			lowest = p
		}
	}
	fmt.Fprintf(deps.Stdout, "Lowest: %s on %s\n", giftwatch.FormatAmount(lowest.Price, lowest.Currency), lowest.CreatedAt.Format(timeLayout))
	return nil
}

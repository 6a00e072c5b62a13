package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := giftwatch.IdeaFilter{}
	if c.Active {
		active := true
		filter.Active = &active
	}

	ideas, err := deps.Ideas.FindIdeas(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(ideas) == 0 {
		fmt.Fprintln(deps.Stdout, "No ideas found. Use 'giftwatch add' to create one.")
		return nil
	}

	for _, idea := range ideas {
		price, err := latestPrice(deps, idea.ID)
		if err != nil {
			return fail(deps, err)
		}
		status := ""
		if !idea.Active {
			status = "  (paused)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s%s\n", idea.ID, idea.Title, price, idea.URL, status)
	}

	return nil
}

// latestPrice renders the most recent price of an idea, or "-" when none
// has been recorded.
func latestPrice(deps *Dependencies, ideaID string) (string, error) {
	point, err := deps.Prices.FindLatestPricePoint(deps.Ctx, ideaID)
	if giftwatch.ErrorCode(err) == giftwatch.ENOTFOUND {
		return "-", nil
	} else if err != nil {
		return "", err
	}
	return giftwatch.FormatAmount(point.Price, point.Currency), nil
}

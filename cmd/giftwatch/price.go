package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the price command.
func (c *PriceCmd) Run(deps *Dependencies) error {
	amount, ok := giftwatch.ParseDecimal(c.Amount)
	if !ok {
		return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "invalid amount %q", c.Amount))
	}

	idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	currency := idea.Currency
	if c.Currency != "" {
		if currency, ok = giftwatch.ParseCurrency(c.Currency); !ok {
			return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "unsupported currency %q", c.Currency))
		}
	}

	point := &giftwatch.PricePoint{
		IdeaID:   idea.ID,
		Price:    amount,
		Currency: currency,
		Source:   giftwatch.SourceManual,
	}
	if err := deps.Prices.CreatePricePoint(deps.Ctx, point); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Recorded %s for %q\n", giftwatch.FormatAmount(point.Price, point.Currency), idea.Title)
	return nil
}

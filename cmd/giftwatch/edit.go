package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the edit command.
func (c *EditCmd) Run(deps *Dependencies) error {
	upd := giftwatch.IdeaUpdate{
		Title:    c.Title,
		URL:      c.URL,
		Person:   c.Person,
		Occasion: c.Occasion,
		Notes:    c.Notes,
	}
	if c.Currency != nil {
		currency, ok := giftwatch.ParseCurrency(*c.Currency)
		if !ok {
			return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "unsupported currency %q", *c.Currency))
		}
		upd.Currency = &currency
	}
	if c.Pause || c.Resume {
		active := c.Resume
		upd.Active = &active
	}

	if upd == (giftwatch.IdeaUpdate{}) {
		return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "nothing to change. Run 'giftwatch edit --help' to see the options"))
	}

	idea, err := deps.Ideas.UpdateIdea(deps.Ctx, c.ID, upd)
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Updated idea %q\n", idea.Title)
	return nil
}

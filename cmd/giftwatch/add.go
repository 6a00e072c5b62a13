package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	idea := &giftwatch.Idea{
		Title:    c.Title,
		URL:      c.URL,
		Person:   c.Person,
		Occasion: c.Occasion,
		Notes:    c.Notes,
		Currency: giftwatch.Currency(c.Currency),
	}

	if err := deps.Ideas.CreateIdea(deps.Ctx, idea); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Added idea %q (%s)\n", idea.Title, idea.ID)

	if !c.Check {
		return nil
	}

	check, err := deps.Tracker.CheckIdea(deps.Ctx, idea)
	if err != nil {
		return fail(deps, err)
	}
	printCheck(deps, check)
	return nil
}

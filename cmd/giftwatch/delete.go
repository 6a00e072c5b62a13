package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "use --force to confirm deletion"))
	}

	idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
	if giftwatch.ErrorCode(err) == giftwatch.ENOTFOUND {
		return fail(deps, giftwatch.Errorf(giftwatch.ENOTFOUND, "idea %q not found. Use 'giftwatch list' to see available ideas.", c.ID))
	} else if err != nil {
		return fail(deps, err)
	}

	if err := deps.Ideas.DeleteIdea(deps.Ctx, idea.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted idea %q\n", idea.Title)
	return nil
}

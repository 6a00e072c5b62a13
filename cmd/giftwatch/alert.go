package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the alert command.
func (c *AlertCmd) Run(deps *Dependencies) error {
	idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	alert := &giftwatch.Alert{IdeaID: idea.ID, Active: !c.Off}

	switch {
	case c.Threshold != "":
		threshold, ok := giftwatch.ParseDecimal(c.Threshold)
		if !ok {
			return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "invalid threshold %q", c.Threshold))
		}
		alert.Threshold = threshold
	case c.Off:
		existing, err := deps.Alerts.FindAlertByIdea(deps.Ctx, idea.ID)
		if err != nil {
			return fail(deps, err)
		}
		alert.Threshold = existing.Threshold
	default:
		return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "threshold required"))
	}

	if err := deps.Alerts.SetAlert(deps.Ctx, alert); err != nil {
		return fail(deps, err)
	}

	if !alert.Active {
		fmt.Fprintf(deps.Stdout, "Alert disabled for %q\n", idea.Title)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Alert set for %q at or below %s\n", idea.Title, giftwatch.FormatAmount(alert.Threshold, idea.Currency))
	return nil
}

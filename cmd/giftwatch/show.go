package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	idea, err := deps.Ideas.FindIdeaByID(deps.Ctx, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	price, err := latestPrice(deps, idea.ID)
	if err != nil {
		return fail(deps, err)
	}

	w := deps.Stdout
	fmt.Fprintf(w, "%s\n", idea.Title)
	fmt.Fprintf(w, "  ID:       %s\n", idea.ID)
	fmt.Fprintf(w, "  URL:      %s\n", idea.URL)
	if idea.Person != "" {
		fmt.Fprintf(w, "  For:      %s\n", idea.Person)
	}
	if idea.Occasion != "" {
		fmt.Fprintf(w, "  Occasion: %s\n", idea.Occasion)
	}
	if idea.Notes != "" {
		fmt.Fprintf(w, "  Notes:    %s\n", idea.Notes)
	}
	fmt.Fprintf(w, "  Currency: %s\n", idea.Currency)
	fmt.Fprintf(w, "  Tracking: %s\n", onOff(idea.Active))
	fmt.Fprintf(w, "  Price:    %s\n", price)

	alert, err := deps.Alerts.FindAlertByIdea(deps.Ctx, idea.ID)
	if giftwatch.ErrorCode(err) == giftwatch.ENOTFOUND {
		fmt.Fprintf(w, "  Alert:    none\n")
		return nil
	} else if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(w, "  Alert:    at or below %s (%s)\n", giftwatch.FormatAmount(alert.Threshold, idea.Currency), onOff(alert.Active))
	if alert.LastTriggeredAt != nil {
		fmt.Fprintf(w, "  Fired:    %s\n", alert.LastTriggeredAt.Format(timeLayout))
	}
	return nil
}

// timeLayout is how timestamps are printed.
const timeLayout = "2006-01-02 15:04"

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

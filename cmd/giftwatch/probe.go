package main

import (
	"fmt"

	"github.com/fwojciec/giftwatch"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	if !giftwatch.IsValidURL(c.URL) {
		return fail(deps, giftwatch.Errorf(giftwatch.EINVALID, "URL must start with http:// or https://"))
	}

	result := deps.Checker.CheckPrice(deps.Ctx, c.URL)
	if !result.Found() {
		fmt.Fprintf(deps.Stdout, "No price found (%s)\n", result.Source)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", giftwatch.FormatAmount(result.Price, result.Currency), result.Source)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/giftwatch"
	"github.com/fwojciec/giftwatch/track"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Ideas   giftwatch.IdeaService
	Prices  giftwatch.PricePointService
	Alerts  giftwatch.AlertService
	Checker giftwatch.PriceChecker
	Tracker *track.Tracker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool          `short:"v" help:"Log fetches and price checks to stderr"`
	Timeout time.Duration `default:"15s" help:"Timeout per fetch attempt"`

	Add     AddCmd     `cmd:"" help:"Save a gift idea"`
	List    ListCmd    `cmd:"" help:"List gift ideas with their latest price"`
	Show    ShowCmd    `cmd:"" help:"Show an idea with its latest price and alert"`
	Edit    EditCmd    `cmd:"" help:"Change an idea"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an idea with its price history"`
	Check   CheckCmd   `cmd:"" help:"Fetch current prices and record them"`
	Price   PriceCmd   `cmd:"" help:"Record a price by hand"`
	History HistoryCmd `cmd:"" help:"Show the price history of an idea"`
	Alert   AlertCmd   `cmd:"" help:"Set the price alert of an idea"`
	Watch   WatchCmd   `cmd:"" help:"Check prices on a schedule until interrupted"`
	Probe   ProbeCmd   `cmd:"" help:"Extract the price of a URL without saving anything"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Title    string `arg:"" help:"Idea title"`
	URL      string `arg:"" help:"Product URL"`
	Person   string `short:"p" help:"Who the gift is for"`
	Occasion string `short:"o" help:"Occasion, e.g. birthday"`
	Notes    string `short:"n" help:"Free-form notes"`
	Currency string `short:"c" enum:"EUR,USD,CHF,GBP" default:"EUR" help:"Fallback currency (EUR, USD, CHF or GBP)"`
	Check    bool   `help:"Fetch the current price right away"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Active bool `short:"a" help:"Only show ideas that are being tracked"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Idea ID"`
}

// EditCmd is the "edit" subcommand.
type EditCmd struct {
	ID       string  `arg:"" help:"Idea ID"`
	Title    *string `help:"New title"`
	URL      *string `help:"New product URL"`
	Person   *string `help:"Who the gift is for"`
	Occasion *string `help:"Occasion"`
	Notes    *string `help:"Notes"`
	Currency *string `help:"Fallback currency (EUR, USD, CHF or GBP)"`
	Pause    bool    `help:"Stop tracking the idea" xor:"active"`
	Resume   bool    `help:"Resume tracking the idea" xor:"active"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Idea ID"`
	Force bool   `help:"Confirm deletion"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	ID          string `arg:"" optional:"" help:"Idea ID; all active ideas when omitted"`
	Concurrency int    `short:"c" default:"4" help:"Ideas checked in parallel"`
}

// PriceCmd is the "price" subcommand.
type PriceCmd struct {
	ID       string `arg:"" help:"Idea ID"`
	Amount   string `arg:"" help:"Price, e.g. 49,90 or 1,299.00"`
	Currency string `short:"c" help:"Currency (EUR, USD, CHF or GBP); defaults to the idea's"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID string `arg:"" help:"Idea ID"`
}

// AlertCmd is the "alert" subcommand.
type AlertCmd struct {
	ID        string `arg:"" help:"Idea ID"`
	Threshold string `arg:"" optional:"" help:"Alert when the price is at or below this amount"`
	Off       bool   `help:"Disable the alert"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Schedule    string `short:"s" default:"0 */6 * * *" help:"Cron schedule, e.g. '@hourly' or '0 8 * * *'"`
	Concurrency int    `short:"c" default:"4" help:"Ideas checked in parallel"`
	NoInitial   bool   `help:"Wait for the first scheduled run instead of checking right away"`
}

// ProbeCmd is the "probe" subcommand.
type ProbeCmd struct {
	URL string `arg:"" help:"Product URL"`
}

// fail prints err the way every command reports errors and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", giftwatch.ErrorMessage(err))
	return err
}

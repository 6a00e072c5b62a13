package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/giftwatch"
	"github.com/fwojciec/giftwatch/goquery"
	gwhttp "github.com/fwojciec/giftwatch/http"
	gwslog "github.com/fwojciec/giftwatch/slog"
	"github.com/fwojciec/giftwatch/sqlite"
	"github.com/fwojciec/giftwatch/track"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher used for price checks. Defaults to the HTTP fetcher.
	Fetcher giftwatch.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("giftwatch"),
		kong.Description("Track the prices of gift ideas."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'giftwatch --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Logging goes to stderr so command output stays clean.
	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = gwhttp.NewFetcher(gwhttp.WithTimeout(cli.Timeout))
	}
	defer fetcher.Close()

	checker := &track.Checker{
		Fetcher:   gwslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor: goquery.NewExtractor(),
		Logger: func(format string, args ...any) {
			deps.Logger.Debug(fmt.Sprintf(format, args...))
		},
	}
	deps.Checker = gwslog.NewLoggingChecker(checker, deps.Logger)

	// probe only needs the extraction engine.
	if cmd == "probe" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GIFTWATCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Ideas = sqlite.NewIdeaService(m.DB)
	deps.Prices = sqlite.NewPricePointService(m.DB)
	deps.Alerts = sqlite.NewAlertService(m.DB)
	deps.Tracker = &track.Tracker{
		Ideas:       deps.Ideas,
		Prices:      deps.Prices,
		Alerts:      deps.Alerts,
		Checker:     deps.Checker,
		RateLimiter: track.NewDomainLimiter(requestsPerSecond),
	}

	return kongCtx.Run(deps)
}

// requestsPerSecond limits batch checks per shop domain.
const requestsPerSecond = 0.5

func defaultDBPath() string {
	if path := os.Getenv("GIFTWATCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "giftwatch.db"
	}
	dir := filepath.Join(home, ".giftwatch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "giftwatch.db")
}

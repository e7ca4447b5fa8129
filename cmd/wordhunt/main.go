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

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wordhunt"
	whcolly "github.com/fwojciec/wordhunt/colly"
	"github.com/fwojciec/wordhunt/crawl"
	"github.com/fwojciec/wordhunt/goquery"
	"github.com/fwojciec/wordhunt/htmltomarkdown"
	whhttp "github.com/fwojciec/wordhunt/http"
	"github.com/fwojciec/wordhunt/readability"
	whslog "github.com/fwojciec/wordhunt/slog"
	"github.com/fwojciec/wordhunt/sqlite"
	"github.com/fwojciec/wordhunt/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService wordhunt.RunService
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
		kong.Name("wordhunt"),
		kong.Description("Breadth-first search for a word across linked web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'wordhunt --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if cmd != "search" || !cli.Search.NoHistory {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set WORDHUNT_DB or pass --no-history\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.Runs = m.RunService
	}

	if cmd == "search" {
		deps.Searcher = &crawl.Crawler{
			Fetcher: newPageFetcher(&cli.Search, cli.Verbose, deps.Logger),
		}
	}

	return kongCtx.Run(deps)
}

// newPageFetcher assembles the page fetcher selected by the search flags.
func newPageFetcher(c *SearchCmd, verbose bool, logger *slog.Logger) wordhunt.PageFetcher {
	text := newTextExtractor(c.Text, c.Comments)

	var pages wordhunt.PageFetcher
	switch c.Fetcher {
	case "colly":
		opts := []whcolly.Option{whcolly.WithTimeout(c.Timeout)}
		if c.SameHost {
			opts = append(opts, whcolly.WithSameHost())
		}
		pages = whcolly.NewPageFetcher(text, opts...)
	default:
		var fetcher wordhunt.Fetcher = whhttp.NewFetcher(whhttp.WithTimeout(c.Timeout))
		var linkOpts []goquery.Option
		if c.SameHost {
			linkOpts = append(linkOpts, goquery.WithSameHost())
		}
		pf := &crawl.PageFetcher{
			Fetcher: fetcher,
			Links:   goquery.NewLinkExtractor(linkOpts...),
			Text:    text,
		}
		if verbose {
			pf.Fetcher = whslog.NewLoggingFetcher(fetcher, logger)
			pf.Logger = func(format string, args ...any) {
				logger.Info(fmt.Sprintf(format, args...))
			}
		}
		pages = pf
	}

	if verbose {
		pages = whslog.NewLoggingPageFetcher(pages, logger)
	}
	return pages
}

// newTextExtractor returns the extractor for a --text mode. The main-content
// extractors fall back to the full body text when they find nothing.
func newTextExtractor(mode string, comments bool) wordhunt.TextExtractor {
	body := goquery.NewTextExtractor()
	switch mode {
	case "readability":
		return readability.NewExtractor(body)
	case "trafilatura":
		var opts []trafilatura.Option
		if comments {
			opts = append(opts, trafilatura.WithComments())
		}
		return trafilatura.NewExtractor(body, opts...)
	case "markdown":
		return htmltomarkdown.NewConverter()
	default:
		return body
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wordhunt.db"
	}
	dir := filepath.Join(home, ".wordhunt")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "wordhunt.db")
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wikicorpus/dump"
	"github.com/fwojciec/wikicorpus/fs"
	"github.com/fwojciec/wikicorpus/gemini"
	"github.com/fwojciec/wikicorpus/htmltomarkdown"
	"github.com/fwojciec/wikicorpus/mediawiki"
	wikislog "github.com/fwojciec/wikicorpus/slog"
	"github.com/fwojciec/wikicorpus/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wikifetch"),
		kong.Description("Build text corpora from Wikipedia category trees"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	// Validate: name is required unless in preview mode
	if !cli.Preview && cli.Name == "" {
		return fmt.Errorf("name is required when not in preview mode")
	}

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	timeout := cli.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	// Content source: live API by default, XML export when --dump is given.
	if cli.Dump != "" {
		idx, err := dump.Open(cli.Dump)
		if err != nil {
			return err
		}
		deps.Categories = idx
		deps.Pages = idx
		// Exports carry no revision history, so author lookup stays off.
	} else {
		client := mediawiki.NewClient(htmltomarkdown.NewConverter(),
			mediawiki.WithLanguage(cli.Lang),
			mediawiki.WithTimeout(timeout),
			mediawiki.WithRateLimit(cli.Rate),
		)
		deps.Categories = client
		deps.Pages = client
		deps.Authors = client
	}

	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		deps.Categories = wikislog.NewLoggingCategoryService(deps.Categories, logger)
		deps.Pages = wikislog.NewLoggingPageService(deps.Pages, logger)
	}

	// Storage: markdown files by default, SQLite when --db is given.
	if !cli.Preview {
		if cli.DB != "" {
			db := sqlite.NewDB(cli.DB)
			if err := db.Open(); err != nil {
				return err
			}
			defer db.Close()
			deps.Corpora = sqlite.NewCorpusService(db)
			deps.Documents = sqlite.NewDocumentService(db)
		} else {
			deps.Documents = fs.NewWriter(filepath.Join(cli.Path, cli.Name))
		}
	}

	if cli.TokenModel != "" {
		counter, err := gemini.NewTokenCounter(cli.TokenModel)
		if err != nil {
			return fmt.Errorf("failed to load tokenizer: %w", err)
		}
		deps.TokenCounter = counter
	}

	cmd := &FetchCmd{
		Category:        cli.Category,
		Name:            cli.Name,
		Language:        cli.Lang,
		Preview:         cli.Preview,
		Depth:           cli.Depth,
		Threshold:       cli.Threshold,
		Keywords:        cli.Keyword,
		SummaryFallback: !cli.NoSummaryFallback,
		Authors:         cli.Authors,
		CycleGuard:      cli.CycleGuard,
		Concurrency:     cli.Concurrency,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Preview           bool          `short:"p" help:"Preview which articles would be fetched without saving"`
	Lang              string        `short:"l" default:"en" help:"Wikipedia language edition"`
	Depth             int           `short:"d" default:"-1" help:"Maximum subcategory depth (-1 for unbounded)"`
	Threshold         int           `default:"-1" help:"Skip subcategories of categories with at least this many articles (-1 for unbounded)"`
	Keyword           []string      `short:"k" help:"Section title patterns to extract (repeatable; all sections when omitted)"`
	NoSummaryFallback bool          `help:"Do not substitute the page summary when no sections match"`
	Authors           bool          `short:"a" help:"Look up page authors from revision history"`
	CycleGuard        bool          `help:"Skip already-visited categories to guard against cycles"`
	Concurrency       int           `short:"c" default:"3" help:"Concurrent fetch limit"`
	Timeout           time.Duration `short:"t" default:"10s" help:"Request timeout"`
	Rate              float64       `default:"10" help:"Maximum API requests per second"`
	Dump              string        `help:"Read from a MediaWiki XML export instead of the live API"`
	DB                string        `help:"Save documents to a SQLite database instead of markdown files"`
	TokenModel        string        `help:"Count tokens with the given Gemini model's tokenizer"`
	Verbose           bool          `short:"v" help:"Log API calls to stderr"`
	Category          string        `arg:"" required:"" help:"Root category to traverse"`
	Name              string        `arg:"" optional:"" help:"Name for the corpus and output directory"`
	Path              string        `arg:"" optional:"" default:"." help:"Base path for output (default: current directory)"`
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/stagger"
	"github.com/fwojciec/stagger/goquery"
	"github.com/fwojciec/stagger/gomail"
	"github.com/fwojciec/stagger/htmltomarkdown"
	"github.com/fwojciec/stagger/rod"
	stagslog "github.com/fwojciec/stagger/slog"
	"github.com/fwojciec/stagger/yaml"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. Nil fields are wired to the real
	// browser and relay implementations.
	Source stagger.ContactSource
	Mailer stagger.Mailer
	Sleep  func(time.Duration)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Any error it returns has
// already been reported on stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Source: m.Source,
		Mailer: m.Mailer,
		Sleep:  m.Sleep,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stagger"),
		kong.Description("Scrape contact listings and send staggered outreach email."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := stagger.Errorf(stagger.EINVALID, "no command specified. Run 'stagger --help' to see available commands")
		fmt.Fprintf(stderr, "error: %s\n", stagger.ErrorMessage(err))
		return err
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch kongCtx.Command() {
	case "scrape <url>":
		if deps.Source == nil {
			source, closeFn, err := newPageSource(&cli.Scrape, deps)
			if err != nil {
				return fail(deps, err)
			}
			defer closeFn()
			deps.Source = source
		}
	case "apply <message>":
		if deps.Mailer == nil {
			mailer, err := gomail.NewMailer(gomail.Config{
				RelayURL: cli.Apply.URL,
				Port:     cli.Apply.Port,
				User:     cli.Apply.User,
				Password: cli.Apply.Pass,
				From:     cli.Apply.From,
			}, gomail.WithConverter(htmltomarkdown.NewConverter()))
			if err != nil {
				return fail(deps, err)
			}
			deps.Mailer = stagslog.NewLoggingMailer(mailer, deps.Logger)
		}
	}

	return kongCtx.Run(deps)
}

// newPageSource loads the selector table and starts the browser used by
// scrape. The returned func closes the browser.
func newPageSource(c *ScrapeCmd, deps *Dependencies) (stagger.ContactSource, func(), error) {
	table, err := yaml.LoadSelectorTable(c.Selectors)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := rod.NewRenderer(table,
		rod.WithControlURL(c.BrowserURL),
		rod.WithLogFunc(func(format string, args ...any) {
			fmt.Fprintf(deps.Stdout, format+"\n", args...)
		}),
	)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or pass --browser-url")
		return nil, nil, err
	}

	source := stagger.NewContactSource(
		stagslog.NewLoggingPageRenderer(renderer, deps.Logger),
		goquery.NewParser(table),
	)
	return source, func() { _ = renderer.Close() }, nil
}

// fail reports err on stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "error: %s\n", stagger.ErrorMessage(err))
	return err
}

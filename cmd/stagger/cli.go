package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/stagger"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Source stagger.ContactSource
	Mailer stagger.Mailer

	// Sleep performs the pause between sends. Nil uses time.Sleep.
	Sleep func(time.Duration)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug diagnostics to stderr"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape contacts from a listing page into a CSV file"`
	Apply  ApplyCmd  `cmd:"" help:"Send the message to every contact in a CSV file"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL        string `arg:"" help:"URL of the contact listing page"`
	OutputPath string `short:"o" default:"./contact_data.csv" help:"Location to save scraped contacts to"`
	Selectors  string `type:"path" help:"YAML file overriding the built-in page selectors"`
	BrowserURL string `name:"browser-url" env:"STAGGER_BROWSER_URL" help:"DevTools endpoint of a running browser (launches Chrome if empty)"`
}

// ApplyCmd is the "apply" subcommand.
type ApplyCmd struct {
	Message   string        `arg:"" help:"File with the HTML message; {} is replaced by the contact name"`
	InputPath string        `short:"i" required:"" help:"CSV file produced by scrape"`
	URL       string        `name:"url" required:"" env:"STAGGER_SMTP_URL" help:"SMTP relay host or URL"`
	User      string        `short:"u" required:"" env:"STAGGER_SMTP_USER" help:"SMTP user"`
	Pass      string        `short:"p" required:"" env:"STAGGER_SMTP_PASS" help:"SMTP password"`
	Port      int           `help:"SMTP port (derived from --url when zero)"`
	From      string        `help:"Sender address (defaults to --user)"`
	Subject   string        `default:"Anfrage dualer Studienplatz" help:"Message subject"`
	Delay     time.Duration `default:"10s" help:"Pause after each message"`
}

func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

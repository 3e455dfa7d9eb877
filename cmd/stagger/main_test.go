package main_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/stagger"
	main "github.com/fwojciec/stagger/cmd/stagger"
	"github.com/fwojciec/stagger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"scrape", "apply"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "scrape")
		assert.Contains(t, stdout.String(), "apply")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "no command specified")
	})

	t.Run("unknown command is an error", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := main.NewMain().Run(context.Background(), []string{"bogus"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("scrape defaults to contact_data.csv flag value", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"scrape", "https://example.com"})
		require.NoError(t, err)
		assert.Equal(t, "./contact_data.csv", cli.Scrape.OutputPath)
	})

	t.Run("apply defaults subject and delay", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"apply", "msg.html", "-i", "in.csv", "--url", "smtp.example.com", "-u", "me@example.com", "-p", "secret"})
		require.NoError(t, err)
		assert.Equal(t, stagger.DefaultSubject, cli.Apply.Subject)
		assert.Equal(t, 10*time.Second, cli.Apply.Delay)
		assert.Equal(t, "smtp.example.com", cli.Apply.URL)
	})

	t.Run("scrape then apply end to end", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := filepath.Join(dir, "contacts.csv")
		message := filepath.Join(dir, "message.html")
		require.NoError(t, os.WriteFile(message, []byte("<p>Hallo {}</p>"), 0o644))

		var sent []string
		m := main.NewMain()
		m.Source = &mock.ContactSource{
			ContactsFn: func(_ context.Context, _ string) iter.Seq2[stagger.RawContact, error] {
				return mock.RawContacts(
					stagger.RawContact{Company: "Acme", Name: "Jo", Email: "jo(at)acme.com"},
					stagger.RawContact{Company: "Gamma", Name: "Ga", Email: "ga@gamma.com"},
				)
			},
		}
		m.Mailer = &mock.Mailer{
			SendFn: func(_ context.Context, msg *stagger.Message) error {
				sent = append(sent, msg.To)
				return nil
			},
		}
		m.Sleep = func(time.Duration) {}

		err := m.Run(context.Background(), []string{"scrape", "https://example.com", "-o", store}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		stdout := &bytes.Buffer{}
		err = m.Run(context.Background(), []string{
			"apply", message,
			"-i", store,
			"--url", "smtp.example.com",
			"-u", "me@example.com",
			"-p", "secret",
		}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		assert.Equal(t, []string{"jo@acme.com", "ga@gamma.com"}, sent)
		assert.Contains(t, stdout.String(), "Emails sent! 2 successful, 0 failed - 100.00% success rate")
	})
}

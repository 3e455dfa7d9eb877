package main_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/stagger"
	main "github.com/fwojciec/stagger/cmd/stagger"
	"github.com/fwojciec/stagger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes accepted contacts and prints them", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		source := &mock.ContactSource{
			ContactsFn: func(_ context.Context, url string) iter.Seq2[stagger.RawContact, error] {
				gotURL = url
				return mock.RawContacts(
					stagger.RawContact{Company: "Acme", Name: "Jo", Email: "jo(at)acme.com"},
					stagger.RawContact{Company: "Acme", Name: "Jo2", Email: "jo2@acme.com"},
					stagger.RawContact{Company: "", Name: "x", Email: "y"},
					stagger.RawContact{Company: "Beta", Name: "", Email: "b@beta.com"},
				)
			},
		}

		out := filepath.Join(t.TempDir(), "contacts.csv")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Source: source,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com/partners", OutputPath: out}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/partners", gotURL)
		assert.Contains(t, stdout.String(), "Found 4 potential contacts")
		assert.Contains(t, stdout.String(), "Acme: Jo - jo@acme.com\n")
		assert.Contains(t, stdout.String(), "Beta: None - b@beta.com\n")
		assert.NotContains(t, stdout.String(), "Jo2")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Company,Contact name,Contact email\nAcme,Jo,jo@acme.com\nBeta,None,b@beta.com\n", string(data))
	})

	t.Run("writes header when no contacts are found", func(t *testing.T) {
		t.Parallel()

		source := &mock.ContactSource{
			ContactsFn: func(_ context.Context, _ string) iter.Seq2[stagger.RawContact, error] {
				return mock.RawContacts()
			},
		}

		out := filepath.Join(t.TempDir(), "contacts.csv")
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Source: source,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", OutputPath: out}
		require.NoError(t, cmd.Run(deps))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Company,Contact name,Contact email\n", string(data))
	})

	t.Run("keeps contacts written before a missing element", func(t *testing.T) {
		t.Parallel()

		source := &mock.ContactSource{
			ContactsFn: func(_ context.Context, _ string) iter.Seq2[stagger.RawContact, error] {
				return func(yield func(stagger.RawContact, error) bool) {
					if !yield(stagger.RawContact{Company: "Acme", Name: "Jo", Email: "jo@acme.com"}, nil) {
						return
					}
					yield(stagger.RawContact{}, stagger.Errorf(stagger.EINVALID, "contact element 1 has no match for company selector %q", "h2"))
				}
			},
		}

		out := filepath.Join(t.TempDir(), "contacts.csv")
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", OutputPath: out}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, stagger.EINVALID, stagger.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: contact element 1 has no match")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Company,Contact name,Contact email\nAcme,Jo,jo@acme.com\n", string(data))
	})

	t.Run("fails when the output directory does not exist", func(t *testing.T) {
		t.Parallel()

		called := false
		source := &mock.ContactSource{
			ContactsFn: func(_ context.Context, _ string) iter.Seq2[stagger.RawContact, error] {
				called = true
				return mock.RawContacts()
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", OutputPath: filepath.Join(t.TempDir(), "missing", "out.csv")}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, stagger.ENOTFOUND, stagger.ErrorCode(err))
		assert.False(t, called)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports an unreachable browser", func(t *testing.T) {
		t.Parallel()

		source := &mock.ContactSource{
			ContactsFn: func(_ context.Context, _ string) iter.Seq2[stagger.RawContact, error] {
				return func(yield func(stagger.RawContact, error) bool) {
					yield(stagger.RawContact{}, stagger.Errorf(stagger.EUNAVAILABLE, "browser unreachable"))
				}
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.ScrapeCmd{URL: "https://example.com", OutputPath: filepath.Join(t.TempDir(), "out.csv")}
		err := cmd.Run(deps)

		assert.Equal(t, stagger.EUNAVAILABLE, stagger.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: browser unreachable")
	})
}

package main

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/stagger"
	"github.com/fwojciec/stagger/bloom"
	"github.com/fwojciec/stagger/csv"
	"github.com/fwojciec/stagger/dispatch"
)

// Run executes the apply command.
func (c *ApplyCmd) Run(deps *Dependencies) error {
	if deps.Mailer == nil {
		return fail(deps, stagger.Errorf(stagger.EINTERNAL, "no mailer configured"))
	}

	contacts, err := csv.NewReader(c.InputPath).ReadContacts(deps.Ctx)
	if err != nil {
		return fail(deps, err)
	}

	targets, err := stagger.Targets(contacts)
	if err != nil {
		return fail(deps, err)
	}

	template, err := readMessage(c.Message)
	if err != nil {
		return fail(deps, err)
	}

	d := &dispatch.Dispatcher{
		Mailer:     deps.Mailer,
		Subject:    c.Subject,
		Delay:      c.Delay,
		Sleep:      deps.Sleep,
		Recipients: bloom.NewRecipientFilter(len(targets)),
		Out:        deps.Stdout,
		Logger:     deps.logger(),
	}
	if _, err := d.Run(deps.Ctx, targets, template); err != nil {
		return fail(deps, err)
	}
	return nil
}

// readMessage returns the message template stored at path.
func readMessage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", stagger.Errorf(stagger.ENOTFOUND, "message file %q not found", path)
	} else if err != nil {
		return "", stagger.Errorf(stagger.EINVALID, "reading message file %q: %v", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", stagger.Errorf(stagger.EINVALID, "message file %q is empty", path)
	}
	return string(data), nil
}

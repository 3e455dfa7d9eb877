// Package yaml loads selector tables from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/stagger"
	"gopkg.in/yaml.v3"
)

// LoadSelectorTable reads the selector table at path.
// An empty path returns the default table. Keys missing from the file
// keep their default values.
func LoadSelectorTable(path string) (stagger.SelectorTable, error) {
	if path == "" {
		return stagger.DefaultSelectorTable(), nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return stagger.SelectorTable{}, stagger.Errorf(stagger.ENOTFOUND, "selector file %q not found", path)
	} else if err != nil {
		return stagger.SelectorTable{}, stagger.Errorf(stagger.EINVALID, "cannot read selector file %q: %v", path, err)
	}

	return DecodeSelectorTable(bytes.NewReader(b))
}

// DecodeSelectorTable decodes a YAML selector table over the defaults
// and validates the result.
func DecodeSelectorTable(r io.Reader) (stagger.SelectorTable, error) {
	table := stagger.DefaultSelectorTable()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil && !errors.Is(err, io.EOF) {
		return stagger.SelectorTable{}, stagger.Errorf(stagger.EINVALID, "invalid selector table: %v", err)
	}

	if err := table.Validate(); err != nil {
		return stagger.SelectorTable{}, err
	}
	return table, nil
}

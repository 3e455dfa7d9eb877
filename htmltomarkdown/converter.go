// Package htmltomarkdown derives plain-text message parts from HTML bodies.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/stagger"
)

// Ensure Converter implements stagger.Converter at compile time.
var _ stagger.Converter = (*Converter)(nil)

// Converter renders message HTML as Markdown, which reads well as the
// text/plain alternative of an email.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML message body into trimmed Markdown text.
// Returns EINVALID for a blank body.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", stagger.Errorf(stagger.EINVALID, "empty message body")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

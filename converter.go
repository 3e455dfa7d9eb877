package stagger

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML message body into Markdown text
	// suitable for a plain-text alternative part.
	Convert(html string) (string, error)
}

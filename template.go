package stagger

import "strings"

// Placeholder is the token in a message template replaced by the
// recipient's name.
const Placeholder = "{}"

// Render substitutes every Placeholder in template with name.
// The name is inserted verbatim and is not itself searched for placeholders.
func Render(template, name string) string {
	return strings.ReplaceAll(template, Placeholder, name)
}

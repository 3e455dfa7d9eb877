package stagger

import "context"

// DefaultSubject is the subject line of every outreach message.
const DefaultSubject = "Anfrage dualer Studienplatz"

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer submits messages to a relay.
type Mailer interface {
	// Send submits one message and returns nil once the relay accepts it.
	// Implementations must not retry.
	Send(ctx context.Context, msg *Message) error
}

// RecipientFilter remembers addresses to flag probable repeats.
type RecipientFilter interface {
	Add(addr string)

	// Test returns true if addr might have been added.
	Test(addr string) bool
}

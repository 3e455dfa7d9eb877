package stagger

import "context"

// Contact is one row of the record store.
type Contact struct {
	Company string
	Name    string
	Email   string
}

// Validate returns an error if the contact cannot be persisted.
func (c *Contact) Validate() error {
	if c.Company == "" {
		return Errorf(EINVALID, "contact company required")
	}
	return nil
}

// IsTarget reports whether the contact can receive a message.
func (c *Contact) IsTarget() bool {
	return c.Name != "" && c.Email != ""
}

// Targets returns the contacts that can receive a message, in input order.
// Returns EINVALID if none qualify.
func Targets(contacts []*Contact) ([]*Contact, error) {
	var targets []*Contact
	for _, c := range contacts {
		if c.IsTarget() {
			targets = append(targets, c)
		}
	}
	if len(targets) == 0 {
		return nil, Errorf(EINVALID, "no valid targets: every contact is missing a name or email")
	}
	return targets, nil
}

// ContactWriter streams contacts into the record store.
// Each contact must be durable once WriteContact returns.
type ContactWriter interface {
	WriteContact(ctx context.Context, contact *Contact) error

	// Close flushes and releases the underlying store.
	Close() error
}

// ContactReader loads every contact from the record store.
type ContactReader interface {
	ReadContacts(ctx context.Context) ([]*Contact, error)
}

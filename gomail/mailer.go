// Package gomail submits outreach messages to an SMTP relay.
package gomail

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/fwojciec/stagger"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Ensure Mailer implements stagger.Mailer at compile time.
var _ stagger.Mailer = (*Mailer)(nil)

// DefaultPort is the implicit-TLS submission port used when the relay URL
// does not name one.
const DefaultPort = 465

// Sender delivers a composed message. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends each message in its own relay session. It never retries.
type Mailer struct {
	sender    Sender
	from      string
	host      string
	converter stagger.Converter
}

// MailerOption configures a Mailer.
type MailerOption func(*Mailer)

// WithConverter derives a text/plain alternative from the HTML body.
// Without one, messages carry the HTML part only.
func WithConverter(c stagger.Converter) MailerOption {
	return func(m *Mailer) {
		m.converter = c
	}
}

// WithSender replaces the SMTP dialer, for tests.
func WithSender(s Sender) MailerOption {
	return func(m *Mailer) {
		m.sender = s
	}
}

// Config holds relay connection parameters and the sender identity.
type Config struct {
	// RelayURL is a host, host:port, or smtp:// / smtps:// URL.
	RelayURL string

	// Port overrides the port derived from RelayURL when non-zero.
	Port int

	User     string
	Password string

	// From is the sender address. Defaults to User.
	From string
}

// NewMailer creates a Mailer authenticating to the relay with the
// configured credentials.
func NewMailer(cfg Config, opts ...MailerOption) (*Mailer, error) {
	host, port, err := ParseRelay(cfg.RelayURL)
	if err != nil {
		return nil, err
	}
	if cfg.Port != 0 {
		port = cfg.Port
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	if from == "" {
		return nil, stagger.Errorf(stagger.EINVALID, "sender address required")
	}

	m := &Mailer{
		sender: gomail.NewDialer(host, port, cfg.User, cfg.Password),
		from:   from,
		host:   host,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Send composes msg and submits it in one relay session.
func (m *Mailer) Send(ctx context.Context, msg *stagger.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return stagger.Errorf(stagger.EINVALID, "recipient address required")
	}
	return m.sender.DialAndSend(m.compose(msg))
}

func (m *Mailer) compose(msg *stagger.Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), messageIDDomain(m.from, m.host)))

	// The last part of multipart/alternative is the preferred one.
	if text, ok := m.plainText(msg.HTMLBody); ok {
		gm.SetBody("text/plain", text)
		gm.AddAlternative("text/html", msg.HTMLBody)
	} else {
		gm.SetBody("text/html", msg.HTMLBody)
	}
	return gm
}

func (m *Mailer) plainText(html string) (string, bool) {
	if m.converter == nil {
		return "", false
	}
	text, err := m.converter.Convert(html)
	if err != nil || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// messageIDDomain returns the domain of the sender address, falling back
// to the relay host.
func messageIDDomain(from, host string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return strings.Trim(from[i+1:], "<> ")
	}
	return host
}

// ParseRelay splits a relay URL into host and port. It accepts a bare host,
// host:port, or smtp:// and smtps:// URLs. The port defaults to DefaultPort
// except for smtp:// URLs, which default to 587.
func ParseRelay(raw string) (host string, port int, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", 0, stagger.Errorf(stagger.EINVALID, "SMTP relay URL required")
	}

	defaultPort := DefaultPort
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", 0, stagger.Errorf(stagger.EINVALID, "invalid SMTP relay URL %q: %v", raw, err)
		}
		switch u.Scheme {
		case "smtps":
		case "smtp":
			defaultPort = 587
		default:
			return "", 0, stagger.Errorf(stagger.EINVALID, "unsupported SMTP relay scheme %q", u.Scheme)
		}
		raw = u.Host
	}

	host, portStr, err := net.SplitHostPort(raw)
	if err != nil {
		// No port given.
		host, portStr = raw, ""
	}
	if host == "" {
		return "", 0, stagger.Errorf(stagger.EINVALID, "SMTP relay host required")
	}
	if portStr == "" {
		return host, defaultPort, nil
	}

	port, err = strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, stagger.Errorf(stagger.EINVALID, "invalid SMTP relay port %q", portStr)
	}
	return host, port, nil
}

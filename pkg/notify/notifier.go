// Package notify delivers near-real-time alerts for especially strong leads.
// Delivery is best effort: a failed notification is the caller's to log and
// swallow, it never affects the persisted lead.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/email"

	"github.com/leadscout/leadscout/pkg/domain"
)

// Sender sends a rendered message, implemented by go-pkgz/email
type Sender interface {
	Send(text string, params email.Params) error
}

// EmailNotifier sends lead alerts over SMTP
type EmailNotifier struct {
	sender Sender
	from   string
}

// Config holds SMTP settings for the notifier
type Config struct {
	Host     string // empty host disables notifications
	Port     int
	Username string
	Password string
	StartTLS bool
	From     string
	Timeout  time.Duration
}

// NewEmailNotifier creates a notifier. Returns nil when no host is configured;
// a nil notifier is valid and skips delivery.
func NewEmailNotifier(cfg Config) *EmailNotifier {
	if cfg.Host == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := []email.Option{
		email.Port(cfg.Port),
		email.TimeOut(cfg.Timeout),
		email.ContentType("text/plain"),
	}
	if cfg.Username != "" {
		opts = append(opts, email.Auth(cfg.Username, cfg.Password))
	}
	if cfg.StartTLS {
		opts = append(opts, email.STARTTLS(true))
	}

	return &EmailNotifier{sender: email.NewSender(cfg.Host, opts...), from: cfg.From}
}

// Notify sends one alert for a freshly persisted lead
func (n *EmailNotifier) Notify(_ context.Context, consumer domain.Consumer, lead domain.Lead) error {
	if n == nil {
		return nil
	}
	if consumer.ContactChannel == "" {
		return nil
	}

	subject := fmt.Sprintf("lead in %s: %s", lead.SourceFeed, lead.Title)
	err := n.sender.Send(renderBody(lead), email.Params{
		From:    n.from,
		To:      []string{consumer.ContactChannel},
		Subject: subject,
	})
	if err != nil {
		return fmt.Errorf("send notification to %s: %w", consumer.ContactChannel, err)
	}
	return nil
}

// renderBody builds the plain-text alert body
func renderBody(lead domain.Lead) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A strong match was found in %s (score %.2f).\n\n", lead.SourceFeed, lead.RelevanceScore)
	fmt.Fprintf(&sb, "%s\n", lead.Title)
	if lead.Snippet != "" {
		fmt.Fprintf(&sb, "\n%s\n", lead.Snippet)
	}
	if lead.Link != "" {
		fmt.Fprintf(&sb, "\n%s\n", lead.Link)
	}
	return sb.String()
}

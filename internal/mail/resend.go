package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	emails resend.EmailsSvc
	cfg    Config
}

// NewResendMailer creates a mailer from cfg. It fails without an API key.
func NewResendMailer(cfg Config) (*ResendMailer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("resend: API key is required")
	}
	client := resend.NewClient(cfg.APIKey)
	return &ResendMailer{emails: client.Emails, cfg: cfg}, nil
}

// newResendMailerAt points the client at baseURL. Used by tests.
func newResendMailerAt(cfg Config, baseURL string) (*ResendMailer, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	client := resend.NewClient(cfg.APIKey)
	client.BaseURL = u
	return &ResendMailer{emails: client.Emails, cfg: cfg}, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if !LooksValid(msg.To) {
		return ErrNoRecipient
	}

	req := &resend.SendEmailRequest{
		From:    m.cfg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: m.cfg.ReplyTo,
	}

	names := make([]string, 0, len(msg.Tags))
	for k := range msg.Tags {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		req.Tags = append(req.Tags, resend.Tag{Name: k, Value: msg.Tags[k]})
	}

	resp, err := m.emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: send to %s: %w", msg.To, err)
	}
	slog.DebugContext(ctx, "email sent", "id", resp.Id, "to", msg.To)
	return nil
}

// New returns a Resend mailer when cfg has a key, or nil when email is
// disabled.
func New(cfg Config) (Mailer, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	m, err := NewResendMailer(cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

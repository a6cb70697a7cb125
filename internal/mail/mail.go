// Package mail delivers transactional email.
package mail

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrNoRecipient is returned when a message has no valid To address.
var ErrNoRecipient = errors.New("message has no valid recipient")

// Message is one outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Tags    map[string]string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LooksValid is the minimal address check used before any send attempt.
func LooksValid(addr string) bool {
	addr = strings.TrimSpace(addr)
	at := strings.Index(addr, "@")
	return at > 0 && at < len(addr)-1
}

// Config configures the Resend mailer.
type Config struct {
	APIKey  string
	From    string
	ReplyTo string
}

// DefaultConfig returns the sender identity used when none is configured.
func DefaultConfig() Config {
	return Config{
		From:    "AI Career Coach <onboarding@resend.dev>",
		ReplyTo: "no-reply@resend.dev",
	}
}

// ConfigFromEnv overlays CAREERCOACH_RESEND_API_KEY, CAREERCOACH_MAIL_FROM
// and CAREERCOACH_MAIL_REPLY_TO on DefaultConfig. RESEND_API_KEY is
// accepted as a fallback for the key.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("CAREERCOACH_RESEND_API_KEY"); v != "" {
		cfg.APIKey = v
	} else {
		cfg.APIKey = os.Getenv("RESEND_API_KEY")
	}
	if v := os.Getenv("CAREERCOACH_MAIL_FROM"); v != "" {
		cfg.From = v
	}
	if v := os.Getenv("CAREERCOACH_MAIL_REPLY_TO"); v != "" {
		cfg.ReplyTo = v
	}
	return cfg
}

// Enabled reports whether a real mailer can be built.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}

// Recorder is an in-memory Mailer for tests and dry runs.
type Recorder struct {
	mu   sync.Mutex
	Err  error
	sent []Message
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if !LooksValid(msg.To) {
		return ErrNoRecipient
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}

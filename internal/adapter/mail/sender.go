package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: Sender implements domain.CodeNotifier.
var _ domain.CodeNotifier = (*Sender)(nil)

const subject = "Your KrishiSetu verification code"

// Config holds SMTP settings. An empty Host disables delivery.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers verification codes by email over SMTP.
type Sender struct {
	from   string
	dialer *gomail.Dialer
}

// New creates a sender. Without a host the sender only logs the code,
// which is enough for local development.
func New(cfg Config) *Sender {
	s := &Sender{from: cfg.From}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

// SendCode emails code to address.
func (s *Sender) SendCode(ctx context.Context, address, code string) error {
	if address == "" {
		return fmt.Errorf("no recipient for verification code")
	}

	if s.dialer == nil {
		slog.InfoContext(ctx, "smtp not configured, verification code not sent",
			"to", address,
			"code", code,
		)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", address)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf(
		"Your verification code is %s. It expires in a few minutes.\n", code))
	m.AddAlternative("text/html", fmt.Sprintf(
		"<p>Your verification code is <strong>%s</strong>.</p><p>It expires in a few minutes.</p>", code))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("sending verification email: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending verification email: %w", err)
		}
	}

	slog.InfoContext(ctx, "verification email sent", "to", address)
	return nil
}

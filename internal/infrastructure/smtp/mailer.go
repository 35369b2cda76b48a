package smtp

import (
	"fmt"
	"log/slog"

	"github.com/go-catalog-nosql/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends emails.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	dialer dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *mailer) SendEmail(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs at debug level. Used in OTP test mode.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) SendEmail(to, subject, body string) error {
	slog.Debug("email suppressed", "to", to, "subject", subject, "body", body)
	return nil
}

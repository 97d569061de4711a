// Package email delivers outbound mail over SMTP with gomail.
package email

import (
	"context"
	"errors"
	"log/slog"

	"logistics/internal/core/ports"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Dialer is the part of gomail.Dialer the mailer uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implements ports.Mailer.
type SMTPMailer struct {
	from   string
	dialer Dialer
}

// NewSMTPMailer dials cfg.Host for every message.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return NewSMTPMailerWithDialer(cfg.From, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func NewSMTPMailerWithDialer(from string, dialer Dialer) *SMTPMailer {
	return &SMTPMailer{from: from, dialer: dialer}
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.Email) error {
	if len(msg.To) == 0 {
		return errors.New("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(NewMessage(m.from, msg))
}

// NewMessage builds the plain-text gomail message for msg.
func NewMessage(from string, msg ports.Email) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)
	return gm
}

// LogMailer writes messages to the log instead of sending them. It is used when no
// SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With("component", "LogMailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg ports.Email) error {
	m.logger.InfoContext(ctx, "email not sent, SMTP is not configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

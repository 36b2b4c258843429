package service

import (
	"context"
	"fmt"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
)

// Mailer hands a composed email over to a transport. A nil error means the
// transport accepted the message, not that it was delivered.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, headers string) error
}

// MailerFunc adapts a plain function to the Mailer interface
type MailerFunc func(ctx context.Context, to, subject, htmlBody, headers string) error

func (f MailerFunc) Send(ctx context.Context, to, subject, htmlBody, headers string) error {
	return f(ctx, to, subject, htmlBody, headers)
}

// LogMailer writes notifications to the logger instead of sending them.
// Meant for development.
type LogMailer struct {
	logger *logging.Logger
}

// NewLogMailer creates a mailer that logs every message
func NewLogMailer(logger *logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody, headers string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("log mailer: %w", err)
	}
	m.logger.Info("[MAIL] to=%s subject=%q\n%s\n%s", to, subject, headers, htmlBody)
	return nil
}

// NewMailer builds the transport selected by cfg.MailTransport
func NewMailer(cfg *config.Config, logger *logging.Logger) (Mailer, error) {
	switch cfg.MailTransport {
	case config.TransportSMTP:
		return NewSMTPService(cfg.SMTP), nil
	case config.TransportTelegram:
		return NewTelegramService(cfg.Telegram), nil
	case config.TransportLog:
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown mail transport %q", logging.ErrInvalidConfig, cfg.MailTransport)
	}
}

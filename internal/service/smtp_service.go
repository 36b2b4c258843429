package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/osa911/contactrelay/internal/config"
)

// SMTPService sends notifications through an SMTP relay
type SMTPService struct {
	cfg config.SMTPConfig
	now func() time.Time
}

// NewSMTPService creates an SMTP mailer from configuration
func NewSMTPService(cfg config.SMTPConfig) *SMTPService {
	return &SMTPService{cfg: cfg, now: time.Now}
}

func (s *SMTPService) addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// implicitTLS reports whether the connection starts with a TLS handshake
// instead of upgrading through STARTTLS
func (s *SMTPService) implicitTLS() bool {
	return s.cfg.TLS || s.cfg.Port == 465
}

// Send delivers one message. headers must be a CRLF separated block as
// produced by BuildHeaders.
func (s *SMTPService) Send(ctx context.Context, to, subject, htmlBody, headers string) error {
	client, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if !s.implicitTLS() {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	from := s.cfg.From
	if from == "" {
		from = replyAddress(headers)
	}
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(s.buildMessage(to, subject, htmlBody, headers)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("smtp QUIT: %w", err)
	}
	return nil
}

func (s *SMTPService) dial(ctx context.Context) (*smtp.Client, error) {
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	var conn net.Conn
	var err error
	if s.implicitTLS() {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: s.cfg.Host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", s.addr())
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", s.addr())
	}
	if err != nil {
		return nil, fmt.Errorf("smtp dial %s: %w", s.addr(), err)
	}

	if deadline, ok := s.deadline(ctx); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, fmt.Errorf("smtp set deadline: %w", err)
		}
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}
	return client, nil
}

// deadline is the earlier of SMTP_TIMEOUT from now and the context deadline
func (s *SMTPService) deadline(ctx context.Context) (time.Time, bool) {
	var deadline time.Time
	if s.cfg.Timeout > 0 {
		deadline = s.now().Add(s.cfg.Timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (deadline.IsZero() || ctxDeadline.Before(deadline)) {
		deadline = ctxDeadline
	}
	return deadline, !deadline.IsZero()
}

// buildMessage assembles the DATA payload: envelope headers, the composed
// header block, a blank line and the body.
func (s *SMTPService) buildMessage(to, subject, htmlBody, headers string) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + crlf)
	b.WriteString("Subject: " + encodeHeader(subject) + crlf)
	b.WriteString("Date: " + s.now().Format(time.RFC1123Z) + crlf)
	b.WriteString(strings.TrimRight(headers, crlf) + crlf)
	b.WriteString(crlf)
	b.WriteString(normalizeCRLF(htmlBody))
	return []byte(b.String())
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// encodeHeader strips line breaks and Q-encodes non-ASCII text
func encodeHeader(value string) string {
	value = headerBreaks.Replace(value)
	return mime.QEncoding.Encode("utf-8", value)
}

// normalizeCRLF converts bare line feeds to CRLF as SMTP requires
func normalizeCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", crlf)
}

// replyAddress extracts the Reply-To address from a header block
func replyAddress(headers string) string {
	for _, line := range strings.Split(headers, crlf) {
		if v, ok := strings.CutPrefix(line, "Reply-To: "); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

package service

import (
	"bufio"
	"context"
	"net"
	"net/textproto"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/osa911/contactrelay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTPSession is what the fake server saw
type fakeSMTPSession struct {
	from string
	rcpt string
	data string
}

// startFakeSMTP accepts a single plain-text session without extensions.
// When rejectRcpt is set, RCPT TO is answered with 550.
func startFakeSMTP(t *testing.T, rejectRcpt bool) (config.SMTPConfig, <-chan fakeSMTPSession) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	sessions := make(chan fakeSMTPSession, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		var s fakeSMTPSession
		tp.PrintfLine("220 fake.local ESMTP")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}
			cmd := strings.ToUpper(line)
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				tp.PrintfLine("250 fake.local")
			case strings.HasPrefix(cmd, "MAIL FROM:"):
				s.from = strings.Trim(line[len("MAIL FROM:"):], "<> ")
				tp.PrintfLine("250 OK")
			case strings.HasPrefix(cmd, "RCPT TO:"):
				if rejectRcpt {
					tp.PrintfLine("550 no such user")
					continue
				}
				s.rcpt = strings.Trim(line[len("RCPT TO:"):], "<> ")
				tp.PrintfLine("250 OK")
			case cmd == "DATA":
				tp.PrintfLine("354 go ahead")
				data, err := tp.ReadDotBytes()
				if err != nil {
					return
				}
				s.data = string(data)
				tp.PrintfLine("250 queued")
			case cmd == "QUIT":
				tp.PrintfLine("221 bye")
				sessions <- s
				return
			default:
				tp.PrintfLine("502 not implemented")
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	portNum, err := strconv.Atoi(port)
	require.NoError(t, err)

	return config.SMTPConfig{Host: host, Port: portNum, Timeout: 5 * time.Second}, sessions
}

func TestSMTPSend(t *testing.T) {
	cfg, sessions := startFakeSMTP(t, false)
	svc := NewSMTPService(cfg)

	fields := sampleFields()
	err := svc.Send(context.Background(), "owner@example.com", BuildSubject(fields.Subject), BuildBody(fields), BuildHeaders(fields.Email))
	require.NoError(t, err)

	select {
	case s := <-sessions:
		assert.Equal(t, "jo@x.com", s.from)
		assert.Equal(t, "owner@example.com", s.rcpt)

		msg, err := textproto.NewReader(bufio.NewReader(strings.NewReader(s.data))).ReadMIMEHeader()
		require.NoError(t, err)
		assert.Equal(t, "owner@example.com", msg.Get("To"))
		assert.Equal(t, "New Contact: Hi", msg.Get("Subject"))
		assert.Equal(t, "1.0", msg.Get("Mime-Version"))
		assert.Equal(t, "text/html; charset=UTF-8", msg.Get("Content-Type"))
		assert.Equal(t, "jo@x.com", msg.Get("Reply-To"))
		assert.Contains(t, s.data, "Line1<br />Line2")
	case <-time.After(5 * time.Second):
		t.Fatal("fake smtp server saw no session")
	}
}

func TestSMTPSendUsesConfiguredEnvelopeSender(t *testing.T) {
	cfg, sessions := startFakeSMTP(t, false)
	cfg.From = "relay@example.com"
	svc := NewSMTPService(cfg)

	require.NoError(t, svc.Send(context.Background(), "owner@example.com", "s", "<p>b</p>", BuildHeaders("jo@x.com")))

	s := <-sessions
	assert.Equal(t, "relay@example.com", s.from)
}

func TestSMTPSendRejectedRecipient(t *testing.T) {
	cfg, _ := startFakeSMTP(t, true)
	svc := NewSMTPService(cfg)

	err := svc.Send(context.Background(), "nobody@example.com", "s", "<p>b</p>", BuildHeaders("jo@x.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RCPT TO")
}

func TestSMTPSendDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	svc := NewSMTPService(config.SMTPConfig{Host: "127.0.0.1", Port: addr.Port, Timeout: time.Second})
	err = svc.Send(context.Background(), "owner@example.com", "s", "b", BuildHeaders("jo@x.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp dial")
}

func TestSMTPDeadlineUsesEarlierOfTimeoutAndContext(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewSMTPService(config.SMTPConfig{Timeout: 10 * time.Second})
	svc.now = func() time.Time { return now }

	deadline, ok := svc.deadline(context.Background())
	require.True(t, ok)
	assert.Equal(t, now.Add(10*time.Second), deadline)

	later, cancel := context.WithDeadline(context.Background(), now.Add(time.Minute))
	defer cancel()
	deadline, ok = svc.deadline(later)
	require.True(t, ok)
	assert.Equal(t, now.Add(10*time.Second), deadline)

	sooner, cancel2 := context.WithDeadline(context.Background(), now.Add(2*time.Second))
	defer cancel2()
	deadline, ok = svc.deadline(sooner)
	require.True(t, ok)
	assert.Equal(t, now.Add(2*time.Second), deadline)

	svc.cfg.Timeout = 0
	_, ok = svc.deadline(context.Background())
	assert.False(t, ok)
}

func TestBuildMessage(t *testing.T) {
	svc := NewSMTPService(config.SMTPConfig{})
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	msg := string(svc.buildMessage("owner@example.com", "New Contact: Hi\r\nBcc: evil@x.com", "<p>a\nb</p>", BuildHeaders("jo@x.com")))

	assert.True(t, strings.HasPrefix(msg, "To: owner@example.com\r\nSubject: New Contact: Hi Bcc: evil@x.com\r\n"))
	assert.Contains(t, msg, "Date: Fri, 02 Jan 2026 03:04:05 +0000\r\n")
	assert.Contains(t, msg, "Reply-To: jo@x.com\r\n\r\n<p>a\r\nb</p>")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestEncodeHeader(t *testing.T) {
	assert.Equal(t, "plain", encodeHeader("plain"))
	assert.Equal(t, "=?utf-8?q?Caf=C3=A9?=", encodeHeader("Café"))
}

func TestReplyAddress(t *testing.T) {
	assert.Equal(t, "jo@x.com", replyAddress(BuildHeaders("jo@x.com")))
	assert.Empty(t, replyAddress("MIME-Version: 1.0\r\n"))
}

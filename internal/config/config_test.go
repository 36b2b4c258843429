package config

import (
	"errors"
	"testing"
	"time"

	"github.com/osa911/contactrelay/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENT_EMAIL", "  owner@example.com ")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "owner@example.com", cfg.RecipientEmail)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1/contact", cfg.ContactPath)
	assert.Equal(t, TransportSMTP, cfg.MailTransport)
	assert.Equal(t, 25, cfg.SMTP.Port)
	assert.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	assert.False(t, cfg.IsProduction())
}

func TestParseAllowsEmptyRecipient(t *testing.T) {
	t.Setenv("CONTACT_RECIPIENT_EMAIL", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Empty(t, cfg.RecipientEmail)
}

func TestParseRejectsUnknownTransport(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "pigeon")

	_, err := Parse()
	require.Error(t, err)
	assert.True(t, errors.Is(err, logging.ErrInvalidConfig))
}

func TestParseTelegramNeedsCredentials(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "Telegram")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := Parse()
	require.Error(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, TransportTelegram, cfg.MailTransport)
}

func TestMaskedHidesSecrets(t *testing.T) {
	cfg := &Config{
		SMTP:     SMTPConfig{Password: "hunter2"},
		Telegram: TelegramConfig{BotToken: "123:abc"},
	}

	for _, kv := range cfg.Masked() {
		assert.NotEqual(t, "hunter2", kv[1], kv[0])
		assert.NotEqual(t, "123:abc", kv[1], kv[0])
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/osa911/contactrelay/internal/logging"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Mail transports understood by the dispatcher
const (
	TransportSMTP     = "smtp"
	TransportTelegram = "telegram"
	TransportLog      = "log"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string `env:"ENV" envDefault:"development"`
	Port           string `env:"API_PORT" envDefault:"8080"`
	ContactPath    string `env:"CONTACT_PATH" envDefault:"/api/v1/contact"`
	MaxBodyBytes   int64  `env:"MAX_BODY_BYTES" envDefault:"65536"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Contact Configuration
	RecipientEmail string `env:"CONTACT_RECIPIENT_EMAIL"`
	MailTransport  string `env:"MAIL_TRANSPORT" envDefault:"smtp"`

	SMTP     SMTPConfig
	Telegram TelegramConfig

	// Telemetry Configuration
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"contactrelay"`
}

// SMTPConfig holds SMTP-related settings for sending emails
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST" envDefault:"localhost"`
	Port     int           `env:"SMTP_PORT" envDefault:"25"`
	Username string        `env:"SMTP_USERNAME"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	TLS      bool          `env:"SMTP_TLS" envDefault:"false"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// TelegramConfig holds the bot credentials for the telegram transport
type TelegramConfig struct {
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	ChatID   string `env:"TELEGRAM_CHAT_ID"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{".env"}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables that are already set
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.RecipientEmail = strings.TrimSpace(cfg.RecipientEmail)
	cfg.MailTransport = strings.ToLower(strings.TrimSpace(cfg.MailTransport))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
// An empty recipient is allowed here and reported per request instead.
func (c *Config) Validate() error {
	switch c.MailTransport {
	case TransportSMTP:
		if c.SMTP.Host == "" || c.SMTP.Port <= 0 {
			return fmt.Errorf("%w: smtp transport needs SMTP_HOST and SMTP_PORT", logging.ErrInvalidConfig)
		}
	case TransportTelegram:
		if c.Telegram.BotToken == "" || c.Telegram.ChatID == "" {
			return fmt.Errorf("%w: telegram transport needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID", logging.ErrInvalidConfig)
		}
	case TransportLog:
	default:
		return fmt.Errorf("%w: unknown MAIL_TRANSPORT %q", logging.ErrInvalidConfig, c.MailTransport)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: MAX_BODY_BYTES must be positive", logging.ErrInvalidConfig)
	}

	if !strings.HasPrefix(c.ContactPath, "/") {
		return fmt.Errorf("%w: CONTACT_PATH must start with /", logging.ErrInvalidConfig)
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LogConfig derives the logger settings
func (c *Config) LogConfig() *logging.LogConfig {
	return &logging.LogConfig{
		Level:      c.LogLevel,
		File:       c.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Requests:   c.LogRequests,
	}
}

// Masked returns a printable key/value view with secrets hidden
func (c *Config) Masked() [][2]string {
	return [][2]string{
		{"ENV", c.Environment},
		{"API_PORT", c.Port},
		{"CONTACT_PATH", c.ContactPath},
		{"CONTACT_RECIPIENT_EMAIL", c.RecipientEmail},
		{"MAIL_TRANSPORT", c.MailTransport},
		{"SMTP_HOST", c.SMTP.Host},
		{"SMTP_PORT", fmt.Sprintf("%d", c.SMTP.Port)},
		{"SMTP_USERNAME", c.SMTP.Username},
		{"SMTP_PASSWORD", mask(c.SMTP.Password)},
		{"SMTP_FROM", c.SMTP.From},
		{"TELEGRAM_BOT_TOKEN", mask(c.Telegram.BotToken)},
		{"TELEGRAM_CHAT_ID", c.Telegram.ChatID},
		{"LOG_LEVEL", c.LogLevel},
		{"LOG_FILE", c.LogFile},
		{"OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint},
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "[MASKED]"
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/osa911/contactrelay/internal/config"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramService forwards contact notifications to a Telegram chat
type TelegramService struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegramService creates a new Telegram service
func NewTelegramService(cfg config.TelegramConfig) *TelegramService {
	return &TelegramService{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  defaultTelegramAPI,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// telegramMessage represents a Telegram API message
type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// telegramResponse is the envelope every Bot API call returns
type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send posts the notification to the configured chat. The recipient
// address is not used, the chat is the destination. headers are dropped
// because Telegram has no equivalent.
func (s *TelegramService) Send(ctx context.Context, to, subject, htmlBody, headers string) error {
	if s.botToken == "" || s.chatID == "" {
		return fmt.Errorf("telegram bot token or chat ID not configured")
	}

	payload := telegramMessage{
		ChatID:    s.chatID,
		Text:      "<b>" + subject + "</b>\n\n" + telegramHTML(htmlBody),
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	var result telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode == http.StatusOK {
		return fmt.Errorf("failed to parse telegram response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, result.Description)
	}

	return nil
}

// Telegram accepts only a handful of tags; map the notification markup
// onto them and drop the rest.
var telegramTags = strings.NewReplacer(
	"<h2>", "<b>",
	"</h2>", "</b>\n",
	"<strong>", "<b>",
	"</strong>", "</b>",
	"<br />", "\n",
	"<p>", "",
	"</p>", "\n",
)

var remainingTags = regexp.MustCompile(`</?(?:html|body)[^>]*>`)

func telegramHTML(body string) string {
	text := remainingTags.ReplaceAllString(body, "")
	text = telegramTags.Replace(text)
	text = strings.ReplaceAll(text, "\n\n", "\n")
	return strings.TrimSpace(text)
}

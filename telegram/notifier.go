// Package telegram pushes operational alerts to a Telegram chat through the
// Bot API. Notifications are best effort: a missing token disables them and
// delivery failures are logged, never fatal.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultAPIBase = "https://api.telegram.org"
	requestTimeout = 5 * time.Second
)

// RequestError captures a non-OK Bot API response.
type RequestError struct {
	StatusCode  int
	ErrorCode   int
	Description string
	Body        string
}

func (e *RequestError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram: api error %d: %s", e.ErrorCode, e.Description)
	}
	return fmt.Sprintf("telegram: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Notifier struct {
	http    *http.Client
	baseURL string
	token   string
	chatID  string
	log     *slog.Logger
}

type Config struct {
	Token   string
	ChatID  string
	APIBase string
	Logger  *slog.Logger
}

func NewNotifier(cfg Config) *Notifier {
	base := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if base == "" {
		base = DefaultAPIBase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: base,
		token:   strings.TrimSpace(cfg.Token),
		chatID:  strings.TrimSpace(cfg.ChatID),
		log:     logger,
	}
}

// Enabled reports whether the notifier has enough configuration to deliver.
func (n *Notifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Notify sends text to the configured chat as HTML. When the notifier is
// not configured it logs once at debug level and reports success.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if !n.Enabled() {
		n.log.Debug("telegram notifications disabled, dropping alert", "text", text)
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                n.chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("telegram: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: read response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.OK {
		return nil
	}

	return &RequestError{
		StatusCode:  resp.StatusCode,
		ErrorCode:   parsed.ErrorCode,
		Description: parsed.Description,
		Body:        string(body),
	}
}

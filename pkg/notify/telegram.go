package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stocktracker_api/config"
	"stocktracker_api/pkg/logger"
)

// Notifier -- уведомление смены о новом расхождении. Отказ уведомления
// никогда не валит бизнес-операцию.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

const telegramAPIURL = "https://api.telegram.org"

type TelegramNotifier struct {
	botToken string
	chatID   string
	client   *http.Client
	log      logger.Logger
}

func NewTelegramNotifier(cfg config.TelegramConfig, writer io.Writer) *TelegramNotifier {
	_log := logger.NewLogger(writer, "[TelegramNotifier]")
	return &TelegramNotifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      _log,
	}
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if n.botToken == "" || n.chatID == "" {
		// не сконфигурировано -- молча пропускаем
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram answered %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

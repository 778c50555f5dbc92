package notify

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"stocktracker_api/config"
)

func TestNotifySkipsWhenNotConfigured(t *testing.T) {
	n := NewTelegramNotifier(config.TelegramConfig{}, io.Discard)
	// без токена уведомление -- no-op, а не ошибка
	assert.NoError(t, n.Notify(context.Background(), "недостача: Молоко, 2 шт."))
}

func TestNotifySkipsWithoutChatID(t *testing.T) {
	n := NewTelegramNotifier(config.TelegramConfig{BotToken: "123:abc"}, io.Discard)
	assert.NoError(t, n.Notify(context.Background(), "text"))
}

package bot

import (
	"log/slog"

	"launchlist/entity"
)

// SendMessage broadcasts an operational alert to every enabled chat.
func (t *TgBot) SendMessage(msg string) {
	t.SendMessageWithLevel(msg, slog.LevelInfo)
}

// SendMessageWithLevel sends a message to all enabled users whose personal
// log level admits it. Used directly by the slog Telegram handler.
func (t *TgBot) SendMessageWithLevel(msg string, level slog.Level) {
	t.mu.RLock()
	users := make(map[int64]*entity.User, len(t.users))
	for k, v := range t.users {
		users[k] = v
	}
	t.mu.RUnlock()

	l := int(level)
	for _, user := range users {
		if !user.TelegramEnabled {
			continue
		}
		if l < user.LogLevel {
			continue
		}
		t.plainResponse(user.TelegramId, msg)
	}
}

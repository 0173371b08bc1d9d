package port

import (
	"context"

	"momentum/internal/entity"
)

// ChatNotifier sends replies to a chat.
type ChatNotifier interface {
	SendMessage(ctx context.Context, chatID entity.ChatID, text string) error
}

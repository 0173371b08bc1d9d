package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"momentum/internal/app/port"
	"momentum/internal/entity"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramClient posts replies through the Telegram Bot API.
type TelegramClient struct {
	bot    *tgbotapi.BotAPI
	logger *zap.Logger
}

var _ port.ChatNotifier = (*TelegramClient)(nil)

// NewTelegramClient creates a bot API client rooted at baseURL. The token is required and
// is checked against the API with getMe.
func NewTelegramClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) (*TelegramClient, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/bot%s/%s"
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("telegram getMe: %w", scrubURL(err))
	}
	logger = logger.Named("TelegramClient")
	logger.Info("Telegram bot authorized", zap.String("username", bot.Self.UserName))
	return &TelegramClient{bot: bot, logger: logger}, nil
}

// newChatMessage addresses numeric ids as chats and anything else as a channel username.
func newChatMessage(chatID entity.ChatID, text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(chatID.String(), 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(chatID.String(), text)
}

// SendMessage sends text to the chat.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID entity.ChatID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.bot.Request(newChatMessage(chatID, text)); err != nil {
		err = scrubURL(err)
		c.logger.Warn("Failed to send chat message", zap.String("chatID", chatID.String()), zap.Error(err))
		return fmt.Errorf("sendMessage to chat %s: %w", chatID, err)
	}
	c.logger.Debug("Chat message sent", zap.String("chatID", chatID.String()))
	return nil
}

// scrubURL drops the request URL, which carries the bot token, from transport errors.
func scrubURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

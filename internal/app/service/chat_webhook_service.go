package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"momentum/internal/app/port"
	domain "momentum/internal/domain/entity"
	"momentum/internal/entity"
	"momentum/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	replyInvalidFormat = "Invalid format."
	replyFailurePrefix = "Failed to add data: "

	responseProcessed     = "Processed successfully"
	responseInvalidFormat = "Invalid format"
	responseInternalError = "Internal error: "
)

// WebhookResponse is the JSON body returned to the webhook caller. The HTTP status is always 200.
type WebhookResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChatWebhookService turns one inbound chat update into a registration and a chat reply.
// It never fails: every outcome is reported in the response body so the caller does
// not redeliver the update.
type ChatWebhookService struct {
	registration port.PairRegistrationService
	notifier     port.ChatNotifier
	logger       port.Logger
}

// NewChatWebhookService creates a ChatWebhookService.
func NewChatWebhookService(registration port.PairRegistrationService, notifier port.ChatNotifier, l port.Logger) *ChatWebhookService {
	return &ChatWebhookService{registration: registration, notifier: notifier, logger: l}
}

// HandleUpdate processes the raw webhook body.
func (s *ChatWebhookService) HandleUpdate(ctx context.Context, body []byte) WebhookResponse {
	collection := s.registration.Collection()

	update, err := decodeUpdate(body)
	if errors.Is(err, domain.ErrNoPayload) {
		s.logger.Warn("Webhook called without a JSON payload", "collection", collection, "bodySize", len(body))
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeNoPayload).Inc()
		return WebhookResponse{Error: "No JSON payload"}
	}
	if err != nil {
		// no chat id to reply to
		s.logger.Error("Failed to read update", "collection", collection, "error", err)
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeError).Inc()
		return WebhookResponse{Error: responseInternalError + err.Error()}
	}

	chatID := update.Message.Chat.ID
	if update.Message.Text == nil {
		err := fmt.Errorf("%w: message.text is missing", domain.ErrMalformedUpdate)
		s.logger.Error("Update without text", "collection", collection, "chatID", chatID.String())
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeError).Inc()
		s.reply(ctx, chatID, replyFailurePrefix+err.Error())
		return WebhookResponse{Error: responseInternalError + err.Error()}
	}
	text := *update.Message.Text

	s.logger.Info("Received message", "collection", collection, "text", text, "chatID", chatID.String())

	pairs, err := s.registration.Register(ctx, text)
	switch {
	case err == nil:
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeOK).Inc()
		s.reply(ctx, chatID, SuccessReply(pairs))
		return WebhookResponse{Message: responseProcessed}
	case errors.Is(err, domain.ErrInvalidFormat):
		s.logger.Warn("Invalid pair format", "collection", collection, "chatID", chatID.String(), "stored", len(pairs), "error", err)
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeInvalidFormat).Inc()
		s.reply(ctx, chatID, replyInvalidFormat)
		return WebhookResponse{Error: responseInvalidFormat}
	default:
		s.logger.Error("Failed to register pairs", "collection", collection, "chatID", chatID.String(), "stored", len(pairs), "error", err)
		metrics.WebhookUpdates.WithLabelValues(collection, metrics.OutcomeError).Inc()
		s.reply(ctx, chatID, replyFailurePrefix+err.Error())
		return WebhookResponse{Error: responseInternalError + err.Error()}
	}
}

// reply sends text to the chat; a failed reply is logged and otherwise ignored.
func (s *ChatWebhookService) reply(ctx context.Context, chatID entity.ChatID, text string) {
	if err := s.notifier.SendMessage(ctx, chatID, text); err != nil {
		s.logger.Warn("Failed to send chat reply", "chatID", chatID.String(), "error", err)
	}
}

// decodeUpdate returns ErrNoPayload for bodies that are not JSON or decode to an
// empty value, and ErrMalformedUpdate when message.chat.id is unavailable.
func decodeUpdate(body []byte) (*entity.Update, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, domain.ErrNoPayload
	}
	var generic any
	if err := json.Unmarshal(body, &generic); err != nil || isEmptyJSON(generic) {
		return nil, domain.ErrNoPayload
	}

	var update entity.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedUpdate, err)
	}
	if update.Message == nil {
		return nil, fmt.Errorf("%w: message is missing", domain.ErrMalformedUpdate)
	}
	if update.Message.Chat == nil || update.Message.Chat.ID == "" {
		return nil, fmt.Errorf("%w: message.chat.id is missing", domain.ErrMalformedUpdate)
	}
	return &update, nil
}

func isEmptyJSON(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	default:
		return false
	}
}

package restapi

import (
	"net/http"

	"momentum/internal/app/service"

	"github.com/gin-gonic/gin"
)

// WebhookHandler serves chat updates for one collection.
type WebhookHandler struct {
	svc *service.ChatWebhookService
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(svc *service.ChatWebhookService) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// HandleUpdate always answers 200 so the bot platform does not redeliver the update;
// the outcome is in the JSON body.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		_ = c.Error(err)
		body = nil
	}
	c.JSON(http.StatusOK, h.svc.HandleUpdate(c.Request.Context(), body))
}

package restapi

import (
	"net/http"

	"momentum/internal/app/port"
	"momentum/internal/app/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FetchHandler triggers one ingestion run per request.
type FetchHandler struct {
	svc    port.SnapshotIngestionService
	logger *zap.Logger
}

// NewFetchHandler creates a FetchHandler.
func NewFetchHandler(svc port.SnapshotIngestionService, logger *zap.Logger) *FetchHandler {
	return &FetchHandler{svc: svc, logger: logger.Named("FetchHandler")}
}

// Run answers 200 with the success text, or 500 with the error that stopped the run.
func (h *FetchHandler) Run(c *gin.Context) {
	summary, err := h.svc.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("Ingestion run failed", zap.Int("loaded", summary.Loaded), zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.String(http.StatusOK, service.IngestionSuccessMessage)
}

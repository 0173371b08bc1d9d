package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter returns a gin engine with access logging, recovery, /healthz and /metrics.
// Binaries mount their own routes on it.
func SetupRouter(logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// RegisterWebhookRoutes mounts one webhook handler per collection variant.
func RegisterWebhookRoutes(router *gin.Engine, handlers map[string]*WebhookHandler) {
	hooks := router.Group("/webhook")
	for path, h := range handlers {
		hooks.POST("/"+path, h.HandleUpdate)
	}
}

// RegisterFetchRoutes mounts the ingestion trigger on / and /fetch.
func RegisterFetchRoutes(router *gin.Engine, h *FetchHandler) {
	for _, path := range []string{"/", "/fetch"} {
		router.GET(path, h.Run)
		router.POST(path, h.Run)
	}
}

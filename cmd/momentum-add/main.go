package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momentum/internal/app/service"
	"momentum/internal/client"
	"momentum/internal/config"
	"momentum/internal/infrastructure/docstore"
	"momentum/internal/infrastructure/restapi"
	"momentum/internal/pkg/logger"
	"momentum/internal/pkg/metrics"
	"momentum/internal/pkg/server"
	"momentum/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.Init(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	if err := cfg.ValidateWebhook(); err != nil {
		zapLogger.Fatal("Invalid configuration", zap.String("path", cfgPath), zap.Error(err))
	}
	gin.SetMode(gin.ReleaseMode)
	metrics.MustRegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := docstore.New(ctx, cfg)
	if err != nil {
		zapLogger.Fatal("Failed to open document store", zap.String("driver", cfg.DocumentStore.Driver), zap.Error(err))
	}
	defer store.Close()
	zapLogger.Info("Document store initialized", zap.String("driver", cfg.DocumentStore.Driver))

	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		cfg.DEXScreener.RequestsPerMinute,
		zapLogger,
	)
	telegramClient, err := client.NewTelegramClient(
		cfg.Telegram.BaseURL,
		cfg.Telegram.Token,
		time.Duration(cfg.Telegram.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
	)
	if err != nil {
		zapLogger.Fatal("Failed to create Telegram client", zap.Error(err))
	}

	appLogger := logger.NewSlogAdapter()
	handlers := make(map[string]*restapi.WebhookHandler, 2)
	for path, collection := range map[string]string{
		"momentum":       cfg.Webhook.MomentumCollection,
		"tracked-tokens": cfg.Webhook.TrackedTokensCollection,
	} {
		registration := service.NewPairRegistrationService(collection, dexScreenerClient, store, appLogger, nil)
		handlers[path] = restapi.NewWebhookHandler(service.NewChatWebhookService(registration, telegramClient, appLogger))
		zapLogger.Info("Webhook route registered", zap.String("path", "/webhook/"+path), zap.String("collection", collection))
	}

	router := restapi.SetupRouter(zapLogger)
	restapi.RegisterWebhookRoutes(router, handlers)

	if err := server.Run(ctx, server.New(cfg.Server, router), zapLogger); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}

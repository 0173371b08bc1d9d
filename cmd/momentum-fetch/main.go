package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"momentum/internal/app/service"
	"momentum/internal/client"
	"momentum/internal/config"
	"momentum/internal/infrastructure/pairloader"
	"momentum/internal/infrastructure/restapi"
	"momentum/internal/infrastructure/warehouse"
	"momentum/internal/pkg/logger"
	"momentum/internal/pkg/metrics"
	"momentum/internal/pkg/server"
	"momentum/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single ingestion pass and exit instead of serving HTTP")
	flag.Parse()

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

	if err := cfg.ValidateIngestion(); err != nil {
		zapLogger.Fatal("Invalid configuration", zap.String("path", cfgPath), zap.Error(err))
	}
	metrics.MustRegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wh, err := warehouse.New(ctx, cfg)
	if err != nil {
		zapLogger.Fatal("Failed to open warehouse", zap.String("driver", cfg.Warehouse.Driver), zap.Error(err))
	}
	defer wh.Close()
	zapLogger.Info("Warehouse initialized",
		zap.String("driver", cfg.Warehouse.Driver),
		zap.String("dataset", cfg.Warehouse.Dataset),
		zap.String("table", cfg.Warehouse.Table))

	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		cfg.DEXScreener.RequestsPerMinute,
		zapLogger,
	)
	pairs := pairloader.NewPairFileLoader(cfg.Ingestion.PairsFile, logger.Info, logger.Warn)
	ingestion := service.NewSnapshotIngestionService(pairs, dexScreenerClient, wh, zapLogger, nil)

	if *once {
		if _, err := ingestion.Run(ctx); err != nil {
			zapLogger.Error("Ingestion run failed", zap.Error(err))
			os.Exit(1)
		}
		zapLogger.Info(service.IngestionSuccessMessage)
		return
	}

	gin.SetMode(gin.ReleaseMode)
	router := restapi.SetupRouter(zapLogger)
	restapi.RegisterFetchRoutes(router, restapi.NewFetchHandler(ingestion, zapLogger))

	if err := server.Run(ctx, server.New(cfg.Server, router), zapLogger); err != nil {
		zapLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}

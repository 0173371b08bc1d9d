package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "https://api.dexscreener.com", cfg.DEXScreener.BaseURL)
	require.Equal(t, 300, cfg.DEXScreener.RequestsPerMinute)
	require.Equal(t, "momentum", cfg.Webhook.MomentumCollection)
	require.Equal(t, "tracked-tokens", cfg.Webhook.TrackedTokensCollection)
	require.Equal(t, DriverFirestore, cfg.DocumentStore.Driver)
	require.Equal(t, DriverBigQuery, cfg.Warehouse.Driver)
	require.Equal(t, "dev_momentum", cfg.Warehouse.Dataset)
	require.Equal(t, "raw", cfg.Warehouse.Table)
	require.Equal(t, "pairs.yaml", cfg.Ingestion.PairsFile)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
gcp:
  projectID: file-project
documentStore:
  driver: Redis
  redisAddr: localhost:6379
warehouse:
  table: snapshots
`)
	t.Setenv("GCP_PROJECT", "env-project")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
	require.Equal(t, "env-project", cfg.GCP.ProjectID)
	require.Equal(t, "123:abc", cfg.Telegram.Token)
	require.Equal(t, DriverRedis, cfg.DocumentStore.Driver)
	require.Equal(t, "snapshots", cfg.Warehouse.Table)
	require.NoError(t, cfg.ValidateWebhook())
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
}

func TestValidateWebhook_RequiresToken(t *testing.T) {
	cfg := &Config{DocumentStore: DocumentStoreConfig{Driver: DriverMemory}}
	err := cfg.ValidateWebhook()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Token")
}

func TestValidateWebhook_Firestore(t *testing.T) {
	cfg := &Config{
		Telegram:      TelegramConfig{Token: "t"},
		DocumentStore: DocumentStoreConfig{Driver: DriverFirestore},
		GCP:           GCPConfig{ProjectID: "p"},
	}
	err := cfg.ValidateWebhook()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Database")

	cfg.GCP.FirestoreDatabase = "(default)"
	require.NoError(t, cfg.ValidateWebhook())
}

func TestValidateIngestion(t *testing.T) {
	cfg := &Config{Warehouse: WarehouseConfig{Driver: DriverBigQuery}}
	require.Error(t, cfg.ValidateIngestion())

	cfg.GCP.ServiceAccountInfo = "not json"
	require.Error(t, cfg.ValidateIngestion())

	cfg.GCP.ServiceAccountInfo = `{"project_id":"p"}`
	require.NoError(t, cfg.ValidateIngestion())

	cfg.Warehouse.Driver = "parquet"
	require.Error(t, cfg.ValidateIngestion())
}

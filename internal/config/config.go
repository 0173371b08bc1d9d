package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Storage drivers understood by the document store and warehouse factories.
const (
	DriverFirestore  = "firestore"
	DriverRedis      = "redis"
	DriverBigQuery   = "bigquery"
	DriverClickHouse = "clickhouse"
	DriverMemory     = "memory"
)

// Config holds the overall configuration for both binaries.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	GCP           GCPConfig           `yaml:"gcp"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	DEXScreener   DEXScreenerConfig   `yaml:"dexScreener"`
	Webhook       WebhookConfig       `yaml:"webhook"`
	DocumentStore DocumentStoreConfig `yaml:"documentStore"`
	Warehouse     WarehouseConfig     `yaml:"warehouse"`
	Ingestion     IngestionConfig     `yaml:"ingestion"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// GCPConfig holds identifiers and credentials for Google Cloud clients.
type GCPConfig struct {
	ProjectID          string `yaml:"projectID"`
	FirestoreDatabase  string `yaml:"firestoreDatabase"`
	ServiceAccountInfo string `yaml:"serviceAccountInfo"`
}

// TelegramConfig holds the bot API settings.
type TelegramConfig struct {
	BaseURL              string `yaml:"baseURL"`
	Token                string `yaml:"token"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	RequestsPerMinute    int    `yaml:"requestsPerMinute"`
}

// WebhookConfig names the collection each handler variant writes to.
type WebhookConfig struct {
	MomentumCollection      string `yaml:"momentumCollection"`
	TrackedTokensCollection string `yaml:"trackedTokensCollection"`
}

// DocumentStoreConfig selects where resolved pairs are persisted.
type DocumentStoreConfig struct {
	Driver    string `yaml:"driver"`
	RedisAddr string `yaml:"redisAddr"`
	RedisDB   int    `yaml:"redisDB"`
}

// WarehouseConfig selects where snapshot rows are loaded.
type WarehouseConfig struct {
	Driver        string `yaml:"driver"`
	Dataset       string `yaml:"dataset"`
	Table         string `yaml:"table"`
	ClickHouseDSN string `yaml:"clickhouseDSN"`
}

// IngestionConfig holds settings of the snapshot job.
type IngestionConfig struct {
	PairsFile string `yaml:"pairsFile"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// envOverrides maps recognized environment variables onto config fields.
var envOverrides = []struct {
	name  string
	field func(*Config) *string
}{
	{"GCP_PROJECT", func(c *Config) *string { return &c.GCP.ProjectID }},
	{"FIRESTORE_DATABASE", func(c *Config) *string { return &c.GCP.FirestoreDatabase }},
	{"SERVICE_ACCOUNT_INFO", func(c *Config) *string { return &c.GCP.ServiceAccountInfo }},
	{"TELEGRAM_TOKEN", func(c *Config) *string { return &c.Telegram.Token }},
	{"PORT", func(c *Config) *string { return &c.Server.Port }},
	{"PAIRS_FILE", func(c *Config) *string { return &c.Ingestion.PairsFile }},
	{"LOG_LEVEL", func(c *Config) *string { return &c.Logging.Level }},
	{"DOCUMENT_STORE_DRIVER", func(c *Config) *string { return &c.DocumentStore.Driver }},
	{"WAREHOUSE_DRIVER", func(c *Config) *string { return &c.Warehouse.Driver }},
}

// LoadConfig loads configuration from a YAML file, then applies environment overrides and defaults.
// A missing file is not an error: the serverless deployments configure everything through the environment.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	case os.IsNotExist(err):
		logrus.Warnf("Config file %s not found, using environment and defaults", path)
	default:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	for _, o := range envOverrides {
		if v, ok := os.LookupEnv(o.name); ok && v != "" {
			*o.field(&cfg) = v
		}
	}

	applyDefaults(&cfg)

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000 // 10 seconds
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", cfg.DEXScreener.RequestTimeoutMillis)
	}
	if cfg.DEXScreener.RequestsPerMinute == 0 {
		cfg.DEXScreener.RequestsPerMinute = 300 // published limit of the pairs endpoint
		logrus.Infof("DEXScreener.RequestsPerMinute not set, defaulting to %d", cfg.DEXScreener.RequestsPerMinute)
	}

	if cfg.Telegram.BaseURL == "" {
		cfg.Telegram.BaseURL = "https://api.telegram.org"
	}
	if cfg.Telegram.RequestTimeoutMillis == 0 {
		cfg.Telegram.RequestTimeoutMillis = 10000
	}

	if cfg.Webhook.MomentumCollection == "" {
		cfg.Webhook.MomentumCollection = "momentum"
	}
	if cfg.Webhook.TrackedTokensCollection == "" {
		cfg.Webhook.TrackedTokensCollection = "tracked-tokens"
	}

	cfg.DocumentStore.Driver = strings.ToLower(cfg.DocumentStore.Driver)
	if cfg.DocumentStore.Driver == "" {
		cfg.DocumentStore.Driver = DriverFirestore
	}
	cfg.Warehouse.Driver = strings.ToLower(cfg.Warehouse.Driver)
	if cfg.Warehouse.Driver == "" {
		cfg.Warehouse.Driver = DriverBigQuery
	}
	if cfg.Warehouse.Dataset == "" {
		cfg.Warehouse.Dataset = "dev_momentum"
	}
	if cfg.Warehouse.Table == "" {
		cfg.Warehouse.Table = "raw"
	}

	if cfg.Ingestion.PairsFile == "" {
		cfg.Ingestion.PairsFile = "pairs.yaml"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

var validate = validator.New()

// Requirement sets checked before the matching client is constructed.
type (
	firestoreRequirements struct {
		ProjectID string `validate:"required"`
		Database  string `validate:"required"`
	}
	telegramRequirements struct {
		Token string `validate:"required"`
	}
	bigQueryRequirements struct {
		ServiceAccountInfo string `validate:"required,json"`
	}
	redisRequirements struct {
		Addr string `validate:"required,hostname_port"`
	}
	clickHouseRequirements struct {
		DSN string `validate:"required,url"`
	}
)

// ValidateWebhook checks the options the webhook binary cannot start without.
func (c *Config) ValidateWebhook() error {
	if err := validateStruct("telegram", telegramRequirements{Token: c.Telegram.Token}); err != nil {
		return err
	}
	switch c.DocumentStore.Driver {
	case DriverFirestore:
		return validateStruct("firestore", firestoreRequirements{ProjectID: c.GCP.ProjectID, Database: c.GCP.FirestoreDatabase})
	case DriverRedis:
		return validateStruct("redis", redisRequirements{Addr: c.DocumentStore.RedisAddr})
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown document store driver %q", c.DocumentStore.Driver)
	}
}

// ValidateIngestion checks the options the fetch binary cannot start without.
func (c *Config) ValidateIngestion() error {
	switch c.Warehouse.Driver {
	case DriverBigQuery:
		return validateStruct("bigquery", bigQueryRequirements{ServiceAccountInfo: c.GCP.ServiceAccountInfo})
	case DriverClickHouse:
		return validateStruct("clickhouse", clickHouseRequirements{DSN: c.Warehouse.ClickHouseDSN})
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown warehouse driver %q", c.Warehouse.Driver)
	}
}

func validateStruct(section string, v any) error {
	if err := validate.Struct(v); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid %s configuration: %s", section, strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid %s configuration: %w", section, err)
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Encryption EncryptionConfig
	Banking    BankingConfig
	Sync       SyncConfig
	Scheduler  SchedulerConfig
	Kafka      KafkaConfig
	Telemetry  TelemetryConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type EncryptionConfig struct {
	// Secret is the passphrase the token vault derives its AES key from.
	// Any non-empty value works; key stretching happens at startup.
	Secret string
}

type BankingConfig struct {
	BaseURL            string
	RequestingBank     string
	RequestingBankName string
	ClientID           string
	Timeout            time.Duration
}

type SyncConfig struct {
	PassTimeout time.Duration
}

type SchedulerConfig struct {
	Enabled      bool
	Interval     time.Duration
	StaleAfter   time.Duration
	WorkerCount  int
	JobDelay     time.Duration
	QueueSize    int
	RunOnStartup bool
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
}

func Load() (*Config, error) {

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	bankingTimeout, err := time.ParseDuration(getEnv("BANKING_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BANKING_API_TIMEOUT: %w", err)
	}

	passTimeout, err := time.ParseDuration(getEnv("SYNC_PASS_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_PASS_TIMEOUT: %w", err)
	}

	// Parse scheduler configuration
	schedulerEnabled := getBoolEnv("SCHEDULER_ENABLED", true)
	schedulerInterval, err := time.ParseDuration(getEnv("SCHEDULER_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_INTERVAL: %w", err)
	}
	schedulerStaleAfter, err := time.ParseDuration(getEnv("SCHEDULER_STALE_AFTER", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_STALE_AFTER: %w", err)
	}
	schedulerWorkers, err := strconv.Atoi(getEnv("SCHEDULER_WORKERS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_WORKERS: %w", err)
	}
	schedulerJobDelay, err := time.ParseDuration(getEnv("SCHEDULER_JOB_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_JOB_DELAY: %w", err)
	}
	schedulerQueueSize, err := strconv.Atoi(getEnv("SCHEDULER_QUEUE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_QUEUE_SIZE: %w", err)
	}
	schedulerRunOnStartup := getBoolEnv("SCHEDULER_RUN_ON_STARTUP", false)

	// Parse Kafka brokers (comma-separated list)
	var kafkaBrokers []string
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			kafkaBrokers = append(kafkaBrokers, broker)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "multibank"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "multibank"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Encryption: EncryptionConfig{
			Secret: getEnv("ENCRYPTION_SECRET", ""),
		},
		Banking: BankingConfig{
			BaseURL:            getEnv("BANKING_API_BASE_URL", ""),
			RequestingBank:     getEnv("BANKING_REQUESTING_BANK", "multibank"),
			RequestingBankName: getEnv("BANKING_REQUESTING_BANK_NAME", "Multibank"),
			ClientID:           getEnv("BANKING_CLIENT_ID", ""),
			Timeout:            bankingTimeout,
		},
		Sync: SyncConfig{
			PassTimeout: passTimeout,
		},
		Scheduler: SchedulerConfig{
			Enabled:      schedulerEnabled,
			Interval:     schedulerInterval,
			StaleAfter:   schedulerStaleAfter,
			WorkerCount:  schedulerWorkers,
			JobDelay:     schedulerJobDelay,
			QueueSize:    schedulerQueueSize,
			RunOnStartup: schedulerRunOnStartup,
		},
		Kafka: KafkaConfig{
			Enabled: getBoolEnv("KAFKA_ENABLED", false),
			Brokers: kafkaBrokers,
			Topic:   getEnv("KAFKA_SYNC_TOPIC", "sync_completed"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "multibank-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4318"),
		},
	}

	// Validate required fields
	if cfg.Encryption.Secret == "" {
		return nil, fmt.Errorf("ENCRYPTION_SECRET is required")
	}
	if cfg.Banking.BaseURL == "" {
		return nil, fmt.Errorf("BANKING_API_BASE_URL is required")
	}
	if cfg.Banking.ClientID == "" {
		return nil, fmt.Errorf("BANKING_CLIENT_ID is required")
	}

	return cfg, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}

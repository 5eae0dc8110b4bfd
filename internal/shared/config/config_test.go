package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("ENCRYPTION_SECRET", "test-encryption-secret")
	t.Setenv("BANKING_API_BASE_URL", "https://bank.example.com/api/v1")
	t.Setenv("BANKING_CLIENT_ID", "team073-1")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Encryption.Secret != "test-encryption-secret" {
		t.Errorf("Encryption.Secret = %q, want %q", cfg.Encryption.Secret, "test-encryption-secret")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.Banking.Timeout != 30*time.Second {
		t.Errorf("Banking.Timeout = %v, want 30s", cfg.Banking.Timeout)
	}
	if cfg.Scheduler.Interval != time.Hour {
		t.Errorf("Scheduler.Interval = %v, want 1h", cfg.Scheduler.Interval)
	}
	if cfg.Scheduler.StaleAfter != time.Hour {
		t.Errorf("Scheduler.StaleAfter = %v, want 1h", cfg.Scheduler.StaleAfter)
	}
	if cfg.Sync.PassTimeout != 5*time.Minute {
		t.Errorf("Sync.PassTimeout = %v, want 5m", cfg.Sync.PassTimeout)
	}
}

func TestLoad_MissingEncryptionSecret(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("ENCRYPTION_SECRET", "")
	os.Unsetenv("ENCRYPTION_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing ENCRYPTION_SECRET, got nil")
	}
}

func TestLoad_MissingBankingBaseURL(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("BANKING_API_BASE_URL", "")
	os.Unsetenv("BANKING_API_BASE_URL")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing BANKING_API_BASE_URL, got nil")
	}
}

func TestLoad_MissingBankingClientID(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("BANKING_CLIENT_ID", "")
	os.Unsetenv("BANKING_CLIENT_ID")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing BANKING_CLIENT_ID, got nil")
	}
}

func TestLoad_InvalidDBPort(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid DB_PORT, got nil")
	}
}

func TestLoad_InvalidSchedulerInterval(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("SCHEDULER_INTERVAL", "often")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid SCHEDULER_INTERVAL, got nil")
	}
}

func TestLoad_SchedulerConfig(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("SCHEDULER_WORKERS", "10")
	t.Setenv("SCHEDULER_INTERVAL", "30m")
	t.Setenv("SCHEDULER_RUN_ON_STARTUP", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Scheduler.Enabled != false {
		t.Error("Scheduler.Enabled should be false")
	}
	if cfg.Scheduler.WorkerCount != 10 {
		t.Errorf("Scheduler.WorkerCount = %d, want 10", cfg.Scheduler.WorkerCount)
	}
	if cfg.Scheduler.Interval != 30*time.Minute {
		t.Errorf("Scheduler.Interval = %v, want 30m", cfg.Scheduler.Interval)
	}
	if cfg.Scheduler.RunOnStartup != true {
		t.Error("Scheduler.RunOnStartup should be true")
	}
}

func TestLoad_KafkaBrokers(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092 ,broker3:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if !cfg.Kafka.Enabled {
		t.Error("Kafka.Enabled should be true")
	}
	if len(cfg.Kafka.Brokers) != 3 {
		t.Errorf("Kafka.Brokers length = %d, want 3", len(cfg.Kafka.Brokers))
	}
	if cfg.Kafka.Brokers[1] != "broker2:9092" {
		t.Errorf("Kafka.Brokers[1] = %q, want trimmed broker2:9092", cfg.Kafka.Brokers[1])
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value    string
		defVal   bool
		expected bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"invalid", true, true},   // returns default
		{"invalid", false, false}, // returns default
		{"", true, true},          // empty returns default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			key := "TEST_BOOL_ENV"
			if tt.value == "" {
				os.Unsetenv(key)
			} else {
				t.Setenv(key, tt.value)
			}

			got := getBoolEnv(key, tt.defVal)
			if got != tt.expected {
				t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defVal, got, tt.expected)
			}
		})
	}
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	got := cfg.ConnectionString()
	if got != expected {
		t.Errorf("ConnectionString() = %q, want %q", got, expected)
	}
}

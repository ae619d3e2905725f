package config

import (
	"os"
	"testing"
	"time"
)

func setEnvVars(vars map[string]string) {
	for k, v := range vars {
		os.Setenv(k, v)
	}
}

func clearEnvVars(vars []string) {
	for _, k := range vars {
		os.Unsetenv(k)
	}
}

var allEnvVars = []string{
	"HOST", "PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT", "ENVIRONMENT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "DB_CONN_MAX_IDLE_TIME",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_POOL_SIZE",
	"REDIS_MIN_IDLE_CONNS", "REDIS_MAX_RETRIES", "REDIS_DIAL_TIMEOUT", "REDIS_READ_TIMEOUT", "REDIS_WRITE_TIMEOUT",
	"SMTP_HOST", "SMTP_PORT", "EMAIL_USER", "EMAIL_PASS", "EMAIL_FROM",
	"WORKER_CONCURRENCY", "WORKER_POLL_INTERVAL", "WORKER_MAIL_QUEUE",
	"JWT_SECRET", "TOKEN_TTL", "OTP_TTL", "BCRYPT_COST",
	"UPLOAD_DIR", "UPLOAD_MAX_SIZE_MB", "UPLOAD_PUBLIC_PATH",
	"RATE_LIMIT_ENABLED", "RATE_LIMIT_RPM", "RATE_LIMIT_BURST", "RATE_LIMIT_CLEANUP",
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error with default config, got: %v", err)
	}

	if config.Server.Host != "localhost" {
		t.Errorf("Expected default host 'localhost', got %s", config.Server.Host)
	}

	if config.Server.Port != "5000" {
		t.Errorf("Expected default port '5000', got %s", config.Server.Port)
	}

	if config.Server.Environment != "development" {
		t.Errorf("Expected default environment 'development', got %s", config.Server.Environment)
	}

	if config.Database.Name != "gig_marketplace" {
		t.Errorf("Expected default DB name 'gig_marketplace', got %s", config.Database.Name)
	}

	if config.Database.MaxOpenConns != 25 {
		t.Errorf("Expected default max open conns 25, got %d", config.Database.MaxOpenConns)
	}

	if config.Redis.Port != "6379" {
		t.Errorf("Expected default Redis port '6379', got %s", config.Redis.Port)
	}

	if config.Auth.TokenTTL != time.Hour {
		t.Errorf("Expected default token TTL 1h, got %v", config.Auth.TokenTTL)
	}

	if config.Auth.OTPTTL != 10*time.Minute {
		t.Errorf("Expected default OTP TTL 10m, got %v", config.Auth.OTPTTL)
	}

	if config.Worker.MailQueue != "mail" {
		t.Errorf("Expected default mail queue 'mail', got %s", config.Worker.MailQueue)
	}

	if config.Upload.Dir != "uploads" {
		t.Errorf("Expected default upload dir 'uploads', got %s", config.Upload.Dir)
	}

	if !config.RateLimit.Enabled {
		t.Error("Expected rate limiting to default to enabled")
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnvVars(allEnvVars)
	setEnvVars(map[string]string{
		"PORT":       "9090",
		"DB_NAME":    "marketplace_test",
		"OTP_TTL":    "5m",
		"JWT_SECRET": "override-secret",
	})
	defer clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.Server.Port != "9090" {
		t.Errorf("Expected port '9090', got %s", config.Server.Port)
	}

	if config.Database.Name != "marketplace_test" {
		t.Errorf("Expected DB name 'marketplace_test', got %s", config.Database.Name)
	}

	if config.Auth.OTPTTL != 5*time.Minute {
		t.Errorf("Expected OTP TTL 5m, got %v", config.Auth.OTPTTL)
	}

	if config.Auth.JWTSecret != "override-secret" {
		t.Errorf("Expected overridden JWT secret, got %s", config.Auth.JWTSecret)
	}
}

func TestLoadConfig_ProductionGuards(t *testing.T) {
	clearEnvVars(allEnvVars)
	setEnvVars(map[string]string{"ENVIRONMENT": "production"})
	defer clearEnvVars(allEnvVars)

	if _, err := LoadConfig(); err == nil {
		t.Error("Expected production config without DB password to fail")
	}

	setEnvVars(map[string]string{
		"DB_PASSWORD": "secret",
		"JWT_SECRET":  "real-secret",
		"EMAIL_USER":  "mailer@example.com",
	})

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected fully configured production to load, got: %v", err)
	}

	if !config.IsProduction() {
		t.Error("Expected IsProduction to be true")
	}
}

func TestConfigHelpers(t *testing.T) {
	clearEnvVars(allEnvVars)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	dsn := config.GetDatabaseDSN()
	expected := "host=localhost port=5432 user=postgres password= dbname=gig_marketplace sslmode=disable"
	if dsn != expected {
		t.Errorf("Unexpected DSN: %s", dsn)
	}

	if config.GetRedisAddr() != "localhost:6379" {
		t.Errorf("Unexpected redis addr: %s", config.GetRedisAddr())
	}

	if config.GetServerAddr() != "localhost:5000" {
		t.Errorf("Unexpected server addr: %s", config.GetServerAddr())
	}
}

package config

import (
	"os"
	"slices"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT",
	"SERVER_HOST",
	"SERVER_READ_TIMEOUT",
	"SERVER_WRITE_TIMEOUT",
	"SERVER_IDLE_TIMEOUT",
	"SERVER_SHUTDOWN_TIMEOUT",
	"CORS_ALLOWED_ORIGINS",
	"APP_ENV",
	"LOG_LEVEL",
	"APP_ID_VERSION",
	"APP_ID_RETRIES",
	"SERVICE_NAME",
	"SERVICE_VERSION",
}

// unsetEnv clears keys for the duration of the test so defaults apply.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, prev) })
		}
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, allKeys...)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "3333" {
		t.Errorf("Server.Port = %s, want 3333", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %s, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Addr() != "0.0.0.0:3333" {
		t.Errorf("Server.Addr() = %s, want 0.0.0.0:3333", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 30s", cfg.Server.ShutdownTimeout)
	}
	if len(cfg.Server.CORSAllowedOrigins) != 0 {
		t.Errorf("Server.CORSAllowedOrigins = %v, want empty", cfg.Server.CORSAllowedOrigins)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("App.Environment = %s, want development", cfg.App.Environment)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("App.LogLevel = %s, want info", cfg.App.LogLevel)
	}
	if cfg.App.IDVersion != 4 {
		t.Errorf("App.IDVersion = %d, want 4", cfg.App.IDVersion)
	}
	if cfg.App.IDRetries != 1 {
		t.Errorf("App.IDRetries = %d, want 1", cfg.App.IDRetries)
	}
	if cfg.App.ServiceName != "repositories" {
		t.Errorf("App.ServiceName = %s, want repositories", cfg.App.ServiceName)
	}
}

func TestLoad_Overrides(t *testing.T) {
	unsetEnv(t, allKeys...)

	envVars := map[string]string{
		"PORT":                    "8080",
		"SERVER_HOST":             "127.0.0.1",
		"SERVER_READ_TIMEOUT":     "5m",
		"SERVER_WRITE_TIMEOUT":    "30s",
		"SERVER_IDLE_TIMEOUT":     "2h",
		"SERVER_SHUTDOWN_TIMEOUT": "1m30s",
		"CORS_ALLOWED_ORIGINS":    "https://a.example,https://b.example",
		"APP_ENV":                 "test",
		"LOG_LEVEL":               "debug",
		"APP_ID_VERSION":          "7",
		"APP_ID_RETRIES":          "3",
		"SERVICE_NAME":            "repositories-test",
		"SERVICE_VERSION":         "1.2.3",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("Server.Addr() = %s, want 127.0.0.1:8080", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 5*time.Minute {
		t.Errorf("Server.ReadTimeout = %v, want 5m", cfg.Server.ReadTimeout)
	}
	if cfg.Server.IdleTimeout != 2*time.Hour {
		t.Errorf("Server.IdleTimeout = %v, want 2h", cfg.Server.IdleTimeout)
	}
	if cfg.Server.ShutdownTimeout != 90*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 1m30s", cfg.Server.ShutdownTimeout)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(cfg.Server.CORSAllowedOrigins, wantOrigins) {
		t.Errorf("Server.CORSAllowedOrigins = %v, want %v", cfg.Server.CORSAllowedOrigins, wantOrigins)
	}
	if cfg.App.IDVersion != 7 {
		t.Errorf("App.IDVersion = %d, want 7", cfg.App.IDVersion)
	}
	if cfg.App.IDRetries != 3 {
		t.Errorf("App.IDRetries = %d, want 3", cfg.App.IDRetries)
	}
	if cfg.App.ServiceVersion != "1.2.3" {
		t.Errorf("App.ServiceVersion = %s, want 1.2.3", cfg.App.ServiceVersion)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid duration", "SERVER_READ_TIMEOUT", "invalid"},
		{"zero duration", "SERVER_SHUTDOWN_TIMEOUT", "0s"},
		{"empty port", "PORT", ""},
		{"unknown environment", "APP_ENV", "qa"},
		{"unknown log level", "LOG_LEVEL", "trace"},
		{"unsupported id version", "APP_ID_VERSION", "5"},
		{"non-numeric id version", "APP_ID_VERSION", "four"},
		{"negative id retries", "APP_ID_RETRIES", "-1"},
		{"empty service name", "SERVICE_NAME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, allKeys...)
			t.Setenv(tt.envVar, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail when %s=%q", tt.envVar, tt.value)
			}
		})
	}
}

func TestServerConfig_Validate(t *testing.T) {
	valid := ServerConfig{
		Port:            "3333",
		Host:            "localhost",
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	noHost := valid
	noHost.Host = ""
	if err := noHost.Validate(); err == nil {
		t.Error("Validate() should reject empty host")
	}

	negativeIdle := valid
	negativeIdle.IdleTimeout = -time.Second
	if err := negativeIdle.Validate(); err == nil {
		t.Error("Validate() should reject negative idle timeout")
	}
}

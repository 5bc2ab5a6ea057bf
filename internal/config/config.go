package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/chat"
	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/verify"
)

// Config aggregates the service configuration.
type Config struct {
	Server  ServerConfig
	Verify  VerifyConfig
	Session SessionConfig
	Log     LogConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// VerifyConfig describes the upstream recharge API.
type VerifyConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig describes session lifecycle limits.
type SessionConfig struct {
	IdleTimeout time.Duration
}

// LogConfig describes logging behavior.
type LogConfig struct {
	Level string
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	verifyTimeout, err := parseDurationEnv("VERIFY_TIMEOUT", verify.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("SESSION_IDLE_TIMEOUT", chat.DefaultIdleTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: server,
		Verify: VerifyConfig{
			BaseURL: getEnvOrDefault("VERIFY_BASE_URL", verify.DefaultBaseURL),
			Timeout: verifyTimeout,
		},
		Session: SessionConfig{IdleTimeout: idleTimeout},
		Log:     LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "info")},
	}, nil
}

// loadServerConfig parses the listen address.
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/titanous/json5"
)

// Config is the root configuration for the aula server.
type Config struct {
	Relay    RelayConfig    `json:"relay"`
	Database DatabaseConfig `json:"database"`
	Web      WebConfig      `json:"web"`
	Log      LogConfig      `json:"log"`
}

// RelayConfig configures the WebSocket relay listener.
type RelayConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`

	// AllowedOrigins whitelists browser origins for the WebSocket
	// upgrade. Empty = allow all (dev mode).
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	// RateLimitRPM caps inbound chat frames per connection per minute.
	// 0 disables rate limiting.
	RateLimitRPM int `json:"rate_limit_rpm,omitempty"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Backend is "sqlite" (default) or "memory" (volatile, for tests
	// and local experiments).
	Backend string `json:"backend,omitempty"`
	Path    string `json:"path,omitempty"`
}

// WebConfig configures static asset serving.
type WebConfig struct {
	// Dir is served at "/" when non-empty.
	Dir string `json:"dir,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `json:"level,omitempty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Relay: RelayConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		Database: DatabaseConfig{
			Backend: "sqlite",
			Path:    "chat.db",
		},
		Web: WebConfig{
			Dir: "public",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads config from a JSON5 file, then overlays env vars.
// A missing file is not an error: defaults plus env apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json5.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	envStr := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	envStr("AULA_HOST", &c.Relay.Host)
	envInt("AULA_PORT", &c.Relay.Port)
	envInt("AULA_RATE_LIMIT_RPM", &c.Relay.RateLimitRPM)
	envStr("AULA_DB_BACKEND", &c.Database.Backend)
	envStr("AULA_DB_PATH", &c.Database.Path)
	envStr("AULA_WEB_DIR", &c.Web.Dir)
	envStr("AULA_LOG_LEVEL", &c.Log.Level)
}

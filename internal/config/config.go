// Package config resolves the daemon client's settings from an optional
// TOML file, environment variables, and programmatic overrides, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultMaxSendTime is the per-frame send budget in seconds.
	DefaultMaxSendTime = 0.005
	// MinMaxSendTime is the floor below which budgets are clamped.
	MinMaxSendTime = 0.001

	EnvConfigFile    = "OCDAEMON_CONFIG"
	EnvSocketPath    = "OCDAEMON_SOCKET_PATH"
	EnvNamedPipePath = "OCDAEMON_NAMED_PIPE_PATH"
	EnvMaxSendTime   = "OCDAEMON_MAX_SEND_TIME"
)

type Config struct {
	SocketPath    string  `toml:"socket_path"`
	NamedPipePath string  `toml:"named_pipe_path"`
	MaxSendTime   float64 `toml:"max_send_time_seconds"`
}

func Default() Config {
	return Config{MaxSendTime: DefaultMaxSendTime}
}

// Load resolves the effective configuration. An empty path falls back to
// the OCDAEMON_CONFIG environment variable; no file at all is not an
// error. Unrecognized keys in the file are ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnvOverrides(&cfg)
	return Normalize(cfg), nil
}

func loadToml(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSocketPath)); v != "" {
		cfg.SocketPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvNamedPipePath)); v != "" {
		cfg.NamedPipePath = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvMaxSendTime)); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			cfg.MaxSendTime = v
		}
	}
}

// Normalize clamps the send budget to its floor and fills the default.
func Normalize(cfg Config) Config {
	if cfg.MaxSendTime <= 0 {
		cfg.MaxSendTime = DefaultMaxSendTime
	}
	if cfg.MaxSendTime < MinMaxSendTime {
		cfg.MaxSendTime = MinMaxSendTime
	}
	return cfg
}

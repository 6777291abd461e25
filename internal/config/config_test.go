package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvSocketPath, "")
	t.Setenv(EnvNamedPipePath, "")
	t.Setenv(EnvMaxSendTime, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketPath != "" || cfg.NamedPipePath != "" {
		t.Fatalf("unexpected paths: %+v", cfg)
	}
	if cfg.MaxSendTime != DefaultMaxSendTime {
		t.Fatalf("MaxSendTime = %v", cfg.MaxSendTime)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvSocketPath, "")
	t.Setenv(EnvMaxSendTime, "")

	path := filepath.Join(t.TempDir(), "ocdaemon.toml")
	body := "socket_path = \"/run/oc.sock\"\nmax_send_time_seconds = 0.01\nignored_key = true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketPath != "/run/oc.sock" {
		t.Fatalf("SocketPath = %q", cfg.SocketPath)
	}
	if cfg.MaxSendTime != 0.01 {
		t.Fatalf("MaxSendTime = %v", cfg.MaxSendTime)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for explicit missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv(EnvSocketPath, "/tmp/override.sock")
	t.Setenv(EnvNamedPipePath, `\\.\pipe\override`)
	t.Setenv(EnvMaxSendTime, "0.25")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SocketPath != "/tmp/override.sock" {
		t.Fatalf("SocketPath = %q", cfg.SocketPath)
	}
	if cfg.NamedPipePath != `\\.\pipe\override` {
		t.Fatalf("NamedPipePath = %q", cfg.NamedPipePath)
	}
	if cfg.MaxSendTime != 0.25 {
		t.Fatalf("MaxSendTime = %v", cfg.MaxSendTime)
	}
}

func TestNormalizeClampsFloor(t *testing.T) {
	cfg := Normalize(Config{MaxSendTime: 0.0001})
	if cfg.MaxSendTime != MinMaxSendTime {
		t.Fatalf("MaxSendTime = %v", cfg.MaxSendTime)
	}
	cfg = Normalize(Config{})
	if cfg.MaxSendTime != DefaultMaxSendTime {
		t.Fatalf("MaxSendTime = %v", cfg.MaxSendTime)
	}
}

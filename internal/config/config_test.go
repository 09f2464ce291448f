package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" || cfg.DefaultRoom != "default" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PingPeriod != 54*time.Second || cfg.PongWait != 60*time.Second {
		t.Fatalf("durations: ping=%v pong=%v", cfg.PingPeriod, cfg.PongWait)
	}
	if len(cfg.ICEServers) != 1 || cfg.ICEServers[0].URLs[0] != "stun:stun.l.google.com:19302" {
		t.Fatalf("ice servers: %+v", cfg.ICEServers)
	}
	if cfg.JoinRateLimit != 0 {
		t.Fatalf("join rate limiting must be opt-in, got limit %d", cfg.JoinRateLimit)
	}
}

func TestLoad_JoinRateLimitOptIn(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SIGNAL_JOIN_RATE_LIMIT", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JoinRateLimit != 5 || cfg.JoinRateInterval != 10*time.Second {
		t.Fatalf("limit=%d interval=%v", cfg.JoinRateLimit, cfg.JoinRateInterval)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
mode: debug
port: 9000
default_room: lobby
backpressure_policy: kick
allowed_origins:
  - https://example.com
ice_servers:
  - urls: ["turn:turn.example.com:3478"]
    username: u
    credential: p
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SIGNAL_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env override ignored: port=%d", cfg.Port)
	}
	if cfg.Mode != "debug" || cfg.DefaultRoom != "lobby" || cfg.BackpressurePolicy != "kick" {
		t.Fatalf("file values ignored: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.com" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if len(cfg.ICEServers) != 1 || cfg.ICEServers[0].Username != "u" {
		t.Fatalf("ice servers: %+v", cfg.ICEServers)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:               8080,
			ReadLimit:          1024,
			SendBuffer:         8,
			PingPeriod:         time.Second,
			PongWait:           2 * time.Second,
			WriteWait:          time.Second,
			BackpressurePolicy: "drop",
			JoinRateLimit:      1,
			JoinRateInterval:   time.Second,
		}
	}
	base := valid()
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	mutations := map[string]func(*Config){
		"port":        func(c *Config) { c.Port = 0 },
		"read limit":  func(c *Config) { c.ReadLimit = 0 },
		"send buffer": func(c *Config) { c.SendBuffer = 0 },
		"ping>=pong":  func(c *Config) { c.PingPeriod = c.PongWait },
		"write wait":  func(c *Config) { c.WriteWait = 0 },
		"policy":      func(c *Config) { c.BackpressurePolicy = "evict" },
		"rate":        func(c *Config) { c.JoinRateLimit = -1 },
		"interval":    func(c *Config) { c.JoinRateInterval = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

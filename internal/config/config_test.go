package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Network.TickRate.Std() != 50*time.Millisecond {
		t.Fatalf("default tick rate %v, want 50ms", cfg.Network.TickRate)
	}
	if cfg.Scheduler.BaseInterval != 0.1 || cfg.Scheduler.MinUpdatePct != 0.10 {
		t.Fatalf("scheduler defaults wrong: interval=%v pct=%v",
			cfg.Scheduler.BaseInterval, cfg.Scheduler.MinUpdatePct)
	}
	if cfg.Database.DSN != "" {
		t.Fatalf("persistence enabled by default (dsn=%q)", cfg.Database.DSN)
	}
	if cfg.Arena.SerpentSegments != 8 {
		t.Fatalf("default serpent segments %d, want 8", cfg.Arena.SerpentSegments)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	raw := `
[network]
bind_address = "127.0.0.1:9001"
tick_rate = "25ms"

[scheduler]
base_per_tick = 20

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Network.BindAddress != "127.0.0.1:9001" {
		t.Fatalf("bind address %q, want override", cfg.Network.BindAddress)
	}
	if cfg.Network.TickRate.Std() != 25*time.Millisecond {
		t.Fatalf("tick rate %v, want overridden 25ms", cfg.Network.TickRate)
	}
	if cfg.Scheduler.BasePerTick != 20 {
		t.Fatalf("base_per_tick %d, want overridden 20", cfg.Scheduler.BasePerTick)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level %q, want debug", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Scheduler.BaseInterval != 0.1 {
		t.Fatalf("base_interval %v changed by partial overlay", cfg.Scheduler.BaseInterval)
	}
	if cfg.Server.Name != "wormden" {
		t.Fatalf("server name %q changed by partial overlay", cfg.Server.Name)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

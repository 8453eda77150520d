package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML files can carry "50ms"-style
// strings. BurntSushi/toml decodes strings only through TextUnmarshaler.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Network   NetworkConfig   `toml:"network"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Arena     ArenaConfig     `toml:"arena"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Name       string `toml:"name"`
	ScriptsDir string `toml:"scripts_dir"`
	DataDir    string `toml:"data_dir"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables persistence
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime Duration `toml:"conn_max_lifetime"`
}

type NetworkConfig struct {
	BindAddress   string   `toml:"bind_address"`
	TickRate      Duration `toml:"tick_rate"`
	SnapshotEvery int           `toml:"snapshot_every"` // ticks between broadcasts
	IntentQueue   int           `toml:"intent_queue"`
}

// SchedulerConfig tunes the enemy update scheduler. Intervals are
// simulation seconds; sweep periods are tick counts.
type SchedulerConfig struct {
	BaseInterval  float64 `toml:"base_interval"`
	MinUpdatePct  float64 `toml:"min_update_pct"`
	BasePerTick   int     `toml:"base_per_tick"`
	LODDistance   float64 `toml:"lod_distance"`
	LODMultiplier float64 `toml:"lod_multiplier"`
	CacheRefresh  float64 `toml:"cache_refresh"`
	ValidateEvery int     `toml:"validate_every"`
	CleanupEvery  int     `toml:"cleanup_every"`
}

type ArenaConfig struct {
	SerpentSegments int     `toml:"serpent_segments"`
	SegmentSpacing  float64 `toml:"segment_spacing"`
	SerpentSpeed    float64 `toml:"serpent_speed"`
	SerpentHealth   float64 `toml:"serpent_health"`
	HeadDamage      int     `toml:"head_damage"` // per tick of head overlap
	DropTTL         float64 `toml:"drop_ttl"`    // seconds
	PickupRadius    float64 `toml:"pickup_radius"`
	XPPerSegment    int     `toml:"xp_per_segment"` // growth threshold
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:       "wormden",
			ScriptsDir: "scripts",
			DataDir:    "data",
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: Duration(30 * time.Minute),
		},
		Network: NetworkConfig{
			BindAddress:   "0.0.0.0:7920",
			TickRate:      Duration(50 * time.Millisecond),
			SnapshotEvery: 2,
			IntentQueue:   128,
		},
		Scheduler: SchedulerConfig{
			BaseInterval:  0.1,
			MinUpdatePct:  0.10,
			BasePerTick:   10,
			LODDistance:   30.0,
			LODMultiplier: 2.0,
			CacheRefresh:  0.5,
			ValidateEvery: 300,
			CleanupEvery:  30,
		},
		Arena: ArenaConfig{
			SerpentSegments: 8,
			SegmentSpacing:  1.2,
			SerpentSpeed:    6.0,
			SerpentHealth:   100,
			HeadDamage:      2,
			DropTTL:         20.0,
			PickupRadius:    1.5,
			XPPerSegment:    25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

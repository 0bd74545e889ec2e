package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App struct {
		ListenAddr       string `toml:"listen_addr"`
		SnapshotEveryMin int    `toml:"snapshot_every_min"`
	} `toml:"app"`

	Infoway struct {
		APIKey         string  `toml:"api_key"`
		APIBase        string  `toml:"api_base"`
		WsURL          string  `toml:"ws_url"`
		HeartbeatSec   int     `toml:"heartbeat_sec"`
		SymbolsPerConn int     `toml:"symbols_per_conn"`
		Backoff        Backoff `toml:"backoff"`
	} `toml:"infoway"`

	Binance struct {
		Enabled bool   `toml:"enabled"`
		APIBase string `toml:"api_base"`
		PollMs  int    `toml:"poll_ms"`
	} `toml:"binance"`

	Stream struct {
		BroadcastMs int `toml:"broadcast_ms"`
		Buffer      int `toml:"buffer"`
	} `toml:"stream"`

	Redis struct {
		Enabled    bool   `toml:"enabled"`
		Addr       string `toml:"addr"`
		Password   string `toml:"password"`
		DB         int    `toml:"db"`
		Prefix     string `toml:"prefix"`
		TTLSeconds int    `toml:"ttl_sec"`
	} `toml:"redis"`

	SQLite struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"sqlite"`

	Postgres struct {
		Enabled bool   `toml:"enabled"`
		DSN     string `toml:"dsn"`
	} `toml:"postgres"`
}

type Backoff struct {
	InitialMs  int     `toml:"initial_ms"`
	Multiplier float64 `toml:"multiplier"`
	MaxMs      int     `toml:"max_ms"`
}

func (b Backoff) Initial() time.Duration { return time.Duration(b.InitialMs) * time.Millisecond }
func (b Backoff) Max() time.Duration     { return time.Duration(b.MaxMs) * time.Millisecond }

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.ListenAddr == "" {
		cfg.App.ListenAddr = ":5000"
	}
	if cfg.App.SnapshotEveryMin <= 0 {
		cfg.App.SnapshotEveryMin = 5
	}

	// Vendor-documented limits: 30s heartbeat, 600 symbols per connection,
	// 1s..30s reconnect window with 1.5 multiplier.
	if cfg.Infoway.APIKey == "" {
		cfg.Infoway.APIKey = os.Getenv("INFOWAY_API_KEY")
	}
	if cfg.Infoway.APIBase == "" {
		cfg.Infoway.APIBase = "https://data.infoway.io"
	}
	if cfg.Infoway.WsURL == "" {
		cfg.Infoway.WsURL = "wss://data.infoway.io/ws"
	}
	if cfg.Infoway.HeartbeatSec <= 0 {
		cfg.Infoway.HeartbeatSec = 30
	}
	if cfg.Infoway.SymbolsPerConn <= 0 {
		cfg.Infoway.SymbolsPerConn = 600
	}
	if cfg.Infoway.Backoff.InitialMs <= 0 {
		cfg.Infoway.Backoff.InitialMs = 1000
	}
	if cfg.Infoway.Backoff.Multiplier <= 1 {
		cfg.Infoway.Backoff.Multiplier = 1.5
	}
	if cfg.Infoway.Backoff.MaxMs <= 0 {
		cfg.Infoway.Backoff.MaxMs = 30000
	}

	if cfg.Binance.APIBase == "" {
		cfg.Binance.APIBase = "https://api.binance.com"
	}
	if cfg.Binance.PollMs <= 0 {
		cfg.Binance.PollMs = 500
	}

	if cfg.Stream.BroadcastMs <= 0 {
		cfg.Stream.BroadcastMs = 500
	}
	if cfg.Stream.Buffer <= 0 {
		cfg.Stream.Buffer = 100
	}

	if cfg.Redis.Prefix == "" {
		cfg.Redis.Prefix = "suimfx"
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Infoway.WsURL) == "" {
		return errors.New("infoway.ws_url empty")
	}
	if cfg.Redis.Enabled && strings.TrimSpace(cfg.Redis.Addr) == "" {
		return errors.New("redis.addr empty but enabled")
	}
	if cfg.SQLite.Enabled && strings.TrimSpace(cfg.SQLite.Path) == "" {
		return errors.New("sqlite.path empty but enabled")
	}
	if cfg.Postgres.Enabled && strings.TrimSpace(cfg.Postgres.DSN) == "" {
		return errors.New("postgres.dsn empty but enabled")
	}
	return nil
}

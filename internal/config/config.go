package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/strict-types/strict-encoding-sub000/internal/logging"
	"github.com/strict-types/strict-encoding-sub000/strict"
)

// Config is the stenc.toml runtime configuration.
type Config struct {
	Limits LimitsConfig
	Log    LogConfig
	Output OutputConfig
}

type LimitsConfig struct {
	// MaxPayload caps decoded payloads and container bodies.
	MaxPayload uint64
	// MaxSeal is the MaxLen recorded in containers written by stenc.
	MaxSeal    uint64
}

type LogConfig struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
}

type OutputConfig struct {
	// Format is the schema export format: yaml or cbor.
	Format string
}

// stenc.toml key mapping.
type fileConfig struct {
	MaxPayload   uint64 `toml:"max_payload"`
	MaxSeal      uint64 `toml:"max_seal"`
	LogLevel     string `toml:"log_level"`
	LogTimestamp bool   `toml:"log_timestamp"`
	LogNoColor   bool   `toml:"log_no_color"`
	OutputFormat string `toml:"output_format"`
}

func Default() Config {
	return Config{
		Limits: LimitsConfig{MaxPayload: strict.MaxU24, MaxSeal: strict.MaxU24},
		Log:    LogConfig{Level: zerolog.InfoLevel},
		Output: OutputConfig{Format: "yaml"},
	}
}

// Load reads path and overlays the keys it defines onto Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load stenc config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load stenc config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("max_payload") {
		cfg.Limits.MaxPayload = raw.MaxPayload
	}
	if meta.IsDefined("max_seal") {
		cfg.Limits.MaxSeal = raw.MaxSeal
	}
	if meta.IsDefined("log_level") {
		level, ok := logging.ParseLevel(raw.LogLevel)
		if !ok {
			return Config{}, fmt.Errorf("load stenc config: invalid log_level %q", raw.LogLevel)
		}
		cfg.Log.Level = level
	}
	if meta.IsDefined("log_timestamp") {
		cfg.Log.Timestamp = raw.LogTimestamp
	}
	if meta.IsDefined("log_no_color") {
		cfg.Log.NoColor = raw.LogNoColor
	}
	if meta.IsDefined("output_format") {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(raw.OutputFormat))
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("load stenc config: %w", err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if cfg.Limits.MaxPayload == 0 {
		return fmt.Errorf("max_payload must be positive")
	}
	if cfg.Limits.MaxSeal == 0 {
		return fmt.Errorf("max_seal must be positive")
	}
	switch cfg.Output.Format {
	case "yaml", "cbor":
	default:
		return fmt.Errorf("unsupported output_format %q (expected yaml or cbor)", cfg.Output.Format)
	}
	return nil
}

// Logging maps the log section onto a runtime logging config. Environment
// overrides still apply on top.
func (c Config) Logging() logging.Config {
	out := logging.DefaultConfig(logging.ProfileRuntime)
	out.Level = c.Log.Level
	out.Timestamp = c.Log.Timestamp
	out.NoColor = c.Log.NoColor
	logging.ApplyEnvOverrides(&out)
	return out
}

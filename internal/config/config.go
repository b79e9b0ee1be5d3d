// Package config loads application configuration from defaults, an optional
// YAML file, and command-line flags, in rising precedence.
package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the application configuration.
type Config struct {
	Log   LogConfig   `koanf:"log"`
	Trace TraceConfig `koanf:"trace"`
	Seed  SeedConfig  `koanf:"seed"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "console" or "json".
	Format string `koanf:"format"`
}

// TraceConfig configures the event trace recorder.
type TraceConfig struct {
	// BufferSize is the number of envelopes the recorder retains.
	BufferSize int `koanf:"buffer_size"`
}

// SeedConfig configures the in-memory store's initial dataset.
type SeedConfig struct {
	// Path is the seed JSON document, empty for no seed.
	Path string `koanf:"path"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info", Format: "console"},
		Trace: TraceConfig{BufferSize: 256},
	}
}

func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"log.level":         d.Log.Level,
		"log.format":        d.Log.Format,
		"trace.buffer_size": d.Trace.BufferSize,
		"seed.path":         d.Seed.Path,
	}
}

// Load merges defaults, the optional YAML file, and flag overrides.
// A missing file at an explicitly given path is an error; an empty path is
// not.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.Trace.BufferSize <= 0 {
		cfg.Trace.BufferSize = Default().Trace.BufferSize
	}
	return cfg, nil
}

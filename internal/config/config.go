// SPDX-License-Identifier: EPL-2.0

// Package config loads wavtrim settings from defaults, an optional YAML
// file and WAVTRIM_ environment variables.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ik5/wavtrim"
	"github.com/ik5/wavtrim/internal/batch"
	"github.com/ik5/wavtrim/silence"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WAVTRIM_"

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds every tunable of the trimmer and the CLI.
//
// Precedence, lowest first: env tag defaults, the YAML file, environment
// variables. Command line flags are applied on top by the caller.
type Config struct {
	// Detection settings
	Eth         float64       `env:"ETH, overwrite, default=55" yaml:"eth" validate:"gte=0,lte=120"`
	Threshold   int           `env:"THRESHOLD, overwrite" yaml:"threshold" validate:"gte=0,lte=32767"` // overrides Eth when set
	Normalize   bool          `env:"NORMALIZE, overwrite" yaml:"normalize"`
	MaxDuration time.Duration `env:"MAX_DURATION, overwrite" yaml:"max_duration" validate:"gte=0"`
	MaxSilence  time.Duration `env:"MAX_SILENCE, overwrite" yaml:"max_silence" validate:"gte=0"`
	SkipSilent  bool          `env:"SKIP_SILENT, overwrite" yaml:"skip_silent"`

	// Directory mode settings
	Suffix     string `env:"SUFFIX, overwrite, default=_out" yaml:"suffix" validate:"excludesall=/\\"`
	Verbose    int    `env:"VERBOSE, overwrite" yaml:"verbose" validate:"gte=0"`
	ErrorsFile string `env:"ERRORS_FILE, overwrite, default=errors.txt" yaml:"errors_file" validate:"excludesall=/\\"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, overwrite, default=text" yaml:"log_format" validate:"oneof=text json"`
	LogLevel  string `env:"LOG_LEVEL, overwrite, default=info" yaml:"log_level" validate:"oneof=debug info warn warning error"`
}

// Load builds a Config from the YAML file at path (skipped when empty)
// and the process environment.
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, envconfig.OsLookuper())
}

func load(ctx context.Context, path string, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks value ranges and the logging choices.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// AmplitudeThreshold returns Threshold, or Eth converted to a 16-bit
// amplitude when Threshold is zero.
func (c *Config) AmplitudeThreshold() int {
	if c.Threshold > 0 {
		return c.Threshold
	}

	return silence.AmplitudeFromEnergy(c.Eth)
}

// TrimOptions converts the detection settings for wavtrim.TrimFile.
func (c *Config) TrimOptions() wavtrim.Options {
	return wavtrim.Options{
		Threshold:   c.AmplitudeThreshold(),
		Normalize:   c.Normalize,
		MaxDuration: c.MaxDuration,
		MaxSilence:  c.MaxSilence,
		SkipSilent:  c.SkipSilent,
	}
}

// DirOptions converts the directory mode settings for batch.Runner.Dir.
func (c *Config) DirOptions() batch.DirOptions {
	return batch.DirOptions{
		Suffix:     c.Suffix,
		Verbose:    c.Verbose,
		ErrorsFile: c.ErrorsFile,
	}
}

// NewLogger creates a structured logger writing to w.
// When LogFormat is "json", it outputs JSON logs.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// LogValue implements slog.LogValuer.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("eth", c.Eth),
		slog.Int("threshold", c.AmplitudeThreshold()),
		slog.Bool("normalize", c.Normalize),
		slog.Duration("max_duration", c.MaxDuration),
		slog.Duration("max_silence", c.MaxSilence),
		slog.Bool("skip_silent", c.SkipSilent),
		slog.String("suffix", c.Suffix),
		slog.Int("verbose", c.Verbose),
		slog.String("errors_file", c.ErrorsFile),
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Package config loads runtime settings for the cutout binaries from an
// optional YAML file and CUTOUT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/ironsheep/image-cutout/internal/heuristic"
	"github.com/spf13/viper"
)

// EnvConfigPath names the environment variable holding a settings file path.
const EnvConfigPath = "CUTOUT_CONFIG"

type Settings struct {
	// LogLevel is a zerolog level name; empty or unknown means "warn".
	LogLevel string `mapstructure:"log_level"`

	// MaxPixels is the engine's exclusive pixel-count limit.
	MaxPixels int64 `mapstructure:"max_pixels"`

	// Softness is the default soft-mapping softness when the caller gives none.
	Softness float64 `mapstructure:"softness"`

	// Mode is the default subject mode: auto, portrait or object.
	Mode string `mapstructure:"mode"`
}

// Load reads settings from path (YAML) layered over defaults and CUTOUT_*
// environment variables. An empty path skips the file.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("CUTOUT")
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// New loads settings from $CUTOUT_CONFIG if set. Any failure falls back to
// the environment-only settings, and failing that to the built-in defaults;
// the returned error explains what was skipped.
func New() (*Settings, error) {
	path := os.Getenv(EnvConfigPath)
	s, err := Load(path)
	if err == nil {
		return s, nil
	}
	if path != "" {
		if envOnly, envErr := Load(""); envErr == nil {
			return envOnly, err
		}
	}
	return Default(), err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("max_pixels", int64(heuristic.DefaultMaxPixels))
	v.SetDefault("softness", cutout.DefaultSoftness)
	v.SetDefault("mode", cutout.ModeAuto.String())
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LogLevel:  "warn",
		MaxPixels: heuristic.DefaultMaxPixels,
		Softness:  cutout.DefaultSoftness,
		Mode:      cutout.ModeAuto.String(),
	}
}

// Validate checks every field against the ranges the engine accepts.
func (s *Settings) Validate() error {
	if s.MaxPixels <= 0 {
		return fmt.Errorf("%w: max_pixels must be positive, got %d", cutout.ErrInvalidConfig, s.MaxPixels)
	}
	if _, err := cutout.ParseMode(s.Mode); err != nil {
		return err
	}
	if _, err := cutout.NewConfig(cutout.WithSoftness(s.Softness)); err != nil {
		return err
	}
	return nil
}

// DefaultMode returns the configured mode. Settings that passed Validate
// always hold a known mode.
func (s *Settings) DefaultMode() cutout.Mode {
	m, err := cutout.ParseMode(s.Mode)
	if err != nil {
		return cutout.ModeAuto
	}
	return m
}

// NewEngine builds a heuristic engine honouring MaxPixels.
func (s *Settings) NewEngine(opts ...heuristic.Option) (*heuristic.Engine, error) {
	if s.MaxPixels <= 0 {
		return nil, errors.New("max_pixels must be positive")
	}
	return heuristic.New(append([]heuristic.Option{heuristic.WithMaxPixels(s.MaxPixels)}, opts...)...)
}

package cutout

import (
	"fmt"
	"math"
	"strings"
)

// Mode hints at the kind of subject in the image.
//
// The heuristic engine accepts every mode but does not change its behaviour
// based on it; the value is carried for engines that can make use of it.
type Mode int

const (
	ModeAuto Mode = iota
	ModePortrait
	ModeObject
)

func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModePortrait:
		return "portrait"
	case ModeObject:
		return "object"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "auto", "portrait" or "object" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ModeAuto, nil
	case "portrait":
		return ModePortrait, nil
	case "object":
		return ModeObject, nil
	default:
		return ModeAuto, fmt.Errorf("%w: unknown mode '%s'", ErrInvalidConfig, s)
	}
}

const (
	// DefaultSoftness is the softness used when none is given.
	DefaultSoftness = 0.2

	MaxHardThreshold = 255.0
)

// Config is a validated set of matting parameters. Build it with NewConfig
// or DefaultConfig; a Config is never modified after construction.
type Config struct {
	mode          Mode
	softness      float64
	hardThreshold float64
	hasThreshold  bool
}

// Option adjusts a Config under construction.
type Option func(*Config)

// WithMode sets the subject mode.
func WithMode(m Mode) Option {
	return func(c *Config) { c.mode = m }
}

// WithSoftness sets the width of the soft transition band, in [0, 1].
// Higher values produce more semi-transparent pixels.
func WithSoftness(s float64) Option {
	return func(c *Config) { c.softness = s }
}

// WithHardThreshold selects binary output: pixels whose normalized distance
// from the background reaches threshold/255 become opaque, the rest
// transparent. threshold must be in [0, 255].
func WithHardThreshold(threshold float64) Option {
	return func(c *Config) {
		c.hardThreshold = threshold
		c.hasThreshold = true
	}
}

// NewConfig builds a Config from DefaultConfig plus opts.
//
// # Errors
//
// Returns ErrInvalidConfig if softness is outside [0, 1], the hard threshold
// is outside [0, 255], either is NaN, or the mode is unknown.
func NewConfig(opts ...Option) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.mode < ModeAuto || c.mode > ModeObject {
		return Config{}, fmt.Errorf("%w: unknown mode %d", ErrInvalidConfig, int(c.mode))
	}
	if math.IsNaN(c.softness) || c.softness < 0 || c.softness > 1 {
		return Config{}, fmt.Errorf("%w: softness must be within [0, 1], got %v",
			ErrInvalidConfig, c.softness)
	}
	if c.hasThreshold && (math.IsNaN(c.hardThreshold) || c.hardThreshold < 0 || c.hardThreshold > MaxHardThreshold) {
		return Config{}, fmt.Errorf("%w: hard threshold must be within [0, 255], got %v",
			ErrInvalidConfig, c.hardThreshold)
	}
	return c, nil
}

// DefaultConfig returns {ModeAuto, softness 0.2, no hard threshold}.
func DefaultConfig() Config {
	return Config{mode: ModeAuto, softness: DefaultSoftness}
}

func (c Config) Mode() Mode { return c.mode }

func (c Config) Softness() float64 { return c.softness }

// HardThreshold returns the threshold and whether one was set.
func (c Config) HardThreshold() (float64, bool) { return c.hardThreshold, c.hasThreshold }

func (c Config) String() string {
	if c.hasThreshold {
		return fmt.Sprintf("mode=%s soft=%.3g hard=%.3g", c.mode, c.softness, c.hardThreshold)
	}
	return fmt.Sprintf("mode=%s soft=%.3g", c.mode, c.softness)
}

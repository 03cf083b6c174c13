package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/image-cutout/internal/config"
	"github.com/ironsheep/image-cutout/internal/cutout"
)

// Usage is the one-line synopsis printed with --help and after parse errors.
const Usage = "Usage: cutout <in.(png|jpg)> <out.png> [--mode auto|portrait|object] [--soft 0..1] [--hard 0..255]"

// Arguments are the parsed command-line arguments.
type Arguments struct {
	Input         string
	Output        string
	Mode          cutout.Mode
	Softness      float64
	HardThreshold *float64
}

// ParseError reports malformed command-line arguments.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func parseErrorf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// ParseArguments parses args (without the program name). Options and the two
// positional paths may appear in any order; options accept both "--soft 0.4"
// and "--soft=0.4". Mode and softness default to the values in settings, or
// the built-in defaults when settings is nil.
func ParseArguments(args []string, settings *config.Settings) (*Arguments, error) {
	if settings == nil {
		settings = config.Default()
	}
	if len(args) == 0 {
		return nil, parseErrorf("Missing arguments")
	}

	parsed := &Arguments{
		Mode:     settings.DefaultMode(),
		Softness: settings.Softness,
	}
	var positional []string

	for i := 0; i < len(args); i++ {
		token := args[i]
		if !strings.HasPrefix(token, "--") {
			positional = append(positional, token)
			continue
		}

		name, value, inline := strings.Cut(token, "=")
		if !inline {
			switch name {
			case "--mode", "--soft", "--hard":
				i++
				if i >= len(args) {
					return nil, parseErrorf("%s requires a value", name)
				}
				value = args[i]
			}
		}

		switch name {
		case "--mode":
			m, err := cutout.ParseMode(value)
			if err != nil {
				return nil, parseErrorf("Unknown mode '%s'", value)
			}
			parsed.Mode = m
		case "--soft":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, parseErrorf("--soft requires a numeric value")
			}
			if math.IsNaN(v) || v < 0 || v > 1 {
				return nil, parseErrorf("--soft must be within 0..1")
			}
			parsed.Softness = v
		case "--hard":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, parseErrorf("--hard requires a numeric value")
			}
			if math.IsNaN(v) || v < 0 || v > cutout.MaxHardThreshold {
				return nil, parseErrorf("--hard must be within 0..255")
			}
			parsed.HardThreshold = &v
		default:
			return nil, parseErrorf("Unknown option '%s'", token)
		}
	}

	switch {
	case len(positional) < 2:
		return nil, parseErrorf("Input and output paths are required")
	case len(positional) > 2:
		return nil, parseErrorf("Unexpected argument '%s'", positional[2])
	}

	parsed.Input = positional[0]
	parsed.Output = positional[1]
	return parsed, nil
}

// Config converts the arguments to a validated engine configuration.
func (a *Arguments) Config() (cutout.Config, error) {
	opts := []cutout.Option{
		cutout.WithMode(a.Mode),
		cutout.WithSoftness(a.Softness),
	}
	if a.HardThreshold != nil {
		opts = append(opts, cutout.WithHardThreshold(*a.HardThreshold))
	}
	return cutout.NewConfig(opts...)
}

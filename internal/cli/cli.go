// Package cli implements the cutout command line: argument parsing, image
// loading, engine invocation and PNG output, with a fixed exit-code contract.
//
// Exit codes:
//   - 0: success, or --help / --version
//   - 1: the arguments could not be parsed
//   - 2: a usage or I/O failure (missing or unreadable input, image too
//     large, invalid configuration, output not writable)
//   - 3: anything unexpected
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ironsheep/image-cutout/internal/config"
	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/ironsheep/image-cutout/internal/imaging"
	"github.com/rs/zerolog"
)

const (
	ExitOK         = 0
	ExitParse      = 1
	ExitUsage      = 2
	ExitUnexpected = 3
)

// UsageError is a failure caused by the user's input or environment rather
// than a defect; it maps to ExitUsage.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *UsageError) Unwrap() error { return e.Err }

// CLI runs one cutout invocation against Engine.
type CLI struct {
	Engine   cutout.Engine
	Settings *config.Settings
	Logger   zerolog.Logger
	Stdout   io.Writer
	Stderr   io.Writer
	Version  string
}

// New returns a CLI writing to the process's stdout and stderr.
func New(engine cutout.Engine, settings *config.Settings, logger zerolog.Logger) *CLI {
	return &CLI{
		Engine:   engine,
		Settings: settings,
		Logger:   logger,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Version:  "dev",
	}
}

// Run executes the command line args (without the program name) and returns
// the process exit code.
func (c *CLI) Run(args []string) (code int) {
	for _, a := range args {
		switch a {
		case "--help", "-h":
			c.printUsage(c.Stdout)
			return ExitOK
		case "--version", "-v":
			fmt.Fprintf(c.Stdout, "cutout %s\n", c.Version)
			return ExitOK
		}
	}

	parsed, err := ParseArguments(args, c.Settings)
	if err != nil {
		fmt.Fprintln(c.Stderr, err)
		c.printUsage(c.Stderr)
		return ExitParse
	}

	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error().Interface("panic", r).Msg("cutout crashed")
			fmt.Fprintf(c.Stderr, "Unexpected error: %v\n", r)
			code = ExitUnexpected
		}
	}()

	if err := c.process(parsed); err != nil {
		return c.report(err)
	}
	return ExitOK
}

func (c *CLI) process(args *Arguments) error {
	start := time.Now()

	img, err := c.load(args.Input)
	if err != nil {
		return err
	}

	cfg, err := args.Config()
	if err != nil {
		return &UsageError{Msg: "Invalid configuration", Err: err}
	}

	res, err := c.Engine.RemoveBackground(img, cfg)
	if err != nil {
		return fmt.Errorf("background removal failed: %w", err)
	}

	out, err := cutout.ApplyResult(img, res)
	if err != nil {
		return fmt.Errorf("failed to apply alpha mask: %w", err)
	}

	if err := imaging.SaveBuffer(out, args.Output); err != nil {
		return &UsageError{Msg: "Failed to write output", Err: err}
	}

	event := c.Logger.Info().
		Str("input", args.Input).
		Str("output", args.Output).
		Stringer("config", cfg).
		Dur("elapsed", time.Since(start))
	if stats, err := imaging.MeasureMask(res.Alpha, img.Width()); err == nil {
		event = event.Float64("coverage_percent", stats.CoveragePercent)
	}
	event.Msg("cutout written")
	return nil
}

func (c *CLI) load(path string) (*cutout.ImageBuffer, error) {
	if _, err := os.Stat(path); err != nil {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = path
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, &UsageError{Msg: "Input file does not exist: " + abs}
		}
		return nil, &UsageError{Msg: "Failed to read image", Err: err}
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, &UsageError{Msg: "Failed to read image", Err: err}
	}
	buf, err := imaging.ToBuffer(img)
	if err != nil {
		return nil, &UsageError{Msg: "Failed to read image", Err: err}
	}
	c.Logger.Debug().Str("path", path).Int("width", buf.Width()).Int("height", buf.Height()).Msg("image loaded")
	return buf, nil
}

// report prints err and maps it to an exit code.
func (c *CLI) report(err error) int {
	var usage *UsageError
	switch {
	case errors.As(err, &usage),
		errors.Is(err, cutout.ErrSizeLimitExceeded),
		errors.Is(err, cutout.ErrInvalidConfig):
		c.Logger.Warn().Err(err).Msg("cutout failed")
		fmt.Fprintln(c.Stderr, err)
		return ExitUsage
	default:
		c.Logger.Error().Err(err).Msg("cutout failed")
		fmt.Fprintf(c.Stderr, "Unexpected error: %v\n", err)
		return ExitUnexpected
	}
}

func (c *CLI) printUsage(w io.Writer) {
	fmt.Fprintln(w, Usage)
}

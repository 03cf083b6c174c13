package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-cutout/internal/cli"
	"github.com/ironsheep/image-cutout/internal/config"
	"github.com/ironsheep/image-cutout/internal/heuristic"
	"github.com/ironsheep/image-cutout/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, cfgErr := config.New()
	logger := logging.New(os.Stderr, settings.LogLevel)
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("ignoring invalid settings")
	}

	engine, err := settings.NewEngine(heuristic.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
		return cli.ExitUnexpected
	}

	c := cli.New(engine, settings, logger)
	c.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	return c.Run(os.Args[1:])
}

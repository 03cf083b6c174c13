package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-cutout/internal/config"
	"github.com/ironsheep/image-cutout/internal/heuristic"
	"github.com/ironsheep/image-cutout/internal/logging"
	"github.com/ironsheep/image-cutout/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-cutout-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-cutout-mcp - MCP server for background removal")
			fmt.Println()
			fmt.Println("Usage: image-cutout-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CUTOUT_CONFIG=/path/cutout.yaml   Settings file")
			fmt.Println("  CUTOUT_LOG_LEVEL=debug            Log level (default warn)")
			fmt.Println("  CUTOUT_MAX_PIXELS=50000000        Largest image accepted (exclusive)")
			fmt.Println("  CUTOUT_SOFTNESS=0.2               Default edge softness")
			fmt.Println("  CUTOUT_MODE=auto                  Default subject mode")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client.")
			return
		}
	}

	// stdout is for MCP protocol
	settings, cfgErr := config.New()
	logger := logging.NewJSON(os.Stderr, settings.LogLevel)
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("ignoring invalid settings")
	}

	engine, err := settings.NewEngine(heuristic.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create engine")
	}

	logger.Debug().Str("version", Version).Str("build_time", BuildTime).Str("commit", GitCommit).Msg("image-cutout-mcp starting")

	srv := server.New(engine, settings, logger)
	srv.SetVersion(Version)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

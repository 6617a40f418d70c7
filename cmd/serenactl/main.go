package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/quantmind-br/serenactl/internal/cmd"
	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/config"
	"github.com/quantmind-br/serenactl/internal/logging"
	"github.com/quantmind-br/serenactl/internal/ui"
)

var version = "dev"

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: cfg.Paths.LogFile,
		NoColor: cfg.Logging.Color == "never",
	})

	ui.InitColors()
	if cfg.Logging.Color == "never" {
		ui.DisableColors()
	}

	// Execute root command
	rootCmd := cmd.NewRootCmd(cfg, log, version)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command failure onto the process exit code.
func exitCode(err error) int {
	if err == nil {
		return core.ExitSuccess
	}
	var discoveryErr *core.DiscoveryError
	switch {
	case errors.As(err, &discoveryErr):
		return core.ExitNoPython
	case errors.Is(err, core.ErrEmptyPythonPath):
		return core.ExitInvalidArgs
	case errors.Is(err, context.Canceled):
		return core.ExitInterrupted
	}
	return core.ExitGeneral
}

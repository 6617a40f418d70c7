package cmd

import (
	"github.com/quantmind-br/serenactl/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "serenactl",
		Short:        "Serena MCP server launch resolver",
		Long:         `Resolves a compatible Python interpreter for the Serena coding agent and synthesizes the command a host uses to launch it as an MCP stdio server.`,
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewResolveCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewDescribeCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}

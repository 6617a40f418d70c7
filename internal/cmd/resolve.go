package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quantmind-br/serenactl/internal/config"
	"github.com/quantmind-br/serenactl/internal/serena"
	"github.com/quantmind-br/serenactl/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		override   string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the launch command for the Serena MCP server",
		Long: `Resolve a compatible Python interpreter (configured override first,
auto-detection otherwise) and print the executable, arguments, and
environment a host should use to launch the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := cfg.Settings()
			if cmd.Flags().Changed("python") {
				settings.PythonExecutable = &override
			}

			provider := serena.NewProvider(log)
			launch, err := provider.ResolveLaunchCommand(cmd.Context(), settings)
			if err != nil {
				ui.PrintError("%v", err)
				return err
			}

			log.Info().
				Str("command", launch.Command).
				Strs("args", launch.Args).
				Msg("launch command resolved")

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(launch)
			}

			ui.PrintKeyValue("Command", launch.Command)
			ui.PrintKeyValue("Args", strings.Join(launch.Args, " "))
			if len(launch.Env) == 0 {
				ui.PrintKeyValue("Env", "(none)")
				return nil
			}
			for _, entry := range launch.Env {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s=%s\n", ui.Bullet, entry.Name, entry.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&override, "python", "", "interpreter override (bypasses auto-detection)")

	return cmd
}

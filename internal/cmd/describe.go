package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/serenactl/internal/config"
	"github.com/quantmind-br/serenactl/internal/serena"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		schemaOnly   bool
		defaultsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the recognized configuration",
		Long:  `Print the setup instructions, default settings document, and settings schema a host-side configuration UI consumes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := serena.NewProvider(log).DescribeConfiguration()
			out := cmd.OutOrStdout()

			if schemaOnly {
				// Re-indent for terminal readability.
				var doc map[string]any
				if err := json.Unmarshal([]byte(spec.SettingsSchema), &doc); err != nil {
					return fmt.Errorf("settings schema is not valid JSON: %w", err)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			if defaultsOnly {
				fmt.Fprint(out, spec.DefaultSettings)
				return nil
			}

			fmt.Fprint(out, spec.SetupInstructions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&schemaOnly, "schema", false, "print only the settings JSON schema")
	cmd.Flags().BoolVar(&defaultsOnly, "defaults", false, "print only the default settings document")
	cmd.MarkFlagsMutuallyExclusive("schema", "defaults")

	return cmd
}

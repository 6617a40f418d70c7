package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/serenactl/internal/config"
	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/security"
	"github.com/quantmind-br/serenactl/internal/serena"
	"github.com/quantmind-br/serenactl/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check interpreter candidates and environment",
		Long:  `Probe every interpreter candidate, report which ones are acceptable, and check the configuration and agent installation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			provider := serena.NewProvider(log)

			// 1. Configuration
			ui.PrintHeader("Configuration")
			issues, warnings := checkConfiguration(cfg)

			// 2. Interpreter candidates
			ui.PrintSubheader("Interpreter Candidates")
			reports := provider.ProbeCandidates(ctx)
			printCandidateTable(cmd, reports)

			accepted := acceptedReports(reports)
			if len(accepted) == 0 {
				issues = append(issues, "no acceptable Python 3.11/3.12 interpreter found")
			} else {
				ui.PrintSuccess("%d acceptable interpreter(s) found", len(accepted))
			}

			// 3. Agent installation and launch strategy
			ui.PrintSubheader("Agent")
			if len(accepted) > 0 {
				interpreter := accepted[0].Resolved
				if interpreter == "" {
					interpreter = accepted[0].Candidate
				}

				if provider.AgentInstalled(ctx, interpreter) {
					ui.PrintSuccess("%s importable by %s", core.AgentPackage, interpreter)
				} else {
					ui.PrintWarning("%s not importable by %s", core.AgentPackage, interpreter)
					warnings = append(warnings, fmt.Sprintf("install the agent: %s -m pip install %s", interpreter, core.AgentPackage))
				}

				script := filepath.Join(filepath.Dir(interpreter), core.AgentScript)
				if _, err := os.Stat(script); err == nil {
					ui.PrintInfo("console script present: %s", script)
				} else {
					ui.PrintInfo("no console script next to interpreter; module invocation will be used")
				}
			}

			// 4. Interactive selection
			if interactive && len(accepted) > 0 {
				if err := pickInterpreter(accepted); err != nil {
					return err
				}
			}

			// Summary
			ui.PrintHeader("Summary")
			fmt.Println()

			if len(issues) == 0 {
				ui.PrintSuccess("All critical checks passed!")
			} else {
				ui.PrintError("Found %d issue(s):", len(issues))
				ui.PrintList(issues)
			}

			if len(warnings) > 0 {
				ui.PrintWarning("Found %d warning(s):", len(warnings))
				ui.PrintList(warnings)
			}

			fmt.Println()

			if len(issues) > 0 {
				return fmt.Errorf("environment check failed with %d issue(s)", len(issues))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick an interpreter and print the config snippet to pin it")

	return cmd
}

// checkConfiguration reports configuration problems. An empty override is
// an issue because resolution refuses it outright; a suspicious override
// path is only a warning, since configured paths are honored verbatim.
func checkConfiguration(cfg *config.Config) (issues, warnings []string) {
	if override, ok := cfg.Settings().Override(); ok {
		if override == "" {
			ui.PrintError("python_executable is set to an empty string")
			issues = append(issues, "python_executable must be removed or set to a real path")
		} else if err := security.ValidateInterpreterPath(override); err != nil {
			ui.PrintWarning("python_executable: %s", override)
			warnings = append(warnings, fmt.Sprintf("configured interpreter looks unusual: %v", err))
		} else {
			ui.PrintSuccess("python_executable: %s (auto-detection bypassed)", override)
		}
	} else {
		ui.PrintInfo("python_executable: not set (auto-detection)")
	}

	if n := len(cfg.Agent.Environment); n > 0 {
		ui.PrintInfo("extra environment variables: %d", n)
	}

	return issues, warnings
}

// printCandidateTable renders candidate probe outcomes.
func printCandidateTable(cmd *cobra.Command, reports []core.CandidateReport) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"", "Candidate", "Source", "Version", "Detail"}),
		tablewriter.WithAlignment(tw.MakeAlign(5, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, report := range reports {
		detail := report.Reason
		if report.Accepted && report.Resolved != "" && report.Resolved != report.Candidate {
			detail = report.Resolved
		}
		table.Append(
			ui.StatusString(report.Accepted),
			report.Candidate,
			string(report.Source),
			report.Version,
			detail,
		)
	}

	table.Render()
}

func acceptedReports(reports []core.CandidateReport) []core.CandidateReport {
	var accepted []core.CandidateReport
	for _, report := range reports {
		if report.Accepted {
			accepted = append(accepted, report)
		}
	}
	return accepted
}

// pickInterpreter lets the user choose among acceptable interpreters and
// prints the configuration snippet that pins the choice.
func pickInterpreter(accepted []core.CandidateReport) error {
	items := make([]string, 0, len(accepted))
	for _, report := range accepted {
		path := report.Resolved
		if path == "" {
			path = report.Candidate
		}
		items = append(items, fmt.Sprintf("%s (%s)", path, report.Version))
	}

	index, _, err := ui.SelectPrompt("Pin interpreter", items)
	if err != nil {
		return err
	}

	chosen := accepted[index].Resolved
	if chosen == "" {
		chosen = accepted[index].Candidate
	}

	// Declining the confirmation only abandons the pinning, not the
	// rest of the diagnosis.
	confirmed, err := ui.ConfirmPrompt(fmt.Sprintf("Pin %s", chosen))
	if err != nil || !confirmed {
		return nil
	}

	ui.PrintSubheader("Add to config.toml")
	fmt.Printf("\n[agent]\npython_executable = %q\n", chosen)
	return nil
}

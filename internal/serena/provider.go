// Package serena implements the launch-command provider for the Serena
// coding agent.
package serena

import (
	"context"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/helpers"
	"github.com/quantmind-br/serenactl/internal/launch"
	"github.com/quantmind-br/serenactl/internal/python"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Provider resolves launch commands for the Serena MCP server. Hosts
// construct one with NewProvider and reuse it; it keeps no mutable
// state, so every resolution re-probes the environment.
type Provider struct {
	runner      helpers.CommandRunner
	discovery   *python.Discovery
	synthesizer *launch.Synthesizer
	log         *zerolog.Logger
}

var _ core.Provider = (*Provider)(nil)

// NewProvider creates a Provider backed by the real operating system.
func NewProvider(log *zerolog.Logger) *Provider {
	return NewProviderWithDeps(helpers.NewOSCommandRunner(), afero.NewOsFs(), log)
}

// NewProviderWithDeps creates a Provider with injected dependencies,
// used by tests.
func NewProviderWithDeps(runner helpers.CommandRunner, fs afero.Fs, log *zerolog.Logger) *Provider {
	discovery := python.NewDiscovery(runner, log)
	return &Provider{
		runner:      runner,
		discovery:   discovery,
		synthesizer: launch.NewSynthesizer(discovery, fs, log),
		log:         log,
	}
}

// ResolveLaunchCommand implements core.Provider.
func (p *Provider) ResolveLaunchCommand(ctx context.Context, settings *core.Settings) (*core.LaunchCommand, error) {
	return p.synthesizer.Synthesize(ctx, settings)
}

// DescribeConfiguration implements core.Provider.
func (p *Provider) DescribeConfiguration() core.ConfigurationSpec {
	return describeConfiguration()
}

// ProbeCandidates reports the outcome of probing every discovery
// candidate, for diagnostics.
func (p *Provider) ProbeCandidates(ctx context.Context) []core.CandidateReport {
	return p.discovery.Report(ctx)
}

// AgentInstalled checks whether the agent package is importable by the
// given interpreter. A probe that cannot be spawned at all reports
// installed: restricted environments may forbid child processes, and
// launch should not be blocked on a check that cannot run there.
func (p *Provider) AgentInstalled(ctx context.Context, interpreter string) bool {
	_, _, err := p.runner.RunCommandWithOutput(ctx, interpreter, "-c", "import serena")
	if err != nil {
		return p.runner.GetExitCode(err) < 0
	}
	return true
}

package core

import "context"

// Provider resolves launch commands for the agent and describes its
// recognized configuration. Hosts construct one instance and reuse it;
// implementations hold no mutable state across calls.
type Provider interface {
	// ResolveLaunchCommand produces the command the host should spawn to
	// run the agent as an MCP stdio server.
	ResolveLaunchCommand(ctx context.Context, settings *Settings) (*LaunchCommand, error)

	// DescribeConfiguration returns the static configuration artifacts
	// for a host-side settings UI.
	DescribeConfiguration() ConfigurationSpec
}

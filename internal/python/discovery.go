package python

import (
	"context"
	"strings"
	"time"

	"github.com/quantmind-br/serenactl/internal/core"
	"github.com/quantmind-br/serenactl/internal/helpers"
	"github.com/quantmind-br/serenactl/internal/security"
	"github.com/rs/zerolog"
)

// PreferredNames are the bare interpreter names tried first, resolved
// through the PATH search mechanism. Most recent release first.
var PreferredNames = []string{
	"python3.12",
	"python3.11",
}

// FallbackCandidates cover common installation roots for both accepted
// releases, then generic unversioned names as a last resort. Order is
// fixed, so discovery is deterministic for a given environment.
var FallbackCandidates = []string{
	"/opt/homebrew/bin/python3.12",
	"/opt/homebrew/bin/python3.11",
	"/usr/local/bin/python3.12",
	"/usr/local/bin/python3.11",
	"python3.12",
	"python3.11",
	"python3",
	"python",
}

// DefaultProbeTimeout bounds each version probe so a hung interpreter
// cannot block resolution indefinitely.
const DefaultProbeTimeout = 5 * time.Second

// Discovery enumerates interpreter candidates and accepts the first one
// that passes path validation and version matching. It holds no state
// between calls; every Discover re-probes the environment from scratch.
type Discovery struct {
	runner       helpers.CommandRunner
	log          *zerolog.Logger
	probeTimeout time.Duration
}

// NewDiscovery creates a Discovery using the given command runner.
func NewDiscovery(runner helpers.CommandRunner, log *zerolog.Logger) *Discovery {
	return &Discovery{
		runner:       runner,
		log:          log,
		probeTimeout: DefaultProbeTimeout,
	}
}

// Discover returns the first acceptable interpreter path or name.
// Per-candidate failures (lookup miss, spawn failure, non-zero exit,
// wrong version) are skipped; only total failure surfaces, as a
// *core.DiscoveryError naming every attempted candidate.
func (d *Discovery) Discover(ctx context.Context) (string, error) {
	var attempted []string

	for _, name := range PreferredNames {
		attempted = append(attempted, name)

		path, err := d.runner.LookPath(name)
		if err != nil {
			d.log.Debug().Str("candidate", name).Msg("not found in PATH")
			continue
		}

		path = strings.TrimSpace(path)
		if path == "" || !security.IsPathAcceptable(path) {
			d.log.Debug().Str("candidate", name).Str("path", path).Msg("resolved path rejected by validation")
			continue
		}

		if version, ok := d.probeVersion(ctx, path); ok {
			d.log.Debug().Str("path", path).Str("version", version).Msg("interpreter found in PATH")
			return path, nil
		}
	}

	for _, candidate := range FallbackCandidates {
		attempted = append(attempted, candidate)

		if !security.IsPathAcceptable(candidate) {
			continue
		}

		if version, ok := d.probeVersion(ctx, candidate); ok {
			d.log.Debug().Str("path", candidate).Str("version", version).Msg("interpreter found via fallback table")
			return candidate, nil
		}
	}

	return "", &core.DiscoveryError{Attempted: attempted}
}

// Report probes every candidate without short-circuiting and returns the
// outcome for each. Used by diagnostics; resolution uses Discover.
func (d *Discovery) Report(ctx context.Context) []core.CandidateReport {
	var reports []core.CandidateReport

	for _, name := range PreferredNames {
		report := core.CandidateReport{Candidate: name, Source: core.SourcePath}

		path, err := d.runner.LookPath(name)
		if err != nil {
			report.Reason = "not found in PATH"
			reports = append(reports, report)
			continue
		}

		report.Resolved = strings.TrimSpace(path)
		if report.Resolved == "" || !security.IsPathAcceptable(report.Resolved) {
			report.Reason = "path failed validation"
			reports = append(reports, report)
			continue
		}

		reports = append(reports, d.probeReport(ctx, report, report.Resolved))
	}

	for _, candidate := range FallbackCandidates {
		report := core.CandidateReport{Candidate: candidate, Source: core.SourceFallback}

		if !security.IsPathAcceptable(candidate) {
			report.Reason = "path failed validation"
			reports = append(reports, report)
			continue
		}

		reports = append(reports, d.probeReport(ctx, report, candidate))
	}

	return reports
}

func (d *Discovery) probeReport(ctx context.Context, report core.CandidateReport, path string) core.CandidateReport {
	version, ok := d.probeVersion(ctx, path)
	if version == "" {
		report.Reason = "version probe failed"
		return report
	}

	report.Version = version
	if !ok {
		report.Reason = "unsupported version"
		return report
	}

	report.Accepted = true
	return report
}

// probeVersion runs a candidate with --version under a bounded timeout.
// Returns the trimmed probe output and whether it names an accepted
// release. A candidate that cannot be spawned yields ("", false).
func (d *Discovery) probeVersion(ctx context.Context, path string) (string, bool) {
	probeCtx, cancel := context.WithTimeout(ctx, d.probeTimeout)
	defer cancel()

	stdout, _, err := d.runner.RunCommandWithOutput(probeCtx, path, "--version")
	if err != nil {
		d.log.Debug().Err(err).Str("path", path).Msg("version probe failed")
		return "", false
	}

	version := strings.TrimSpace(stdout)
	if !IsAcceptedVersion(version) {
		d.log.Debug().Str("path", path).Str("version", version).Msg("unsupported interpreter version")
		return version, false
	}

	return version, true
}

// Package cli implements the sysdash command-line interface.
//
// Each Cobra command parses its flags, resolves the configuration, and
// hands off to the packages that do the work. Running sysdash with no
// subcommand starts the dashboard:
//
//	sysdash             - Live dashboard
//	sysdash monitor     - Same as above
//	sysdash snapshot    - Sample, then print one frame (or --json)
//	sysdash recommend   - Sample, then print advisories
//	sysdash init        - Create a config file
//	sysdash config      - Show the effective config
//	sysdash version     - Print build information
//
// # Pipeline
//
// buildPoller wires the same pieces for every command: a metrics sampler
// over the host source, a rolling history, an analyzer and the shared
// controls. The dashboard runs the poller and the Bubble Tea program side
// by side in an errgroup; snapshot and recommend use collect, which stops
// the poller once enough samples have arrived.
//
// # Configuration
//
// Values are layered: built-in defaults, then the config file, then
// SYSDASH_* environment variables, then global flags (--no-color,
// --log-file), then command flags such as --interval. The merged result
// is validated before anything samples.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color, --log-file) are defined
// on the root command. SamplingFlags and AddSamplingFlags add --interval
// and --no-clusters to the commands that sample.
package cli

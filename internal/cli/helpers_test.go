package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/metrics"
	metricstest "github.com/rileyhilliard/sysdash/internal/metrics/testing"
)

// setupCLI isolates a test from the user's config and terminal: it moves
// into a temp dir, points $HOME elsewhere, disables color, resets global
// flags, and makes every command sample src.
func setupCLI(t *testing.T, src metrics.Source) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	origSource := newSource
	origCfg, origVerbose, origNoColor, origLog := cfgFile, verbose, noColor, logFile
	t.Cleanup(func() {
		newSource = origSource
		cfgFile, verbose, noColor, logFile = origCfg, origVerbose, origNoColor, origLog
	})

	cfgFile, verbose, noColor, logFile = "", false, true, ""
	if src == nil {
		src = metricstest.NewFakeSource(10, 20)
	}
	newSource = func() metrics.Source { return src }
	return dir
}

// writeConfig writes body as ./.sysdash.yaml.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(".", config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

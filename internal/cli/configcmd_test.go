package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysdash/internal/config"
)

func TestShowConfig_FromFile(t *testing.T) {
	setupCLI(t, nil)
	writeConfig(t, "interval: 2s\nclusters:\n  k: 4\n")

	var out bytes.Buffer
	require.NoError(t, showConfig(&out))

	s := out.String()
	assert.Contains(t, s, "# source: ")
	assert.Contains(t, s, config.ConfigFileName)
	assert.Contains(t, s, "interval: 2s")
	assert.Contains(t, s, "k: 4")
	assert.Contains(t, s, "color: never")
}

func TestShowConfig_Defaults(t *testing.T) {
	setupCLI(t, nil)

	var out bytes.Buffer
	require.NoError(t, showConfig(&out))
	assert.Contains(t, out.String(), "defaults (no config file found)")
	assert.Contains(t, out.String(), "interval: 1s")
}

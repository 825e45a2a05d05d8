package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandRegistered(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
}

func TestRunFlagDefaults(t *testing.T) {
	defaults := map[string]string{
		"seed":          "42",
		"duration":      "1950",
		"step":          "100",
		"log":           "error",
		"mode":          "0",
		"epsilon":       "0.05",
		"explore-first": "120",
		"cars":          "20",
		"speed-min":     "22.3",
		"speed-max":     "31.2",
		"period":        "30",
		"scenario":      "",
		"session-dir":   ".",
		"no-session":    "false",
		"display":       "false",
		"speed":         "15",
	}
	for name, want := range defaults {
		flag := runCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag --%s must exist", name)
		assert.Equal(t, want, flag.DefValue, "default of --%s", name)
	}
}

func TestModeFlagShorthand(t *testing.T) {
	flag := runCmd.Flags().Lookup("mode")
	require.NotNil(t, flag)
	assert.Equal(t, "m", flag.Shorthand)
}

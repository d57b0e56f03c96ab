package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
	assert.Equal(t, "set <key> <value>", settingsSetCmd.Use)
}

func TestSettingsCmd_ShowsDefaults(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Rate limited: false")
	assert.Contains(t, out, "Max parallel: 5")
	assert.Contains(t, out, "Inter-batch delay: 3000 ms")
	assert.Contains(t, out, "Output directory: (current directory)")
	assert.Contains(t, out, "Cookie: (not set)")
	assert.Contains(t, out, "Requests per second: unlimited")
}

func TestSettingsCmd_SetAndShow(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()

	out, err := execute("settings", "set", "max-parallel", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Set max-parallel.")

	_, err = execute("settings", "set", "cookie", "session=abcdef123456")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 8, settings.Batch.MaxParallel)

	out, err = execute("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Max parallel: 8")
	assert.Contains(t, out, "Cookie: sess...3456")
	assert.NotContains(t, out, "abcdef")
}

func TestSettingsCmd_SetRejectsUnknownKey(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	_, err := execute("settings", "set", "colour", "blue")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "valid keys: rate-limited")
}

func TestSettingsCmd_SetRequiresTwoArgs(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()

	_, err := execute("settings", "set", "max-parallel")

	assert.Error(t, err)
}

func TestSettingsCmd_Reset(t *testing.T) {
	env, cleanup := setupCLITest()
	defer cleanup()
	require.NoError(t, env.settings.SetValue("delay-ms", "100"))

	out, err := execute("settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")
	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInterBatchDelayMs, settings.Batch.InterBatchDelayMs)
}

func TestSettingsCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupCLITest()
	defer cleanup()
	settingsService = nil

	_, err := execute("settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "abcd...wxyz", maskSecret("abcdefghijklmnopqrstuvwxyz"))
}

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/core/services"
)

func TestConfigShow_MasksSecrets(t *testing.T) {
	setupTestServices(t, map[string]any{services.KeyMeiliAPIKey: "master-key"})

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings (:memory:)")
	assert.Contains(t, out, "[meilisearch]")
	assert.Contains(t, out, "[youtube]")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "master-key")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "http://localhost:7700")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, services.KeySearchDayOffset)
}

func TestConfigSet(t *testing.T) {
	ts := setupTestServices(t, nil)

	out, err := execute(t, "config", "set", services.KeyServerBurst, "40")

	require.NoError(t, err)
	assert.Contains(t, out, "Set server.burst.")
	assert.Equal(t, 40, ts.store.GetInt(services.KeyServerBurst))
}

func TestConfigSet_Invalid(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "config", "set", "nope", "x")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSetKey_Piped(t *testing.T) {
	ts := setupTestServices(t, nil)
	rootCmd.SetIn(strings.NewReader("  s3cret \n"))

	out, err := execute(t, "config", "set-key")

	require.NoError(t, err)
	assert.Equal(t, "s3cret", ts.store.GetString(services.KeyMeiliAPIKey))
	assert.NotContains(t, out, "s3cret")
}

func TestConfigSetKey_NamedKey(t *testing.T) {
	ts := setupTestServices(t, nil)
	rootCmd.SetIn(strings.NewReader("yt-key\n"))

	_, err := execute(t, "config", "set-key", services.KeyYouTubeAPIKey)

	require.NoError(t, err)
	assert.Equal(t, "yt-key", ts.store.GetString(services.KeyYouTubeAPIKey))
}

func TestConfigSetKey_Empty(t *testing.T) {
	ts := setupTestServices(t, nil)
	rootCmd.SetIn(strings.NewReader("\n"))

	_, err := execute(t, "config", "set-key")

	require.Error(t, err)
	assert.Empty(t, ts.store.GetString(services.KeyMeiliAPIKey))
}

func TestConfigKeys(t *testing.T) {
	ts := setupTestServices(t, nil)

	out, err := execute(t, "config", "keys")

	require.NoError(t, err)
	assert.Equal(t, strings.Join(ts.settings.Keys(), "\n")+"\n", out)
}

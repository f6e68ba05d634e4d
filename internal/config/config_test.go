package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "local", cfg.Pipeline.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightdeck.yaml")
	content := `data_dir: /tmp/flightdeck-data
project:
  bundle_id: com.acme.app
  team_id: ABCDE12345
  scheme: Acme
pipeline:
  environment: hosted
  extra_secrets:
    - SLACK_WEBHOOK_URL
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/flightdeck-data", cfg.DataDir)
	assert.Equal(t, "com.acme.app", cfg.Project.BundleID)
	assert.Equal(t, "ABCDE12345", cfg.Project.TeamID)
	assert.Equal(t, "hosted", cfg.Pipeline.Environment)
	assert.Equal(t, []string{"SLACK_WEBHOOK_URL"}, cfg.Pipeline.ExtraSecrets)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched defaults survive a partial file.
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadNoSearchResultFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Log, cfg.Log)
}

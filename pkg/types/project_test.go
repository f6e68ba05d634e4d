package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    ProjectConfig
		wantField string
	}{
		{
			name:   "valid",
			config: ProjectConfig{BundleID: "com.acme.app", TeamID: "ABCDE12345"},
		},
		{
			name:      "missing bundle id",
			config:    ProjectConfig{TeamID: "ABCDE12345"},
			wantField: "bundle_id",
		},
		{
			name:      "missing team id",
			config:    ProjectConfig{BundleID: "com.acme.app"},
			wantField: "team_id",
		},
		{
			name:      "empty",
			config:    ProjectConfig{},
			wantField: "bundle_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var mfe *MissingFieldError
			require.ErrorAs(t, err, &mfe)
			assert.Equal(t, tt.wantField, mfe.Field)
		})
	}
}

func TestProjectConfigWithDefaults(t *testing.T) {
	p := ProjectConfig{BundleID: "com.acme.app", TeamID: "ABCDE12345"}
	got := p.WithDefaults()
	assert.Equal(t, "App", got.Scheme)
	assert.Equal(t, "main", got.DefaultBranch)

	// Explicit values survive.
	p.Scheme = "Acme"
	p.DefaultBranch = "trunk"
	got = p.WithDefaults()
	assert.Equal(t, "Acme", got.Scheme)
	assert.Equal(t, "trunk", got.DefaultBranch)
}

func TestLoadProjectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightdeck.yaml")
	content := `project:
  bundle_id: com.acme.app
  team_id: ABCDE12345
  scheme: Acme
  default_branch: main
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadProjectFile(path)
	require.NoError(t, err)
	assert.Equal(t, "com.acme.app", cfg.BundleID)
	assert.Equal(t, "Acme", cfg.Scheme)
}

func TestLoadProjectFileMissingProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flightdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("other: {}\n"), 0o644))

	_, err := LoadProjectFile(path)
	assert.True(t, IsMissingFieldError(err))
}

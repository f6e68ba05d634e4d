package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

func testConfig() types.ProjectConfig {
	return types.ProjectConfig{
		BundleID:      "com.acme.app",
		TeamID:        "ABCDE12345",
		AppleID:       "dev@acme.com",
		Scheme:        "Acme",
		MatchRepo:     "git@github.com:acme/certificates.git",
		DefaultBranch: "main",
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderAllFamilies(t *testing.T) {
	r := newTestRenderer(t)

	rendered, err := r.RenderAll(testConfig())
	require.NoError(t, err)
	require.Len(t, rendered, len(Families))

	for family, text := range rendered {
		assert.NotEmpty(t, text, "family %s", family)
		assert.NotContains(t, text, "[[", "family %s has unexpanded placeholders", family)
	}

	assert.Contains(t, rendered[FamilyAppfile], `app_identifier("com.acme.app")`)
	assert.Contains(t, rendered[FamilyAppfile], `team_id("ABCDE12345")`)
	assert.Contains(t, rendered[FamilyMatchfile], "readonly(true)")
	assert.Contains(t, rendered[FamilyFastfile], `run_tests(scheme: "Acme")`)
	assert.Contains(t, rendered[FamilyFastfile], "upload_to_testflight")
	assert.Contains(t, rendered[FamilyGemfile], `gem "fastlane"`)
}

func TestRenderIsIdempotent(t *testing.T) {
	r := newTestRenderer(t)
	cfg := testConfig()

	first, err := r.RenderAll(cfg)
	require.NoError(t, err)
	second, err := r.RenderAll(cfg)
	require.NoError(t, err)

	for _, family := range Families {
		assert.Equal(t, first[family], second[family], "family %s not byte-identical", family)
	}
}

func TestRenderMissingBundleID(t *testing.T) {
	r := newTestRenderer(t)
	cfg := testConfig()
	cfg.BundleID = ""

	for _, family := range Families {
		out, err := r.Render(family, cfg)
		assert.True(t, types.IsMissingFieldError(err), "family %s", family)
		assert.Empty(t, out, "family %s produced partial output", family)
	}

	_, err := r.RenderAll(cfg)
	assert.True(t, types.IsMissingFieldError(err))
}

func TestRenderMissingTeamID(t *testing.T) {
	r := newTestRenderer(t)
	cfg := testConfig()
	cfg.TeamID = ""

	out, err := r.Render(FamilyAppfile, cfg)
	assert.True(t, types.IsMissingFieldError(err))
	assert.Empty(t, out)
}

func TestRenderWorkflowIsValidYAML(t *testing.T) {
	r := newTestRenderer(t)

	text, err := r.Render(FamilyWorkflow, testConfig())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))

	assert.Contains(t, text, "cancel-in-progress: true")
	assert.Contains(t, text, "${{ github.workflow }}-${{ github.ref }}")
	assert.Contains(t, text, "github.event_name == 'pull_request'")
	assert.Contains(t, text, "github.event_name == 'push'")
	for _, secret := range []string{
		"MATCH_PASSWORD",
		"APP_STORE_CONNECT_API_KEY",
		"APP_STORE_CONNECT_KEY_ID",
		"APP_STORE_CONNECT_ISSUER_ID",
		"MATCH_DEPLOY_KEY",
	} {
		assert.Contains(t, text, secret)
	}
}

func TestRenderWorkflowSchedule(t *testing.T) {
	r := newTestRenderer(t)

	cfg := testConfig()
	cfg.Schedule = "0 3 * * *"
	text, err := r.Render(FamilyWorkflow, cfg)
	require.NoError(t, err)
	assert.Contains(t, text, `cron: "0 3 * * *"`)

	// No schedule, no schedule block.
	text, err = r.Render(FamilyWorkflow, testConfig())
	require.NoError(t, err)
	assert.NotContains(t, text, "schedule:")
}

func TestRenderWorkflowBadSchedule(t *testing.T) {
	r := newTestRenderer(t)

	cfg := testConfig()
	cfg.Schedule = "every tuesday"
	_, err := r.Render(FamilyWorkflow, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule")
}

func TestRenderDefaults(t *testing.T) {
	r := newTestRenderer(t)

	cfg := types.ProjectConfig{BundleID: "com.acme.app", TeamID: "ABCDE12345"}
	text, err := r.Render(FamilyFastfile, cfg)
	require.NoError(t, err)
	assert.Contains(t, text, `scheme: "App"`)

	workflow, err := r.Render(FamilyWorkflow, cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(workflow, "- main"))
}

func TestFamilyPaths(t *testing.T) {
	assert.Equal(t, "Gemfile", FamilyGemfile.Path())
	assert.Equal(t, "fastlane/Fastfile", FamilyFastfile.Path())
	assert.Equal(t, ".github/workflows/release.yml", FamilyWorkflow.Path())
}

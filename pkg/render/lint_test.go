package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

func lintFindingChecks(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Check)
	}
	return out
}

func TestLintWorkflowCleanOnRenderedOutput(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	cfg := types.ProjectConfig{
		BundleID:      "com.acme.app",
		TeamID:        "ABCDE12345",
		Scheme:        "App",
		DefaultBranch: "main",
		MatchRepo:     "git@github.com:acme/certs.git",
	}
	out, err := r.Render(FamilyWorkflow, cfg)
	require.NoError(t, err)

	findings, err := LintWorkflow([]byte(out))
	require.NoError(t, err)
	assert.Empty(t, findings, "rendered workflow should lint clean: %v", findings)
}

func TestLintWorkflowCleanWithSchedule(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	cfg := types.ProjectConfig{
		BundleID:      "com.acme.app",
		TeamID:        "ABCDE12345",
		Scheme:        "App",
		DefaultBranch: "main",
		Schedule:      "0 3 * * *",
	}
	out, err := r.Render(FamilyWorkflow, cfg)
	require.NoError(t, err)

	findings, err := LintWorkflow([]byte(out))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestLintWorkflowFindings(t *testing.T) {
	tests := []struct {
		name      string
		workflow  string
		wantCheck string
	}{
		{
			name: "missing push branch filter",
			workflow: `
on:
  push: {}
  pull_request:
    branches: [main]
concurrency:
  group: g
  cancel-in-progress: true
jobs:
  test:
    if: github.event_name == 'pull_request'
  deploy:
    if: github.event_name == 'push'
`,
			wantCheck: "triggers",
		},
		{
			name: "cancel-in-progress disabled",
			workflow: `
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
concurrency:
  group: g
  cancel-in-progress: false
jobs:
  test:
    if: github.event_name == 'pull_request'
  deploy:
    if: github.event_name == 'push'
`,
			wantCheck: "concurrency",
		},
		{
			name: "invalid cron",
			workflow: `
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
  schedule:
    - cron: "not a cron"
concurrency:
  group: g
  cancel-in-progress: true
jobs:
  test:
    if: github.event_name == 'pull_request'
  deploy:
    if: github.event_name == 'push'
`,
			wantCheck: "schedule",
		},
		{
			name: "deploy gated on pull_request",
			workflow: `
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
concurrency:
  group: g
  cancel-in-progress: true
jobs:
  test:
    if: github.event_name == 'pull_request'
  deploy:
    if: github.event_name == 'pull_request'
`,
			wantCheck: "jobs",
		},
		{
			name: "missing job definitions",
			workflow: `
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
concurrency:
  group: g
  cancel-in-progress: true
jobs: {}
`,
			wantCheck: "jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings, err := LintWorkflow([]byte(tt.workflow))
			require.NoError(t, err)
			assert.Contains(t, lintFindingChecks(findings), tt.wantCheck)
		})
	}
}

func TestLintWorkflowReportsEveryMissingSecret(t *testing.T) {
	workflow := `
on:
  push:
    branches: [main]
  pull_request:
    branches: [main]
concurrency:
  group: g
  cancel-in-progress: true
jobs:
  test:
    if: github.event_name == 'pull_request'
  deploy:
    if: github.event_name == 'push'
    steps:
      - name: Release
        run: bundle exec fastlane release
        env:
          MATCH_PASSWORD: ${{ secrets.MATCH_PASSWORD }}
`
	findings, err := LintWorkflow([]byte(workflow))
	require.NoError(t, err)

	var secretFindings int
	for _, f := range findings {
		if f.Check == "secrets" {
			secretFindings++
		}
	}
	assert.Equal(t, 4, secretFindings, "one finding per missing secret reference")
}

func TestLintWorkflowRejectsInvalidYAML(t *testing.T) {
	_, err := LintWorkflow([]byte("jobs: [unclosed"))
	assert.Error(t, err)
}

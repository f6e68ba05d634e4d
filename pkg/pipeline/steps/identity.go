package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// ApplySigningStep writes the code-signing settings the build consumes:
// an xcconfig fragment pinning the team, profile, and build number
// resolved by the earlier steps.
type ApplySigningStep struct{}

// Name implements pipeline.Step.
func (ApplySigningStep) Name() types.StepName {
	return types.StepApplySigning
}

// Run implements pipeline.Step.
func (ApplySigningStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.Credential == nil {
		return types.NewSigningResolutionError("no signing credential in scope")
	}
	if rc.BuildNumber == 0 {
		return fmt.Errorf("no build number in scope")
	}

	content := fmt.Sprintf(`CODE_SIGN_STYLE = Manual
DEVELOPMENT_TEAM = %s
PROVISIONING_PROFILE_SPECIFIER = %s
CODE_SIGN_IDENTITY = Apple Distribution
CURRENT_PROJECT_VERSION = %d
`, rc.Project.TeamID, rc.Credential.ProfileName, rc.BuildNumber)

	path := filepath.Join(rc.WorkDir, "Signing.xcconfig")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write signing settings: %w", err)
	}

	rc.Logger.Debug("Signing identity applied")
	return nil
}

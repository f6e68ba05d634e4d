package steps

import (
	"context"
	"os"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// CleanupStep deletes the local build artifacts: the materialized API
// key, the credential checkout, and the packaging scratch space. It only
// runs when every prior step succeeded; aborted runs leave their state
// for the hosting environment to reap (no rollback is attempted).
type CleanupStep struct{}

// Name implements pipeline.Step.
func (CleanupStep) Name() types.StepName {
	return types.StepCleanup
}

// Run implements pipeline.Step.
func (CleanupStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.APIKeyPath != "" {
		_ = os.Remove(rc.APIKeyPath)
		rc.APIKeyPath = ""
	}
	if rc.CredentialDir != "" {
		_ = os.RemoveAll(rc.CredentialDir)
		rc.CredentialDir = ""
	}
	if rc.WorkDir != "" {
		_ = os.RemoveAll(rc.WorkDir)
		rc.WorkDir = ""
	}
	rc.ArtifactPath = ""
	rc.ASCToken = ""

	rc.Logger.Debug("Local build artifacts removed", log.Str("run_id", rc.RunID))
	return nil
}

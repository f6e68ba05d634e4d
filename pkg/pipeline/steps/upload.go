package steps

import (
	"context"
	"fmt"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// UploadStep hands the packaged artifact to the distribution endpoint.
// Failures surface verbatim; retry policy is the hosting CI's business,
// not ours.
type UploadStep struct {
	Runner CommandRunner
}

// Name implements pipeline.Step.
func (s *UploadStep) Name() types.StepName {
	return types.StepUpload
}

// Run implements pipeline.Step.
func (s *UploadStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.ArtifactPath == "" {
		return types.NewUploadError("no artifact to upload", nil)
	}
	if rc.APIKey == nil {
		return types.NewUploadError("no api key in scope", nil)
	}

	err := s.Runner.Run(ctx, "", "xcrun", "altool",
		"--upload-app",
		"--type", "ios",
		"-f", rc.ArtifactPath,
		"--apiKey", rc.APIKey.KeyID,
		"--apiIssuer", rc.APIKey.IssuerID,
	)
	if err != nil {
		return types.NewUploadError(fmt.Sprintf("endpoint rejected %s", rc.ArtifactPath), err)
	}

	rc.Logger.Info("Artifact uploaded", log.Str("artifact", rc.ArtifactPath))
	return nil
}

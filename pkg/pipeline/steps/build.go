package steps

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// BuildStep compiles and packages the app into an installable artifact.
// The artifact name is deterministic per run: <scheme>-<build number>.ipa.
type BuildStep struct {
	Runner CommandRunner
}

// Name implements pipeline.Step.
func (s *BuildStep) Name() types.StepName {
	return types.StepBuild
}

// Run implements pipeline.Step.
func (s *BuildStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	artifact := filepath.Join(rc.WorkDir,
		fmt.Sprintf("%s-%d.ipa", rc.Project.Scheme, rc.BuildNumber))
	archive := filepath.Join(rc.WorkDir, rc.Project.Scheme+".xcarchive")

	args := []string{
		"-scheme", rc.Project.Scheme,
		"-archivePath", archive,
		"-xcconfig", filepath.Join(rc.WorkDir, "Signing.xcconfig"),
		"archive",
	}
	if rc.Project.XcodeProject != "" {
		args = append([]string{"-project", rc.Project.XcodeProject}, args...)
	}
	if err := s.Runner.Run(ctx, "", "xcodebuild", args...); err != nil {
		return types.NewBuildError("archive", err)
	}

	err := s.Runner.Run(ctx, "", "xcodebuild",
		"-exportArchive",
		"-archivePath", archive,
		"-exportPath", rc.WorkDir,
		"-exportOptionsPlist", filepath.Join(rc.WorkDir, "ExportOptions.plist"),
	)
	if err != nil {
		return types.NewBuildError("export", err)
	}

	rc.ArtifactPath = artifact
	rc.Logger.Info("Artifact built", log.Str("artifact", filepath.Base(artifact)))
	return nil
}

package steps

import (
	"context"

	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// StepRunTests is the test stage's single step.
const StepRunTests types.StepName = "run-tests"

// RunTestsStep runs the test suite without any signing in scope.
type RunTestsStep struct {
	Runner CommandRunner
}

// Name implements pipeline.Step.
func (s *RunTestsStep) Name() types.StepName {
	return StepRunTests
}

// Run implements pipeline.Step.
func (s *RunTestsStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	args := []string{
		"-scheme", rc.Project.Scheme,
		"-destination", "platform=iOS Simulator,name=iPhone 16",
		"test",
	}
	if rc.Project.XcodeProject != "" {
		args = append([]string{"-project", rc.Project.XcodeProject}, args...)
	}
	if err := s.Runner.Run(ctx, "", "xcodebuild", args...); err != nil {
		return types.NewBuildError("test suite", err)
	}
	return nil
}

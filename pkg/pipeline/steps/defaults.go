package steps

import (
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/store"
)

// Deps carries the collaborators the production step set needs.
type Deps struct {
	Runner CommandRunner

	// Store backs the build-number counter. Optional when
	// BuildNumberOverride is set.
	Store store.Store

	// BuildNumberOverride uses the hosted runner's run counter instead
	// of the store.
	BuildNumberOverride int64

	// Fetcher overrides the git credential fetcher, for tests.
	Fetcher CredentialFetcher
}

// DeploySteps assembles the production deploy sequence in canonical
// order.
func DeploySteps(deps Deps) []pipeline.Step {
	runner := deps.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return []pipeline.Step{
		&ResolveAPIKeyStep{},
		&AcquireSigningStep{Fetcher: deps.Fetcher},
		&SetBuildNumberStep{Store: deps.Store, Override: deps.BuildNumberOverride},
		ApplySigningStep{},
		&BuildStep{Runner: runner},
		&UploadStep{Runner: runner},
		CleanupStep{},
	}
}

// TestSteps assembles the test stage sequence.
func TestSteps(deps Deps) []pipeline.Step {
	runner := deps.Runner
	if runner == nil {
		runner = ExecRunner{}
	}
	return []pipeline.Step{
		&RunTestsStep{Runner: runner},
	}
}

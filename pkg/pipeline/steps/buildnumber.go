package steps

import (
	"context"
	"fmt"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/store"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// SetBuildNumberStep assigns the numeric build identifier for the run.
// Hosted runs usually pass the runner's run counter as Override; local
// runs advance the store's per-bundle counter.
type SetBuildNumberStep struct {
	Store    store.Store
	Override int64
}

// Name implements pipeline.Step.
func (s *SetBuildNumberStep) Name() types.StepName {
	return types.StepSetBuildNumber
}

// Run implements pipeline.Step.
func (s *SetBuildNumberStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	switch {
	case s.Override > 0:
		rc.BuildNumber = s.Override
	case s.Store != nil:
		n, err := s.Store.NextBuildNumber(ctx, rc.Project.BundleID)
		if err != nil {
			return fmt.Errorf("failed to advance build counter: %w", err)
		}
		rc.BuildNumber = n
	default:
		return fmt.Errorf("no build number source: need a store or an override")
	}

	rc.Logger.Debug("Build number set", log.Int64("build_number", rc.BuildNumber))
	return nil
}

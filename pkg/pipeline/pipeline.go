// Package pipeline models the two-stage release pipeline: a test stage
// gated on pull requests and a deploy stage gated on pushes to the
// default branch, with a fixed, non-reorderable deploy step sequence.
package pipeline

import (
	"context"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Step is one unit of work in a stage. Implementations live in the steps
// subpackage; dry runs use Noop.
type Step interface {
	// Name identifies the step in traces and logs.
	Name() types.StepName

	// Run executes the step. A returned error aborts the remaining
	// sequence for the run.
	Run(ctx context.Context, rc *RunContext) error
}

// noopStep records its name in the trace and does nothing else.
type noopStep struct {
	name types.StepName
}

func (s noopStep) Name() types.StepName { return s.name }

func (s noopStep) Run(context.Context, *RunContext) error { return nil }

// Noop returns a step that does nothing. Dry runs substitute these for
// the real deploy steps so the trace still reflects the full sequence.
func Noop(name types.StepName) Step {
	return noopStep{name: name}
}

// NoopDeploySteps returns no-op stand-ins for the whole deploy sequence.
func NoopDeploySteps() []Step {
	out := make([]Step, 0, len(types.DeployStepOrder))
	for _, name := range types.DeployStepOrder {
		out = append(out, Noop(name))
	}
	return out
}

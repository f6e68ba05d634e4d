package types

import "time"

// StepName identifies one deploy stage step. The order of the deploy
// steps is fixed and not reorderable.
type StepName string

const (
	StepResolveAPIKey  StepName = "resolve-api-key"
	StepAcquireSigning StepName = "acquire-signing-credential"
	StepSetBuildNumber StepName = "set-build-number"
	StepApplySigning   StepName = "apply-signing-identity"
	StepBuild          StepName = "build"
	StepUpload         StepName = "upload"
	StepCleanup        StepName = "cleanup"
)

// DeployStepOrder is the canonical ordering of the deploy stage.
var DeployStepOrder = []StepName{
	StepResolveAPIKey,
	StepAcquireSigning,
	StepSetBuildNumber,
	StepApplySigning,
	StepBuild,
	StepUpload,
	StepCleanup,
}

// StageName identifies one pipeline stage.
type StageName string

const (
	// StageTest runs the test suite without signing.
	StageTest StageName = "test"

	// StageDeploy signs, builds, and uploads the artifact.
	StageDeploy StageName = "deploy"
)

// PipelineStage is one named phase of the pipeline with its own trigger
// gate and ordered step list.
type PipelineStage struct {
	Name  StageName  `json:"name" yaml:"name"`
	Gate  []Trigger  `json:"gate" yaml:"gate"`
	Steps []StepName `json:"steps" yaml:"steps"`
}

// Gated reports whether the stage runs for the given trigger.
func (s *PipelineStage) Gated(trigger Trigger) bool {
	for _, t := range s.Gate {
		if t == trigger {
			return true
		}
	}
	return false
}

// RunState is the sequencer state machine position.
type RunState string

const (
	StateIdle   RunState = "idle"
	StateTest   RunState = "test"
	StateDeploy RunState = "deploy"
	StateDone   RunState = "done"
)

// RunOutcome is the terminal result of a pipeline run.
type RunOutcome string

const (
	OutcomePassed    RunOutcome = "passed"
	OutcomeFailed    RunOutcome = "failed"
	OutcomeCancelled RunOutcome = "cancelled"
	OutcomeSkipped   RunOutcome = "skipped"
)

// RunRecord is the persisted summary of one pipeline run.
type RunRecord struct {
	ID          string         `json:"id" yaml:"id"`
	BundleID    string         `json:"bundle_id" yaml:"bundle_id"`
	Trigger     Trigger        `json:"trigger" yaml:"trigger"`
	Environment RunEnvironment `json:"environment" yaml:"environment"`
	Stages      []StageName    `json:"stages" yaml:"stages"`
	StepTrace   []StepName     `json:"step_trace,omitempty" yaml:"step_trace,omitempty"`
	BuildNumber int64          `json:"build_number,omitempty" yaml:"build_number,omitempty"`
	Outcome     RunOutcome     `json:"outcome" yaml:"outcome"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt   time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt  time.Time      `json:"finished_at" yaml:"finished_at"`
}

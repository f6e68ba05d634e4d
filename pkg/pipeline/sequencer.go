package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/store"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Options configures a Sequencer.
type Options struct {
	// Project is the immutable configuration for runs.
	Project types.ProjectConfig

	// Environment says where runs execute. Defaults to EnvLocal.
	Environment types.RunEnvironment

	// Secrets resolves secret names for validation and for steps.
	Secrets secrets.Source

	// Validator checks deploy secrets before the deploy stage starts.
	// Defaults to the standard deploy secret set.
	Validator *secrets.Validator

	// TestSteps run in the test stage.
	TestSteps []Step

	// DeploySteps run in the deploy stage. Their names must match the
	// canonical deploy order exactly.
	DeploySteps []Step

	// Store receives the run record at run end. Optional.
	Store store.Store

	// Stage selects which stage a manual dispatch runs. Ignored for
	// other triggers.
	Stage types.StageName

	// Logger for run progress. Defaults to the package default logger.
	Logger log.Logger
}

// Sequencer drives one pipeline run at a time through the state machine
// Idle -> TestStage -> Done or Idle -> DeployStage -> Done. Exactly one
// stage executes per trigger; pushes bypass the test gate because the
// upstream pull request already ran it.
type Sequencer struct {
	opts  Options
	state types.RunState
	trace []types.StepName
}

// NewSequencer validates the options and creates a sequencer in the Idle
// state.
func NewSequencer(opts Options) (*Sequencer, error) {
	if err := opts.Project.Validate(); err != nil {
		return nil, err
	}
	if opts.Secrets == nil {
		opts.Secrets = secrets.EnvSource{}
	}
	if opts.Validator == nil {
		opts.Validator = secrets.NewValidator()
	}
	if opts.Environment == "" {
		opts.Environment = types.EnvLocal
	}
	if opts.Logger == nil {
		opts.Logger = log.GetDefaultLogger()
	}
	opts.Logger = opts.Logger.WithComponent("sequencer")

	if len(opts.DeploySteps) != len(types.DeployStepOrder) {
		return nil, fmt.Errorf("deploy stage needs %d steps, got %d",
			len(types.DeployStepOrder), len(opts.DeploySteps))
	}
	for i, step := range opts.DeploySteps {
		if step.Name() != types.DeployStepOrder[i] {
			return nil, fmt.Errorf("deploy step %d must be %q, got %q",
				i, types.DeployStepOrder[i], step.Name())
		}
	}

	return &Sequencer{opts: opts, state: types.StateIdle}, nil
}

// State returns the current state machine position.
func (s *Sequencer) State() types.RunState {
	return s.state
}

// Trace returns the names of the steps that completed so far, in
// execution order.
func (s *Sequencer) Trace() []types.StepName {
	out := make([]types.StepName, len(s.trace))
	copy(out, s.trace)
	return out
}

// Run executes the stage the trigger gates in. It returns the persisted
// run record; the record's Outcome and Error carry the result even when
// an error is also returned.
func (s *Sequencer) Run(ctx context.Context, trigger types.Trigger) (*types.RunRecord, error) {
	record := &types.RunRecord{
		ID:          uuid.NewString(),
		BundleID:    s.opts.Project.BundleID,
		Trigger:     trigger,
		Environment: s.opts.Environment,
		StartedAt:   time.Now().UTC(),
	}
	s.trace = nil

	logger := s.opts.Logger.With(
		log.Str("run_id", record.ID),
		log.Str("trigger", string(trigger)),
	)
	logger.Info("Pipeline run starting")

	runErr := s.run(ctx, trigger, record, logger)

	record.StepTrace = s.Trace()
	record.FinishedAt = time.Now().UTC()
	switch {
	case runErr == nil:
		if record.Outcome == "" {
			record.Outcome = types.OutcomePassed
		}
	case ctx.Err() != nil:
		record.Outcome = types.OutcomeCancelled
		record.Error = runErr.Error()
	default:
		record.Outcome = types.OutcomeFailed
		record.Error = runErr.Error()
	}
	s.state = types.StateDone

	if s.opts.Store != nil {
		if err := s.opts.Store.SaveRun(ctx, record); err != nil {
			logger.Warn("Failed to persist run record", log.Err(err))
		}
	}

	logger.Info("Pipeline run finished",
		log.Str("outcome", string(record.Outcome)),
		log.Duration("elapsed", record.FinishedAt.Sub(record.StartedAt)))
	return record, runErr
}

func (s *Sequencer) run(ctx context.Context, trigger types.Trigger, record *types.RunRecord, logger log.Logger) error {
	stage, err := s.stageFor(trigger)
	if err != nil {
		return err
	}
	record.Stages = []types.StageName{stage}

	switch stage {
	case types.StageTest:
		s.state = types.StateTest
		return s.runSteps(ctx, s.opts.TestSteps, record, logger)
	case types.StageDeploy:
		s.state = types.StateDeploy
		// Every required secret must resolve before the first deploy
		// step runs; the operator sees all gaps at once.
		if err := s.opts.Validator.Validate(s.opts.Secrets); err != nil {
			logger.Error("Deploy secrets incomplete", log.Err(err))
			return err
		}
		return s.runSteps(ctx, s.opts.DeploySteps, record, logger)
	default:
		return fmt.Errorf("unknown stage: %q", stage)
	}
}

// stageFor applies the trigger gates: exactly one stage per trigger.
func (s *Sequencer) stageFor(trigger types.Trigger) (types.StageName, error) {
	switch trigger {
	case types.TriggerPullRequest, types.TriggerSchedule:
		return types.StageTest, nil
	case types.TriggerPush:
		return types.StageDeploy, nil
	case types.TriggerManual:
		switch s.opts.Stage {
		case types.StageTest, types.StageDeploy:
			return s.opts.Stage, nil
		case "":
			return "", fmt.Errorf("manual dispatch requires a stage name")
		default:
			return "", fmt.Errorf("unknown stage: %q", s.opts.Stage)
		}
	default:
		return "", fmt.Errorf("unknown trigger: %q", trigger)
	}
}

func (s *Sequencer) runSteps(ctx context.Context, steps []Step, record *types.RunRecord, logger log.Logger) error {
	rc := &RunContext{
		RunID:       record.ID,
		Project:     s.opts.Project.WithDefaults(),
		Secrets:     s.opts.Secrets,
		Environment: s.opts.Environment,
		Logger:      logger,
	}

	for _, step := range steps {
		// Cancellation is honored at step boundaries; the in-flight
		// step is abandoned, never rolled back.
		if err := ctx.Err(); err != nil {
			logger.Warn("Run cancelled", log.Str("next_step", string(step.Name())))
			return err
		}

		stepLogger := logger.With(log.Str("step", string(step.Name())))
		stepLogger.Info("Step starting")
		started := time.Now()

		if err := step.Run(ctx, rc); err != nil {
			stepLogger.Error("Step failed", log.Err(err))
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}

		s.trace = append(s.trace, step.Name())
		stepLogger.Info("Step finished", log.Duration("elapsed", time.Since(started)))
	}

	record.BuildNumber = rc.BuildNumber
	return nil
}

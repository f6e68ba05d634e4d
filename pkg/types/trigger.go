package types

import "fmt"

// Trigger identifies the event that started a pipeline run.
type Trigger string

const (
	// TriggerPullRequest is a pull request against the default branch.
	TriggerPullRequest Trigger = "pull-request"

	// TriggerPush is a push to the default branch.
	TriggerPush Trigger = "push"

	// TriggerManual is a manual dispatch with a selectable stage name.
	TriggerManual Trigger = "manual"

	// TriggerSchedule is a cron-scheduled run.
	TriggerSchedule Trigger = "schedule"
)

// ParseTrigger converts a CLI/workflow trigger name to a Trigger.
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case TriggerPullRequest, TriggerPush, TriggerManual, TriggerSchedule:
		return Trigger(s), nil
	}
	return "", fmt.Errorf("unknown trigger: %q", s)
}

// RunEnvironment distinguishes where a run executes. It is passed into the
// sequencer explicitly; nothing in the pipeline sniffs the environment at
// runtime.
type RunEnvironment string

const (
	// EnvLocal is a developer machine.
	EnvLocal RunEnvironment = "local"

	// EnvHosted is a hosted CI runner.
	EnvHosted RunEnvironment = "hosted"
)

// ParseRunEnvironment converts a name to a RunEnvironment.
func ParseRunEnvironment(s string) (RunEnvironment, error) {
	switch RunEnvironment(s) {
	case EnvLocal, EnvHosted:
		return RunEnvironment(s), nil
	}
	return "", fmt.Errorf("unknown run environment: %q", s)
}

// Package steps implements the deploy stage steps. Each step reads and
// writes the shared RunContext; anything that shells out goes through
// the CommandRunner so tests can substitute a recorder.
package steps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// CommandRunner executes an external command in a working directory.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, inheriting stdout/stderr so the
// build tool output lands in the job log.
type ExecRunner struct{}

// Run executes the command.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Invocation is one recorded CommandRunner call.
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

// RecordingRunner captures invocations instead of executing them, and
// can be scripted to fail for a given command name.
type RecordingRunner struct {
	mu          sync.Mutex
	invocations []Invocation

	// FailOn maps a command name to the error its invocation returns.
	FailOn map[string]error
}

// Run records the invocation.
func (r *RecordingRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	r.mu.Lock()
	r.invocations = append(r.invocations, Invocation{Dir: dir, Name: name, Args: args})
	r.mu.Unlock()

	if err, ok := r.FailOn[name]; ok {
		return err
	}
	return nil
}

// Invocations returns a copy of the recorded calls.
func (r *RecordingRunner) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Invocation, len(r.invocations))
	copy(out, r.invocations)
	return out
}

// Commands returns just the command names, in call order.
func (r *RecordingRunner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.invocations))
	for _, inv := range r.invocations {
		out = append(out, inv.Name)
	}
	return out
}

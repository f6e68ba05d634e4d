package render

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
)

// Finding is one lint problem in a workflow definition.
type Finding struct {
	Check   string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Check, f.Message)
}

// workflowDoc mirrors the subset of the GitHub Actions schema the linter
// cares about. yaml.v3 decodes the bare `on:` key as "on".
type workflowDoc struct {
	Name string `yaml:"name"`
	On   struct {
		Push struct {
			Branches []string `yaml:"branches"`
		} `yaml:"push"`
		PullRequest struct {
			Branches []string `yaml:"branches"`
		} `yaml:"pull_request"`
		Schedule []struct {
			Cron string `yaml:"cron"`
		} `yaml:"schedule"`
		WorkflowDispatch map[string]any `yaml:"workflow_dispatch"`
	} `yaml:"on"`
	Concurrency struct {
		Group            string `yaml:"group"`
		CancelInProgress bool   `yaml:"cancel-in-progress"`
	} `yaml:"concurrency"`
	Jobs map[string]workflowJob `yaml:"jobs"`
}

type workflowJob struct {
	If    string `yaml:"if"`
	Steps []struct {
		Name string            `yaml:"name"`
		Run  string            `yaml:"run"`
		With map[string]any `yaml:"with"`
		Env  map[string]any `yaml:"env"`
	} `yaml:"steps"`
}

// LintWorkflow checks a rendered workflow definition: trigger gates,
// concurrency settings, required secret references, and the cron
// expression if a schedule is present. It returns every finding rather
// than stopping at the first.
func LintWorkflow(data []byte) ([]Finding, error) {
	var doc workflowDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("workflow is not valid YAML: %w", err)
	}

	var findings []Finding
	report := func(check, format string, args ...interface{}) {
		findings = append(findings, Finding{Check: check, Message: fmt.Sprintf(format, args...)})
	}

	if len(doc.On.Push.Branches) == 0 {
		report("triggers", "push trigger has no branch filter")
	}
	if len(doc.On.PullRequest.Branches) == 0 {
		report("triggers", "pull_request trigger has no branch filter")
	}
	for _, s := range doc.On.Schedule {
		if _, err := cronParser.Parse(s.Cron); err != nil {
			report("schedule", "invalid cron %q: %v", s.Cron, err)
		}
	}

	if doc.Concurrency.Group == "" {
		report("concurrency", "no concurrency group set")
	}
	if !doc.Concurrency.CancelInProgress {
		report("concurrency", "cancel-in-progress is not enabled")
	}

	test, ok := doc.Jobs["test"]
	if !ok {
		report("jobs", "no test job defined")
	} else {
		if !strings.Contains(test.If, "pull_request") {
			report("jobs", "test job is not gated on pull_request")
		}
		if strings.Contains(jobEnvRefs(test), "secrets.") {
			report("secrets", "test job references deploy secrets")
		}
	}

	deploy, ok := doc.Jobs["deploy"]
	if !ok {
		report("jobs", "no deploy job defined")
	} else {
		if !strings.Contains(deploy.If, "push") {
			report("jobs", "deploy job is not gated on push")
		}
		refs := jobEnvRefs(deploy)
		for _, name := range secrets.RequiredDeploySecrets {
			if !strings.Contains(refs, "secrets."+name) {
				report("secrets", "deploy job never references secrets.%s", name)
			}
		}
	}

	return findings, nil
}

// jobEnvRefs flattens a job's env and with expressions for substring
// checks.
func jobEnvRefs(job workflowJob) string {
	var b strings.Builder
	for _, step := range job.Steps {
		for _, v := range step.With {
			fmt.Fprintln(&b, v)
		}
		for _, v := range step.Env {
			fmt.Fprintln(&b, v)
		}
	}
	return b.String()
}

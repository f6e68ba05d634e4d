package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the identity of the iOS project a pipeline run
// operates on. All values are opaque strings supplied once at run start
// and immutable for the remainder of the run.
type ProjectConfig struct {
	// App bundle identifier, e.g. "com.acme.app" (required)
	BundleID string `json:"bundle_id" yaml:"bundle_id" mapstructure:"bundle_id"`

	// Apple developer team identifier, e.g. "ABCDE12345" (required)
	TeamID string `json:"team_id" yaml:"team_id" mapstructure:"team_id"`

	// Apple account email used by the signing tooling
	AppleID string `json:"apple_id,omitempty" yaml:"apple_id,omitempty" mapstructure:"apple_id"`

	// Xcode scheme to build
	Scheme string `json:"scheme,omitempty" yaml:"scheme,omitempty" mapstructure:"scheme"`

	// Xcode project file name, e.g. "Acme.xcodeproj"
	XcodeProject string `json:"xcode_project,omitempty" yaml:"xcode_project,omitempty" mapstructure:"xcode_project"`

	// Git URL of the private signing credential repository
	MatchRepo string `json:"match_repo,omitempty" yaml:"match_repo,omitempty" mapstructure:"match_repo"`

	// Branch whose pushes trigger deployment (defaults to "main")
	DefaultBranch string `json:"default_branch,omitempty" yaml:"default_branch,omitempty" mapstructure:"default_branch"`

	// Optional cron expression for scheduled test runs
	Schedule string `json:"schedule,omitempty" yaml:"schedule,omitempty" mapstructure:"schedule"`
}

// Validate checks that the fields every template family needs are present.
func (p *ProjectConfig) Validate() error {
	if p.BundleID == "" {
		return NewMissingFieldError("bundle_id")
	}
	if p.TeamID == "" {
		return NewMissingFieldError("team_id")
	}
	return nil
}

// WithDefaults returns a copy with unset optional fields filled in.
func (p ProjectConfig) WithDefaults() ProjectConfig {
	if p.Scheme == "" {
		p.Scheme = "App"
	}
	if p.DefaultBranch == "" {
		p.DefaultBranch = "main"
	}
	return p
}

// ProjectFile is the on-disk flightdeck.yaml wrapper around a project
// configuration.
type ProjectFile struct {
	Project *ProjectConfig `yaml:"project,omitempty"`
}

// LoadProjectFile reads and parses a flightdeck.yaml.
func LoadProjectFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if pf.Project == nil {
		return nil, NewMissingFieldError("project")
	}
	return pf.Project, nil
}

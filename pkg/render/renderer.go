// Package render produces the fixed configuration files an iOS release
// pipeline needs, filled in from a project configuration. Rendering is
// pure: output is returned as text and writing to disk is the caller's
// job.
package render

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	cron "github.com/robfig/cron/v3"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Family identifies one of the fixed template families.
type Family string

const (
	// FamilyGemfile is the Ruby dependency manifest.
	FamilyGemfile Family = "gemfile"

	// FamilyAppfile is the app identity file.
	FamilyAppfile Family = "appfile"

	// FamilyMatchfile is the signing-source file.
	FamilyMatchfile Family = "matchfile"

	// FamilyFastfile is the lane (stage) definition file.
	FamilyFastfile Family = "fastfile"

	// FamilyWorkflow is the hosted pipeline definition.
	FamilyWorkflow Family = "workflow"
)

// Families is the full set, in render order.
var Families = []Family{
	FamilyGemfile,
	FamilyAppfile,
	FamilyMatchfile,
	FamilyFastfile,
	FamilyWorkflow,
}

// Path returns the conventional on-disk location for the family, relative
// to the project root.
func (f Family) Path() string {
	switch f {
	case FamilyGemfile:
		return "Gemfile"
	case FamilyAppfile:
		return "fastlane/Appfile"
	case FamilyMatchfile:
		return "fastlane/Matchfile"
	case FamilyFastfile:
		return "fastlane/Fastfile"
	case FamilyWorkflow:
		return ".github/workflows/release.yml"
	default:
		return string(f)
	}
}

// Templates use [[ ]] delimiters so the `${{ }}` expressions in the
// hosted workflow pass through untouched.
const templateDelimLeft, templateDelimRight = "[[", "]]"

// cronParser accepts the standard five-field expressions hosted runners
// use for schedule triggers.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Renderer renders the template families from a ProjectConfig.
type Renderer struct {
	templates map[Family]*template.Template
}

// NewRenderer parses all template families. Parsing happens once; Render
// only executes.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[Family]*template.Template, len(templateSources))}
	for family, source := range templateSources {
		tmpl, err := template.New(string(family)).
			Delims(templateDelimLeft, templateDelimRight).
			Funcs(sprig.FuncMap()).
			Option("missingkey=error").
			Parse(source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", family, err)
		}
		r.templates[family] = tmpl
	}
	return r, nil
}

// Render produces the text of one family. The config is validated first;
// an invalid config yields a MissingFieldError and no partial output.
func (r *Renderer) Render(family Family, cfg types.ProjectConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	cfg = cfg.WithDefaults()

	if family == FamilyWorkflow && cfg.Schedule != "" {
		if _, err := cronParser.Parse(cfg.Schedule); err != nil {
			return "", fmt.Errorf("invalid schedule expression %q: %w", cfg.Schedule, err)
		}
	}

	tmpl, ok := r.templates[family]
	if !ok {
		return "", fmt.Errorf("unknown template family: %q", family)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, cfg); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", family, err)
	}
	return b.String(), nil
}

// RenderAll renders every family. Either all families render or none do.
func (r *Renderer) RenderAll(cfg types.ProjectConfig) (map[Family]string, error) {
	out := make(map[Family]string, len(Families))
	for _, family := range Families {
		text, err := r.Render(family, cfg)
		if err != nil {
			return nil, err
		}
		out[family] = text
	}
	return out, nil
}

// SortedFamilies returns family keys of a rendered set in a stable order.
func SortedFamilies(rendered map[Family]string) []Family {
	keys := make([]Family, 0, len(rendered))
	for f := range rendered {
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

package secrets

import (
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// Names of the secrets every deploy run requires.
const (
	MatchDeployKey = "MATCH_DEPLOY_KEY"
	MatchPassword  = "MATCH_PASSWORD"
	ASCAPIKey      = "APP_STORE_CONNECT_API_KEY"
	ASCKeyID       = "APP_STORE_CONNECT_KEY_ID"
	ASCIssuerID    = "APP_STORE_CONNECT_ISSUER_ID"
)

// RequiredDeploySecrets is the canonical required list, in the order
// missing names are reported.
var RequiredDeploySecrets = []string{
	MatchDeployKey,
	MatchPassword,
	ASCAPIKey,
	ASCKeyID,
	ASCIssuerID,
}

// Validator checks that a set of named secrets is present and non-empty.
type Validator struct {
	required []string
}

// NewValidator creates a validator for the standard deploy secrets plus
// any extra app-specific names.
func NewValidator(extra ...string) *Validator {
	required := make([]string, 0, len(RequiredDeploySecrets)+len(extra))
	required = append(required, RequiredDeploySecrets...)
	required = append(required, extra...)
	return &Validator{required: required}
}

// Required returns the names the validator checks, in report order.
func (v *Validator) Required() []string {
	out := make([]string, len(v.required))
	copy(out, v.required)
	return out
}

// Validate confirms every required secret is present and non-empty in the
// source. On failure it returns a single MissingSecretError naming every
// missing secret, not just the first, so the operator can fix all gaps in
// one pass.
func (v *Validator) Validate(source Source) error {
	var missing []string
	for _, name := range v.required {
		value, ok := source.Lookup(name)
		if !ok || value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return types.NewMissingSecretError(missing...)
	}
	return nil
}

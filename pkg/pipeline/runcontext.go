package pipeline

import (
	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// RunContext carries the state one pipeline run accumulates as its steps
// execute. It is created at run start from external inputs and discarded
// at run end; nothing in it outlives the run.
type RunContext struct {
	// RunID is the unique id of this run.
	RunID string

	// Project is the immutable project configuration for the run.
	Project types.ProjectConfig

	// Secrets resolves secret names. Steps read values through this,
	// never from the process environment directly.
	Secrets secrets.Source

	// Environment says where the run executes (local or hosted).
	Environment types.RunEnvironment

	// Logger is the run-scoped logger.
	Logger log.Logger

	// WorkDir is a per-run scratch directory. Cleanup removes it.
	WorkDir string

	// APIKey is the resolved App Store Connect key descriptor.
	APIKey *types.APIKey

	// APIKeyPath is the temporary file the key was materialized to.
	APIKeyPath string

	// ASCToken is the minted App Store Connect bearer token.
	ASCToken string

	// Credential is the resolved signing credential.
	Credential *types.SigningCredential

	// CredentialDir is the local read-only checkout of the credential
	// repository.
	CredentialDir string

	// BuildNumber is the numeric build identifier for this run.
	BuildNumber int64

	// ArtifactPath is the packaged build product consumed by upload.
	ArtifactPath string
}

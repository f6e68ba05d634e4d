package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// CredentialFetcher materializes a read-only copy of the signing
// credential repository into dir.
type CredentialFetcher interface {
	Fetch(ctx context.Context, repoURL, deployKey, dir string) error
}

// GitFetcher clones the credential repository over SSH with the deploy
// key. The clone is shallow and never pushed; ordinary runs treat the
// store as read-only.
type GitFetcher struct{}

// Fetch implements CredentialFetcher.
func (GitFetcher) Fetch(ctx context.Context, repoURL, deployKey, dir string) error {
	auth, err := gitssh.NewPublicKeys("git", []byte(deployKey), "")
	if err != nil {
		return fmt.Errorf("invalid deploy key: %w", err)
	}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   repoURL,
		Auth:  auth,
		Depth: 1,
	})
	if err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}
	return nil
}

// AcquireSigningStep fetches the credential repository and resolves the
// certificate/profile pair for the run's platform and bundle identifier.
type AcquireSigningStep struct {
	Fetcher CredentialFetcher

	// Platform of the credential to resolve. Defaults to iOS.
	Platform types.PlatformType
}

// Name implements pipeline.Step.
func (s *AcquireSigningStep) Name() types.StepName {
	return types.StepAcquireSigning
}

// Run implements pipeline.Step.
func (s *AcquireSigningStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	if rc.Project.MatchRepo == "" {
		return types.NewMissingFieldError("match_repo")
	}

	deployKey, _ := rc.Secrets.Lookup(secrets.MatchDeployKey)

	platform := s.Platform
	if platform == "" {
		platform = types.PlatformIOS
	}

	dir := filepath.Join(rc.WorkDir, "credentials")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}

	fetcher := s.Fetcher
	if fetcher == nil {
		fetcher = GitFetcher{}
	}
	if err := fetcher.Fetch(ctx, rc.Project.MatchRepo, deployKey, dir); err != nil {
		return types.NewSigningResolutionError("credential store unreachable: %v", err)
	}

	credential := &types.SigningCredential{
		Platform: platform,
		BundleID: rc.Project.BundleID,
	}
	profile, err := resolveProfile(dir, credential)
	if err != nil {
		return err
	}
	credential.ProfileName = profile

	rc.Credential = credential
	rc.CredentialDir = dir
	rc.Logger.Debug("Signing credential resolved",
		log.Str("credential", credential.Key()),
		log.Str("profile", profile))
	return nil
}

// resolveProfile locates the provisioning profile for the credential key
// in the fetched repository layout (profiles/appstore/<bundle id>.*).
func resolveProfile(dir string, credential *types.SigningCredential) (string, error) {
	profileDir := filepath.Join(dir, "profiles", "appstore")
	entries, err := os.ReadDir(profileDir)
	if err != nil {
		return "", types.NewSigningResolutionError("no profiles in credential store for %s", credential.Key())
	}

	want := credential.BundleID
	for _, entry := range entries {
		name := entry.Name()
		base := name[:len(name)-len(filepath.Ext(name))]
		// Profile files are named AppStore_<bundle id> by the signing
		// tooling; accept a bare <bundle id> too.
		if base == "AppStore_"+want || base == want {
			return base, nil
		}
	}
	return "", types.NewSigningResolutionError("no profile matching %s", credential.Key())
}

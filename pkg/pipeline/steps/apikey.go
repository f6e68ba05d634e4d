package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/pipeline"
	"github.com/flightdeck-dev/flightdeck/pkg/secrets"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// ascTokenLifetime is the App Store Connect maximum for API tokens.
const ascTokenLifetime = 20 * time.Minute

// ascAudience is the fixed audience claim the API expects.
const ascAudience = "appstoreconnect-v1"

// ResolveAPIKeyStep assembles the App Store Connect API key from the
// secret store, materializes the private key to a temporary file, and
// mints the bearer token the upload endpoint requires. The file path
// lives only in the run context; cleanup removes it.
type ResolveAPIKeyStep struct {
	// Now is the clock used for token claims. Defaults to time.Now.
	Now func() time.Time
}

// Name implements pipeline.Step.
func (s *ResolveAPIKeyStep) Name() types.StepName {
	return types.StepResolveAPIKey
}

// Run implements pipeline.Step.
func (s *ResolveAPIKeyStep) Run(ctx context.Context, rc *pipeline.RunContext) error {
	keyID, _ := rc.Secrets.Lookup(secrets.ASCKeyID)
	issuerID, _ := rc.Secrets.Lookup(secrets.ASCIssuerID)
	keyBlob, _ := rc.Secrets.Lookup(secrets.ASCAPIKey)

	key := &types.APIKey{KeyID: keyID, IssuerID: issuerID, Key: keyBlob}
	if err := key.Validate(); err != nil {
		return err
	}

	pem, err := key.PEM()
	if err != nil {
		return err
	}

	if rc.WorkDir == "" {
		dir, err := os.MkdirTemp("", "flightdeck-run-")
		if err != nil {
			return fmt.Errorf("failed to create work dir: %w", err)
		}
		rc.WorkDir = dir
	}

	path := filepath.Join(rc.WorkDir, fmt.Sprintf("AuthKey_%s.p8", key.KeyID))
	if err := os.WriteFile(path, pem, 0o600); err != nil {
		return fmt.Errorf("failed to materialize api key: %w", err)
	}

	token, err := s.mintToken(key, pem)
	if err != nil {
		// The temp file is useless without a token; don't leave it
		// for cleanup to miss on early abort.
		_ = os.Remove(path)
		return err
	}

	rc.APIKey = key
	rc.APIKeyPath = path
	rc.ASCToken = token
	rc.Logger.Debug("API key resolved", log.Str("key_id", key.KeyID))
	return nil
}

func (s *ResolveAPIKeyStep) mintToken(key *types.APIKey, pem []byte) (string, error) {
	privateKey, err := jwt.ParseECPrivateKeyFromPEM(pem)
	if err != nil {
		return "", fmt.Errorf("api key is not a valid EC private key: %w", err)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	issued := now()

	token := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": key.IssuerID,
		"iat": issued.Unix(),
		"exp": issued.Add(ascTokenLifetime).Unix(),
		"aud": ascAudience,
	})
	token.Header["kid"] = key.KeyID

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

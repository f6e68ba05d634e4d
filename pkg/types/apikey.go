package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// APIKey is the App Store Connect API key descriptor. The private key is
// PEM-encoded text; it is materialized to a temporary file before use and
// the path discarded after the run.
type APIKey struct {
	KeyID    string `json:"key_id" yaml:"key_id"`
	IssuerID string `json:"issuer_id" yaml:"issuer_id"`
	Key      string `json:"key" yaml:"key"`
	InHouse  bool   `json:"in_house,omitempty" yaml:"in_house,omitempty"`
}

// Validate checks the descriptor fields the signing tooling requires.
func (k *APIKey) Validate() error {
	if k.KeyID == "" {
		return NewMissingFieldError("key_id")
	}
	if k.IssuerID == "" {
		return NewMissingFieldError("issuer_id")
	}
	if k.Key == "" {
		return NewMissingFieldError("key")
	}
	return nil
}

// PEM returns the decoded private key text. The key blob may arrive
// base64-wrapped from the secret store; plain PEM passes through.
func (k *APIKey) PEM() ([]byte, error) {
	if strings.HasPrefix(strings.TrimSpace(k.Key), "-----BEGIN") {
		return []byte(k.Key), nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(k.Key))
	if err != nil {
		return nil, fmt.Errorf("api key is neither PEM nor base64: %w", err)
	}
	return decoded, nil
}

// PlatformType identifies the provisioning platform of a signing
// credential.
type PlatformType string

const (
	// PlatformIOS is the iOS App Store platform.
	PlatformIOS PlatformType = "ios"

	// PlatformMacOS is the Mac App Store platform.
	PlatformMacOS PlatformType = "macos"
)

// SigningCredential identifies a certificate/profile pair in the external
// credential repository. The pair is keyed by platform type and bundle
// identifier; the repository owns the material, never this process.
type SigningCredential struct {
	Platform PlatformType `json:"platform" yaml:"platform"`
	BundleID string       `json:"bundle_id" yaml:"bundle_id"`

	// ProfileName is filled in once the credential has been resolved.
	ProfileName string `json:"profile_name,omitempty" yaml:"profile_name,omitempty"`
}

// Key returns the (platform, bundle id) lookup key.
func (c *SigningCredential) Key() string {
	return string(c.Platform) + "/" + c.BundleID
}

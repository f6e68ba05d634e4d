// Package secrets checks that the externally stored secrets a deploy run
// references by name actually exist before any step executes. Secret
// values are opaque; nothing here interprets or persists them.
package secrets

import "os"

// Source resolves a secret name to its value. Implementations never cache
// values beyond the lifetime of a run.
type Source interface {
	// Lookup returns the value for name and whether it was present.
	Lookup(name string) (string, bool)
}

// EnvSource reads secrets from the process environment, the way a hosted
// runner exposes its secret vault to a job.
type EnvSource struct{}

// Lookup returns the environment value for name.
func (EnvSource) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// StaticSource serves secrets from a fixed map. Used by tests and by
// config-file supplied values in local runs.
type StaticSource map[string]string

// Lookup returns the mapped value for name.
func (s StaticSource) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// ChainSource consults sources in order and returns the first hit.
type ChainSource []Source

// Lookup returns the first present value for name.
func (c ChainSource) Lookup(name string) (string, bool) {
	for _, s := range c {
		if v, ok := s.Lookup(name); ok {
			return v, ok
		}
	}
	return "", false
}

// Package store persists the only state Flightdeck keeps across pipeline
// runs: the per-bundle build-number counter and the run history.
package store

import (
	"context"
	"errors"

	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// ErrRunNotFound is returned when a run id has no record.
var ErrRunNotFound = errors.New("run not found")

// Store defines the persistence operations the pipeline needs.
type Store interface {
	// Open initializes the store at the given path.
	Open(path string) error

	// Close releases store resources.
	Close() error

	// SaveRun appends a run record. Records are immutable once saved.
	SaveRun(ctx context.Context, record *types.RunRecord) error

	// GetRun retrieves a run record by id.
	GetRun(ctx context.Context, id string) (*types.RunRecord, error)

	// ListRuns lists run records, newest first. An empty bundleID lists
	// every bundle.
	ListRuns(ctx context.Context, bundleID string) ([]types.RunRecord, error)

	// NextBuildNumber increments and returns the build counter for the
	// bundle. The counter is strictly monotonic per bundle id.
	NextBuildNumber(ctx context.Context, bundleID string) (int64, error)
}

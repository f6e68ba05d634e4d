package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/types"
)

// storeUnderTest runs the same suite against both implementations.
func storeUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	badgerStore := NewBadgerStore(log.NewTestLogger())
	require.NoError(t, badgerStore.Open(t.TempDir()))
	t.Cleanup(func() { _ = badgerStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"badger": badgerStore,
	}
}

func sampleRun(id, bundleID string, start time.Time) *types.RunRecord {
	return &types.RunRecord{
		ID:          id,
		BundleID:    bundleID,
		Trigger:     types.TriggerPush,
		Environment: types.EnvHosted,
		Stages:      []types.StageName{types.StageDeploy},
		StepTrace:   types.DeployStepOrder,
		Outcome:     types.OutcomePassed,
		StartedAt:   start,
		FinishedAt:  start.Add(4 * time.Minute),
	}
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			run := sampleRun("run-1", "com.acme.app", time.Now().UTC().Truncate(time.Second))
			require.NoError(t, s.SaveRun(ctx, run))

			got, err := s.GetRun(ctx, "run-1")
			require.NoError(t, err)
			assert.Equal(t, run.BundleID, got.BundleID)
			assert.Equal(t, run.StepTrace, got.StepTrace)
			assert.Equal(t, types.OutcomePassed, got.Outcome)

			// Records are immutable: same id again fails.
			assert.Error(t, s.SaveRun(ctx, run))

			_, err = s.GetRun(ctx, "run-404")
			assert.ErrorIs(t, err, ErrRunNotFound)
		})
	}
}

func TestListRunsNewestFirstAndFiltered(t *testing.T) {
	ctx := context.Background()
	base := time.Now().UTC()
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveRun(ctx, sampleRun("a", "com.acme.app", base.Add(-2*time.Hour))))
			require.NoError(t, s.SaveRun(ctx, sampleRun("b", "com.acme.app", base.Add(-1*time.Hour))))
			require.NoError(t, s.SaveRun(ctx, sampleRun("c", "com.other.app", base)))

			all, err := s.ListRuns(ctx, "")
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "c", all[0].ID)
			assert.Equal(t, "b", all[1].ID)
			assert.Equal(t, "a", all[2].ID)

			acme, err := s.ListRuns(ctx, "com.acme.app")
			require.NoError(t, err)
			require.Len(t, acme, 2)
			assert.Equal(t, "b", acme[0].ID)
		})
	}
}

func TestNextBuildNumberMonotonicPerBundle(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			for want := int64(1); want <= 3; want++ {
				got, err := s.NextBuildNumber(ctx, "com.acme.app")
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}

			// Counters are independent per bundle id.
			got, err := s.NextBuildNumber(ctx, "com.other.app")
			require.NoError(t, err)
			assert.Equal(t, int64(1), got)
		})
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	ctx := context.Background()
	for name, s := range storeUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			err := s.SaveRun(ctx, &types.RunRecord{BundleID: "com.acme.app"})
			assert.Error(t, err)
		})
	}
}

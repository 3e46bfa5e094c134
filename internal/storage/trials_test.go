package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"histobot/internal/infra/database"
	"histobot/internal/infra/migrations"
	"histobot/internal/stories/trials"
)

func newTestStorage(t *testing.T) *storageImpl {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000"
	db, err := database.New(context.Background(), database.WithDSN(dsn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Run(db.DB.DB, db.Driver()))

	return New(db.DB, db.Placeholder())
}

func TestGetTrialMissing(t *testing.T) {
	s := newTestStorage(t)

	trial, err := s.GetTrial(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, trial)
}

func TestCreateTrialIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created, err := s.CreateTrialIfAbsent(ctx, trials.New(42, start))
	require.NoError(t, err)
	assert.True(t, created)

	trial, err := s.GetTrial(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, trial)
	assert.Equal(t, int64(42), trial.UserID)
	assert.True(t, trial.Start.Equal(start), "start = %s", trial.Start)
	assert.True(t, trial.Expiry.Equal(start.Add(24*time.Hour)), "expiry = %s", trial.Expiry)
	assert.True(t, trial.Used)
	assert.False(t, trial.CreatedAt.IsZero())
}

func TestCreateTrialIfAbsentKeepsFirstRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	first := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created, err := s.CreateTrialIfAbsent(ctx, trials.New(7, first))
	require.NoError(t, err)
	require.True(t, created)

	created, err = s.CreateTrialIfAbsent(ctx, trials.New(7, first.Add(48*time.Hour)))
	require.NoError(t, err)
	assert.False(t, created)

	trial, err := s.GetTrial(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, trial)
	assert.True(t, trial.Start.Equal(first), "start = %s", trial.Start)
}

func TestCreateTrialIfAbsentConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	const attempts = 8
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := s.CreateTrialIfAbsent(ctx, trials.New(99, start.Add(time.Duration(i)*time.Minute)))
			assert.NoError(t, err)
			if created {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)

	var count int
	require.NoError(t, s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM trial_users WHERE user_id = 99"))
	assert.Equal(t, 1, count)
}

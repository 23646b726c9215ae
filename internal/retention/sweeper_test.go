package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/config"
)

type fakeDeleter struct {
	cutoffs []time.Time
	n       int
	err     error
}

func (f *fakeDeleter) DeleteReportsBefore(_ context.Context, cutoff time.Time) (int, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.n, f.err
}

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestSweeper(t *testing.T, d Deleter, cfg config.RetentionConfig) *Sweeper {
	t.Helper()
	s, err := NewSweeper(d, cfg)
	require.NoError(t, err)
	s.now = func() time.Time { return now }
	return s
}

func TestSweeper_Sweep(t *testing.T) {
	d := &fakeDeleter{n: 3}
	s := newTestSweeper(t, d, config.RetentionConfig{MaxAgeDays: 30})

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, d.cutoffs, 1)
	assert.Equal(t, now.Add(-30*24*time.Hour), d.cutoffs[0])
}

func TestSweeper_Disabled(t *testing.T) {
	d := &fakeDeleter{n: 3}
	s := newTestSweeper(t, d, config.RetentionConfig{})

	assert.False(t, s.Enabled())
	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, d.cutoffs)
	assert.NoError(t, s.Start(context.Background()))
}

func TestSweeper_SweepError(t *testing.T) {
	d := &fakeDeleter{err: errors.New("locked")}
	s := newTestSweeper(t, d, config.RetentionConfig{MaxAgeDays: 1})

	_, err := s.Sweep(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention: delete expired reports")
}

func TestNewSweeper_NegativeAge(t *testing.T) {
	_, err := NewSweeper(&fakeDeleter{}, config.RetentionConfig{MaxAgeDays: -1})
	assert.Error(t, err)
}

func TestSweeper_StartInvalidSchedule(t *testing.T) {
	s := newTestSweeper(t, &fakeDeleter{}, config.RetentionConfig{MaxAgeDays: 1, Schedule: "every tuesday"})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
}

func TestSweeper_StartAndStop(t *testing.T) {
	s := newTestSweeper(t, &fakeDeleter{}, config.RetentionConfig{MaxAgeDays: 1, Schedule: "@hourly"})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	assert.Len(t, s.cron.Entries(), 1)
	cancel()
}

package monitoring

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/model"
)

func newTestCollector(fs *fakeStore) *Collector {
	c := NewCollector(fs)
	c.now = func() time.Time { return now }
	return c
}

func TestCollector_Collect(t *testing.T) {
	fs := &fakeStore{reports: []model.StoredReport{
		storedReport(1, "u1", "Moderate", "GAPD", 50, now.Add(-1*time.Hour)),
		storedReport(2, "u2", "Aggressive", "BIND", 80, now.Add(-2*time.Hour)),
		storedReport(3, "u1", "Moderate", "GAPD", 56, now.Add(-3*time.Hour)),
		storedReport(4, "u3", "Conservative", "GAPC", 20, now.Add(-48*time.Hour)),
	}}

	snap, err := newTestCollector(fs).Collect(context.Background(), 24)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.Users)
	assert.Equal(t, map[string]int{"Moderate": 2, "Aggressive": 1}, snap.ByLabel)
	assert.Equal(t, map[string]int{"GAPD": 2, "BIND": 1}, snap.ByType)
	assert.InDelta(t, 62.0, snap.AvgRiskScore, 0.001)
	assert.Equal(t, 24, snap.LookbackHours)
	assert.Equal(t, now, snap.CollectedAt)
}

func TestCollector_Collect_AllTime(t *testing.T) {
	fs := &fakeStore{reports: []model.StoredReport{
		storedReport(1, "u1", "Moderate", "GAPD", 50, now.Add(-1*time.Hour)),
		storedReport(2, "u2", "Conservative", "GAPC", 20, now.Add(-500*time.Hour)),
	}}

	snap, err := newTestCollector(fs).Collect(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Total)
}

func TestCollector_Collect_Pages(t *testing.T) {
	fs := &fakeStore{}
	for i := range collectPageSize + 10 {
		fs.reports = append(fs.reports, storedReport(i, fmt.Sprintf("u%d", i%7), "Moderate", "GAPD", 50, now.Add(-time.Minute)))
	}

	snap, err := newTestCollector(fs).Collect(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, collectPageSize+10, snap.Total)
	assert.Equal(t, 7, snap.Users)
	assert.Equal(t, 2, fs.calls)
}

func TestCollector_Collect_Empty(t *testing.T) {
	snap, err := newTestCollector(&fakeStore{}).Collect(context.Background(), 24)
	require.NoError(t, err)
	assert.Zero(t, snap.Total)
	assert.Zero(t, snap.AvgRiskScore)
	label, share := snap.TopLabel()
	assert.Empty(t, label)
	assert.Zero(t, share)
}

func TestCollector_Collect_Error(t *testing.T) {
	fs := &fakeStore{listErr: fmt.Errorf("db down")}

	_, err := newTestCollector(fs).Collect(context.Background(), 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitoring: list reports")
}

func TestSnapshot_TopLabel(t *testing.T) {
	snap := &Snapshot{Total: 4, ByLabel: map[string]int{"Moderate": 2, "Aggressive": 2}}
	label, share := snap.TopLabel()
	assert.Equal(t, "Aggressive", label)
	assert.InDelta(t, 0.5, share, 0.001)
}

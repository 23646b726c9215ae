package monitoring

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/investor-profile/internal/store"
)

const collectPageSize = 500

// Snapshot summarises the reports generated within a lookback window.
type Snapshot struct {
	Total        int            `json:"total"`
	Users        int            `json:"users"`
	ByLabel      map[string]int `json:"by_label"`
	ByType       map[string]int `json:"by_type"`
	AvgRiskScore float64        `json:"avg_risk_score"`

	LookbackHours int       `json:"lookback_hours"`
	CollectedAt   time.Time `json:"collected_at"`
}

// TopLabel returns the most frequent risk label and its share of Total.
// Ties resolve to the alphabetically first label.
func (s *Snapshot) TopLabel() (string, float64) {
	if s.Total == 0 {
		return "", 0
	}
	var top string
	var count int
	for label, n := range s.ByLabel {
		if n > count || (n == count && label < top) {
			top, count = label, n
		}
	}
	return top, float64(count) / float64(s.Total)
}

// Collector gathers report statistics from the store.
type Collector struct {
	store store.Store
	now   func() time.Time
}

// NewCollector creates a new metrics collector.
func NewCollector(st store.Store) *Collector {
	return &Collector{store: st, now: time.Now}
}

// Collect gathers a snapshot over the given lookback window. A window of
// zero or less covers every stored report.
func (c *Collector) Collect(ctx context.Context, lookbackHours int) (*Snapshot, error) {
	now := c.now().UTC()
	snap := &Snapshot{
		ByLabel:       make(map[string]int),
		ByType:        make(map[string]int),
		LookbackHours: lookbackHours,
		CollectedAt:   now,
	}

	filter := store.ReportFilter{Limit: collectPageSize}
	if lookbackHours > 0 {
		filter.Since = now.Add(-time.Duration(lookbackHours) * time.Hour)
	}

	users := make(map[string]struct{})
	var scoreSum int
	for {
		page, err := c.store.ListReports(ctx, filter)
		if err != nil {
			return nil, eris.Wrap(err, "monitoring: list reports")
		}
		for _, r := range page {
			snap.Total++
			snap.ByLabel[r.Report.RiskProfile.Label]++
			snap.ByType[r.Report.InvestorType.Code]++
			scoreSum += r.Report.RiskProfile.Score
			users[r.UserID] = struct{}{}
		}
		if len(page) < collectPageSize {
			break
		}
		filter.Offset += len(page)
	}

	snap.Users = len(users)
	if snap.Total > 0 {
		snap.AvgRiskScore = float64(scoreSum) / float64(snap.Total)
	}
	return snap, nil
}

package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/store"
)

// fakeStore implements the ListReports part of store.Store over a slice
// ordered newest first.
type fakeStore struct {
	store.Store
	reports []model.StoredReport
	listErr error
	calls   int
}

func (f *fakeStore) ListReports(_ context.Context, filter store.ReportFilter) ([]model.StoredReport, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matched []model.StoredReport
	for _, r := range f.reports {
		if !filter.Since.IsZero() && r.GeneratedAt.Before(filter.Since) {
			continue
		}
		matched = append(matched, r)
	}
	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func storedReport(i int, userID, label, code string, score int, at time.Time) model.StoredReport {
	return model.StoredReport{
		ID:     fmt.Sprintf("r%d", i),
		UserID: userID,
		Report: model.Report{
			RiskProfile:  model.RiskProfile{Score: score, Label: label},
			InvestorType: model.InvestorType{Code: code},
		},
		GeneratedAt: at,
	}
}

// Package store persists generated investor reports.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/investor-profile/internal/model"
)

// ErrNotFound is returned by GetReport when no report has the given id.
var ErrNotFound = eris.New("store: report not found")

const defaultListLimit = 100

// ReportFilter specifies criteria for listing reports. Zero fields match
// everything; results are newest first.
type ReportFilter struct {
	UserID    string    `json:"user_id,omitempty"`
	RiskLabel string    `json:"risk_label,omitempty"`
	Since     time.Time `json:"since,omitempty"`
	Limit     int       `json:"limit,omitempty"`
	Offset    int       `json:"offset,omitempty"`
}

func (f ReportFilter) limit() int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}

// Store defines report persistence.
type Store interface {
	SaveReport(ctx context.Context, r *model.StoredReport) error
	GetReport(ctx context.Context, id string) (*model.StoredReport, error)
	// LatestReport returns nil, nil when the user has no reports.
	LatestReport(ctx context.Context, userID string) (*model.StoredReport, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]model.StoredReport, error)
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Pinger is implemented by stores that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

func validateReport(r *model.StoredReport) error {
	switch {
	case r == nil:
		return eris.New("store: nil report")
	case r.ID == "":
		return eris.New("store: report id is required")
	case r.UserID == "":
		return eris.New("store: user id is required")
	case r.GeneratedAt.IsZero():
		return eris.New("store: generated_at is required")
	}
	return nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/store"
)

// --- Store Mock ---

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveReport(ctx context.Context, r *model.StoredReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockStore) GetReport(ctx context.Context, id string) (*model.StoredReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredReport), args.Error(1)
}

func (m *mockStore) LatestReport(ctx context.Context, userID string) (*model.StoredReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredReport), args.Error(1)
}

func (m *mockStore) ListReports(ctx context.Context, filter store.ReportFilter) ([]model.StoredReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredReport), args.Error(1)
}

func (m *mockStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

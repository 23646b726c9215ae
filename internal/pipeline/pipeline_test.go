package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/monitoring"
	"github.com/sells-group/investor-profile/internal/narrative"
	"github.com/sells-group/investor-profile/internal/scorer"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestPipeline(t *testing.T, st *mockStore) *Pipeline {
	t.Helper()
	renderer, err := narrative.New()
	require.NoError(t, err)

	var ids int
	return New(st, renderer,
		WithMetrics(monitoring.MustNewMetrics(prometheus.NewRegistry())),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			ids++
			return "report-" + strings.Repeat("x", ids)
		}),
	)
}

func sampleResponses() model.ResponseMap {
	return model.ResponseMap{
		catalog.QMarketDropReaction: model.TextAnswer("hold"),
		catalog.QTimeHorizon:        model.NumberAnswer(25),
		catalog.QInvestableAmount:   model.NumberAnswer(500_000),
		catalog.QAssetInterests:     model.ChoicesAnswer("us-stocks", "intl-stocks"),
	}
}

func TestPipeline_Run(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)

	st.On("SaveReport", mock.Anything, mock.MatchedBy(func(r *model.StoredReport) bool {
		return r.UserID == "u1" && r.ID == "report-x"
	})).Return(nil)

	r, err := p.Run(context.Background(), "  u1 ", sampleResponses())
	require.NoError(t, err)

	assert.Equal(t, "report-x", r.ID)
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, fixedNow, r.GeneratedAt)
	assert.Equal(t, scorer.Generate(sampleResponses()), r.Report)
	assert.Equal(t, scorer.Fingerprint(sampleResponses()), r.Fingerprint)
	assert.Equal(t, sampleResponses(), r.Responses)
	assert.NotEmpty(t, r.Narrative)
	st.AssertExpectations(t)
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)
	st.On("SaveReport", mock.Anything, mock.Anything).Return(nil)

	first, err := p.Run(context.Background(), "u1", sampleResponses())
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "u1", sampleResponses())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, first.Narrative, second.Narrative)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestPipeline_Run_DoesNotAliasResponses(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)
	st.On("SaveReport", mock.Anything, mock.Anything).Return(nil)

	responses := sampleResponses()
	r, err := p.Run(context.Background(), "u1", responses)
	require.NoError(t, err)

	responses[catalog.QMarketDropReaction] = model.TextAnswer("sell-all")
	assert.Equal(t, "hold", r.Responses[catalog.QMarketDropReaction].Text)
}

func TestPipeline_Run_InvalidUser(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("u", maxUserIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(mockStore)
			p := newTestPipeline(t, st)

			_, err := p.Run(context.Background(), tt.userID, sampleResponses())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidUser))
			st.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
		})
	}
}

func TestCleanUserID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"alice", "alice", false},
		{" alice\t", "alice", false},
		{"", "", true},
		{"  ", "", true},
		{strings.Repeat("u", maxUserIDLength), strings.Repeat("u", maxUserIDLength), false},
		{strings.Repeat("u", maxUserIDLength+1), "", true},
	}
	for _, tt := range tests {
		got, err := CleanUserID(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrInvalidUser), "%q", tt.in)
			continue
		}
		require.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestPipeline_Run_Cancelled(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, "u1", sampleResponses())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	st.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestPipeline_Run_StoreError(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)
	st.On("SaveReport", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := p.Run(context.Background(), "u1", sampleResponses())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline: save report")
}

func TestPipeline_Run_NoStore(t *testing.T) {
	renderer, err := narrative.New()
	require.NoError(t, err)
	p := New(nil, renderer)

	_, err = p.Run(context.Background(), "u1", sampleResponses())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no store configured")
}

func TestPipeline_Run_NarrativeError(t *testing.T) {
	st := new(mockStore)
	renderer, err := narrative.NewWithTemplate(`{{ .Missing.Field }}`)
	require.NoError(t, err)
	p := New(st, renderer)

	_, err = p.Run(context.Background(), "u1", sampleResponses())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline: render narrative")
	st.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestPipeline_Evaluate_DoesNotPersist(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)

	r, err := p.Evaluate(context.Background(), "anonymous", model.ResponseMap{})
	require.NoError(t, err)
	assert.Equal(t, 65, r.Report.RiskProfile.Score)
	st.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
}

func TestPipeline_Latest(t *testing.T) {
	st := new(mockStore)
	p := newTestPipeline(t, st)
	want := &model.StoredReport{ID: "r1", UserID: "u1"}
	st.On("LatestReport", mock.Anything, "u1").Return(want, nil)
	st.On("LatestReport", mock.Anything, "u2").Return(nil, nil)

	got, err := p.Latest(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = p.Latest(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = p.Latest(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidUser))
}

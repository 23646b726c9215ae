// Package pipeline turns questionnaire responses into persisted reports.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/monitoring"
	"github.com/sells-group/investor-profile/internal/narrative"
	"github.com/sells-group/investor-profile/internal/scorer"
	"github.com/sells-group/investor-profile/internal/store"
)

const maxUserIDLength = 128

// ErrInvalidUser is returned when a user id is empty or too long.
var ErrInvalidUser = eris.New("pipeline: invalid user id")

// Pipeline generates, narrates and stores reports.
type Pipeline struct {
	store     store.Store
	narrative *narrative.Renderer
	metrics   *monitoring.Metrics
	now       func() time.Time
	newID     func() string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics records generations on m.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithClock overrides the clock used to stamp generated_at.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator overrides report id generation.
func WithIDGenerator(f func() string) Option {
	return func(p *Pipeline) { p.newID = f }
}

// New creates a Pipeline. st may be nil when only Evaluate is used.
func New(st store.Store, renderer *narrative.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     st,
		narrative: renderer,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate scores responses and renders the narrative without persisting.
func (p *Pipeline) Evaluate(ctx context.Context, userID string, responses model.ResponseMap) (*model.StoredReport, error) {
	start := time.Now()
	r, err := p.evaluate(ctx, userID, responses)
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveReport(r.Report, time.Since(start))
	return r, nil
}

// Run evaluates responses and stores the resulting report.
func (p *Pipeline) Run(ctx context.Context, userID string, responses model.ResponseMap) (*model.StoredReport, error) {
	if p.store == nil {
		return nil, eris.New("pipeline: no store configured")
	}

	start := time.Now()
	r, err := p.evaluate(ctx, userID, responses)
	if err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("user_id", r.UserID), zap.String("report_id", r.ID))
	if err := p.store.SaveReport(ctx, r); err != nil {
		p.metrics.ObserveFailure("store", time.Since(start))
		log.Error("pipeline: save report failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: save report")
	}

	elapsed := time.Since(start)
	p.metrics.ObserveReport(r.Report, elapsed)
	log.Info("pipeline: report generated",
		zap.Int("risk_score", r.Report.RiskProfile.Score),
		zap.String("risk_label", r.Report.RiskProfile.Label),
		zap.String("type_code", r.Report.InvestorType.Code),
		zap.Duration("elapsed", elapsed),
	)
	return r, nil
}

// Latest returns the user's most recent report, or nil when there is none.
func (p *Pipeline) Latest(ctx context.Context, userID string) (*model.StoredReport, error) {
	if p.store == nil {
		return nil, eris.New("pipeline: no store configured")
	}
	userID, err := CleanUserID(userID)
	if err != nil {
		return nil, err
	}
	r, err := p.store.LatestReport(ctx, userID)
	return r, eris.Wrapf(err, "pipeline: latest report for %s", userID)
}

func (p *Pipeline) evaluate(ctx context.Context, userID string, responses model.ResponseMap) (*model.StoredReport, error) {
	start := time.Now()
	userID, err := CleanUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: before generate")
	}

	report := scorer.Generate(responses)
	if err := scorer.ValidateInputs(report.RiskProfile.Score, report.InvestableAmount); err != nil {
		p.metrics.ObserveFailure("validate", time.Since(start))
		return nil, eris.Wrap(err, "pipeline: generate")
	}

	text, err := p.narrative.Render(report)
	if err != nil {
		p.metrics.ObserveFailure("narrative", time.Since(start))
		return nil, eris.Wrap(err, "pipeline: render narrative")
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: after generate")
	}

	return &model.StoredReport{
		ID:          p.newID(),
		UserID:      userID,
		Responses:   responses.Clone(),
		Report:      report,
		Narrative:   text,
		Fingerprint: scorer.Fingerprint(responses),
		GeneratedAt: p.now().UTC(),
	}, nil
}

// CleanUserID trims id and rejects it when empty or longer than
// maxUserIDLength. The error wraps ErrInvalidUser.
func CleanUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", eris.Wrap(ErrInvalidUser, "user id is required")
	}
	if len(id) > maxUserIDLength {
		return "", eris.Wrapf(ErrInvalidUser, "user id exceeds %d characters", maxUserIDLength)
	}
	return id, nil
}

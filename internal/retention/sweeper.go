// Package retention deletes stored reports older than the configured age.
package retention

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/config"
)

const day = 24 * time.Hour

// Deleter is the store capability the sweeper needs.
type Deleter interface {
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Sweeper periodically deletes expired reports.
type Sweeper struct {
	store    Deleter
	maxAge   time.Duration
	schedule string
	cron     *cron.Cron
	now      func() time.Time
}

// NewSweeper creates a Sweeper. A MaxAgeDays of 0 yields a disabled sweeper.
func NewSweeper(st Deleter, cfg config.RetentionConfig) (*Sweeper, error) {
	if cfg.MaxAgeDays < 0 {
		return nil, eris.Errorf("retention: max_age_days must be >= 0, got %d", cfg.MaxAgeDays)
	}
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = "@daily"
	}
	return &Sweeper{
		store:    st,
		maxAge:   time.Duration(cfg.MaxAgeDays) * day,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		now:      time.Now,
	}, nil
}

// Enabled reports whether reports expire at all.
func (s *Sweeper) Enabled() bool {
	return s.maxAge > 0
}

// Cutoff returns the generated_at time before which reports are deleted.
func (s *Sweeper) Cutoff() time.Time {
	return s.now().UTC().Add(-s.maxAge)
}

// Sweep deletes expired reports once and returns how many were removed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, nil
	}
	cutoff := s.Cutoff()
	n, err := s.store.DeleteReportsBefore(ctx, cutoff)
	if err != nil {
		return 0, eris.Wrap(err, "retention: delete expired reports")
	}
	zap.L().Info("retention: swept expired reports",
		zap.Int("deleted", n),
		zap.Time("cutoff", cutoff),
	)
	return n, nil
}

// Start schedules Sweep and runs it until ctx is cancelled. It is a no-op
// for a disabled sweeper.
func (s *Sweeper) Start(ctx context.Context) error {
	if !s.Enabled() {
		zap.L().Info("retention: disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			zap.L().Error("retention: sweep failed", zap.Error(err))
		}
	}); err != nil {
		return eris.Wrapf(err, "retention: invalid schedule %q", s.schedule)
	}

	s.cron.Start()
	zap.L().Info("retention: sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("max_age", s.maxAge),
	)

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
		zap.L().Info("retention: sweeper stopped")
	}()
	return nil
}

package monitoring

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/config"
)

const defaultCheckInterval = 5 * time.Minute

// Checker periodically summarises recent reports, publishes the summary as
// gauges and sends alerts. An alert type is sent once when it starts firing
// and again only after a cycle in which it cleared. A failed delivery is
// retried on the next cycle.
type Checker struct {
	collector *Collector
	alerter   *Alerter
	metrics   *Metrics
	cfg       config.MonitoringConfig

	firing map[AlertType]bool
}

// NewChecker creates a background alert checker. metrics may be nil.
func NewChecker(collector *Collector, alerter *Alerter, metrics *Metrics, cfg config.MonitoringConfig) *Checker {
	return &Checker{
		collector: collector,
		alerter:   alerter,
		metrics:   metrics,
		cfg:       cfg,
		firing:    make(map[AlertType]bool),
	}
}

// Run checks once immediately and then on every interval until ctx is done.
func (c *Checker) Run(ctx context.Context) {
	interval := time.Duration(c.cfg.CheckIntervalSecs) * time.Second
	if interval <= 0 {
		interval = defaultCheckInterval
	}

	log := zap.L().With(zap.String("component", "monitoring.checker"))
	log.Info("starting report monitor",
		zap.Duration("interval", interval),
		zap.Int("lookback_hours", c.cfg.LookbackWindowHours),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.check(ctx, log)
	for {
		select {
		case <-ctx.Done():
			log.Info("report monitor stopped")
			return
		case <-ticker.C:
			c.check(ctx, log)
		}
	}
}

// check runs one cycle and returns the alerts that started firing in it.
func (c *Checker) check(ctx context.Context, log *zap.Logger) []Alert {
	snap, err := c.collector.Collect(ctx, c.cfg.LookbackWindowHours)
	if err != nil {
		log.Error("monitoring: collect snapshot failed", zap.Error(err))
		return nil
	}
	c.metrics.ObserveSnapshot(snap)

	current := c.alerter.Evaluate(snap)
	next := make(map[AlertType]bool, len(current))
	var raised []Alert
	for _, a := range current {
		next[a.Type] = true
		if !c.firing[a.Type] {
			raised = append(raised, a)
		}
	}
	for t := range c.firing {
		if !next[t] {
			log.Info("monitoring: alert cleared", zap.String("type", string(t)))
		}
	}

	if len(raised) == 0 {
		c.firing = next
		log.Debug("monitoring: no new alerts",
			zap.Int("reports", snap.Total),
			zap.Int("firing", len(current)),
		)
		return nil
	}

	// Undelivered alerts stay unmarked so the next cycle raises them again.
	failed := c.alerter.SendAlerts(ctx, raised)
	for _, a := range failed {
		delete(next, a.Type)
	}
	c.firing = next

	log.Info("monitoring: alerts raised",
		zap.Int("raised", len(raised)),
		zap.Int("failed", len(failed)),
	)
	return raised
}

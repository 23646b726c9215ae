package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/config"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertNoActivity         AlertType = "no_activity"
	AlertLabelConcentration AlertType = "label_concentration"
)

// minReportsForShare is the sample size below which label concentration
// is not evaluated.
const minReportsForShare = 20

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a Snapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *Snapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	if a.cfg.MinReports > 0 && snap.Total < a.cfg.MinReports {
		alerts = append(alerts, Alert{
			Type:     AlertNoActivity,
			Severity: "medium",
			Message: fmt.Sprintf(
				"%d report(s) generated in last %dh, expected at least %d",
				snap.Total, snap.LookbackHours, a.cfg.MinReports,
			),
			Details: map[string]any{
				"total":       snap.Total,
				"min_reports": a.cfg.MinReports,
			},
			Timestamp: now,
		})
	}

	// A single dominant label usually means answers are not reaching the
	// engine and defaults are being scored.
	if a.cfg.LabelShareThreshold > 0 && snap.Total >= minReportsForShare {
		label, share := snap.TopLabel()
		if share > a.cfg.LabelShareThreshold {
			alerts = append(alerts, Alert{
				Type:     AlertLabelConcentration,
				Severity: "high",
				Message: fmt.Sprintf(
					"%.1f%% of reports in last %dh are %q, threshold %.1f%%",
					share*100, snap.LookbackHours, label, a.cfg.LabelShareThreshold*100,
				),
				Details: map[string]any{
					"label":     label,
					"share":     share,
					"threshold": a.cfg.LabelShareThreshold,
					"total":     snap.Total,
				},
				Timestamp: now,
			})
		}
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL and returns the
// alerts whose delivery failed. Without a webhook URL nothing is sent and
// nothing fails.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) []Alert {
	if a.cfg.WebhookURL == "" {
		return nil
	}

	var failed []Alert
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			failed = append(failed, alert)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
	}
	return failed
}

func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}

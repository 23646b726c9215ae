package scorer

import (
	"math"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

// Risk score bounds.
const (
	MinRiskScore  = 10
	MaxRiskScore  = 90
	baseRiskScore = 50
)

// ComputeRiskScore folds the five risk signals onto a base of 50 and clamps
// the result to [10,90]. Missing signals contribute nothing.
func ComputeRiskScore(responses model.ResponseMap) int {
	total := float64(baseRiskScore)

	if v, ok := responses.Text(catalog.QMarketDropReaction); ok {
		total += float64(catalog.OptionScore(catalog.QMarketDropReaction, v))
	}
	if years, ok := finiteNumber(responses, catalog.QTimeHorizon); ok {
		total += float64(scoreTimeHorizon(years))
	}
	if v, ok := responses.Text(catalog.QDownturnExperience); ok {
		total += float64(catalog.OptionScore(catalog.QDownturnExperience, v))
	}
	if tol, ok := finiteNumber(responses, catalog.QRiskTolerance); ok {
		total += (tol - 20) / 2
	}
	if months, ok := finiteNumber(responses, catalog.QEmergencyFund); ok {
		total += float64(scoreEmergencyFund(months))
	}

	return clampInt(int(math.Round(total)), MinRiskScore, MaxRiskScore)
}

// scoreTimeHorizon returns the additive term for the investment horizon in years.
func scoreTimeHorizon(years float64) int {
	switch {
	case years >= 20:
		return 15
	case years >= 10:
		return 10
	case years >= 5:
		return 0
	case years >= 3:
		return -10
	default:
		return -20
	}
}

// scoreEmergencyFund returns the additive term for months of emergency cover.
func scoreEmergencyFund(months float64) int {
	switch {
	case months >= 12:
		return 10
	case months >= 6:
		return 5
	case months < 3:
		return -15
	default:
		return 0
	}
}

// riskBands maps score ceilings to labels, checked in order.
var riskBands = []struct {
	below       int
	label       string
	description string
}{
	{25, "Conservative", "You prioritise protecting capital over growth and prefer a steady, low-volatility portfolio."},
	{40, "Moderately Conservative", "You accept modest fluctuations for some growth, but stability remains the priority."},
	{60, "Moderate", "You balance growth and stability and can ride out ordinary market swings."},
	{75, "Moderately Aggressive", "You favour growth and can tolerate meaningful drawdowns along the way."},
}

var aggressiveBand = struct{ label, description string }{
	"Aggressive", "You seek maximum long-term growth and are comfortable with large, sustained swings in value.",
}

// RiskProfileFor labels a risk score.
func RiskProfileFor(score int) model.RiskProfile {
	for _, b := range riskBands {
		if score < b.below {
			return model.RiskProfile{Score: score, Label: b.label, Description: b.description}
		}
	}
	return model.RiskProfile{Score: score, Label: aggressiveBand.label, Description: aggressiveBand.description}
}

// RiskLabels returns every risk label from lowest to highest.
func RiskLabels() []string {
	out := make([]string, 0, len(riskBands)+1)
	for _, b := range riskBands {
		out = append(out, b.label)
	}
	return append(out, aggressiveBand.label)
}

func finiteNumber(responses model.ResponseMap, id string) (float64, bool) {
	v, ok := responses.Number(id)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package scorer turns questionnaire responses into a risk score, an
// investor type and an allocation report. Every function is pure: no I/O,
// no clock and no shared state.
package scorer

import (
	"math"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

// Generate runs the full engine: normalize, score risk, classify, then build
// the allocation, recommendations, action plan and key metrics.
func Generate(responses model.ResponseMap) model.Report {
	normalized := Normalize(responses)

	risk := ComputeRiskScore(normalized)
	dims := ComputeDimensions(normalized)
	_, investorType := Classify(dims)

	style := StyleFor(numberOr(normalized, catalog.QInvolvement, 50))
	amount := sanitizeAmount(numberOr(normalized, catalog.QInvestableAmount, DefaultInvestableAmount))
	interests := Interests(normalized)
	horizon := horizonYears(normalized)

	return model.Report{
		RiskProfile:      RiskProfileFor(risk),
		Dimensions:       dims,
		InvestorType:     investorType,
		Style:            style,
		InvestableAmount: amount,
		Interests:        interests,
		Allocation:       BuildAllocation(risk, interests, style, amount),
		Recommendations:  BuildRecommendations(risk, interests, style, amount),
		ActionPlan:       BuildActionPlan(risk, normalized),
		KeyMetrics:       ComputeKeyMetrics(risk, horizon),
	}
}

// horizonYears rounds the horizon answer after capping it at the slider
// maximum, so oversized values cannot overflow the conversion.
func horizonYears(responses model.ResponseMap) int {
	years := numberOr(responses, catalog.QTimeHorizon, 10)
	if q, ok := catalog.Lookup(catalog.QTimeHorizon); ok {
		if s, ok := q.(model.SliderQuestion); ok {
			years = math.Min(years, s.Max)
		}
	}
	return int(math.Round(years))
}

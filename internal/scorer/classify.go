package scorer

import (
	"strings"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

const dimensionStart = 50

// ComputeDimensions applies the deltas of every answered scenario question
// to the four personality axes, starting from 50, then clamps each to [0,100].
// Unanswered scenarios and tags other than A or B are ignored.
func ComputeDimensions(responses model.ResponseMap) model.InvestorDimensions {
	totals := map[model.Dimension]int{
		model.DimensionRisk:     dimensionStart,
		model.DimensionDecision: dimensionStart,
		model.DimensionTime:     dimensionStart,
		model.DimensionFocus:    dimensionStart,
	}

	for _, q := range catalog.Scenarios() {
		tag, ok := responses.Text(q.ID)
		if !ok {
			continue
		}
		choice, ok := q.Choice(strings.TrimSpace(tag))
		if !ok {
			continue
		}
		for dim, delta := range choice.Deltas {
			totals[dim] += delta
		}
	}

	return model.InvestorDimensions{
		Risk:     clampInt(totals[model.DimensionRisk], 0, 100),
		Decision: clampInt(totals[model.DimensionDecision], 0, 100),
		Time:     clampInt(totals[model.DimensionTime], 0, 100),
		Focus:    clampInt(totals[model.DimensionFocus], 0, 100),
	}
}

// Classify maps clamped dimensions to a type code and its profile.
func Classify(d model.InvestorDimensions) (string, model.InvestorType) {
	it := catalog.InvestorType(catalog.TypeCode(d))
	return it.Code, it
}

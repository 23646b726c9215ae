package scorer

import (
	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

const (
	emergencyTargetMonths = 6
	trancheAmount         = 100_000
)

// Action plan step titles.
const (
	StepEmergencyFund = "Build your emergency fund"
	StepOpenAccounts  = "Open your investment accounts"
	StepCoreHoldings  = "Establish core holdings"
	StepAutomate      = "Automate contributions"
	StepSatellite     = "Add satellite positions"
	StepReview        = "Schedule a quarterly review"
)

// BuildActionPlan returns the ordered action plan. When fewer than six
// months of emergency cover were reported, an emergency-fund step is
// placed first and every later step moves down one priority.
func BuildActionPlan(riskScore int, responses model.ResponseMap) []model.ActionPlanStep {
	r := sanitizeRisk(riskScore)
	months := numberOr(responses, catalog.QEmergencyFund, emergencyTargetMonths)
	amount := sanitizeAmount(numberOr(responses, catalog.QInvestableAmount, DefaultInvestableAmount))

	var steps []model.ActionPlanStep
	if months < emergencyTargetMonths {
		steps = append(steps, model.ActionPlanStep{
			Title:       StepEmergencyFund,
			Description: "Set aside three to six months of essential expenses in a high-yield savings account before investing.",
			Timeframe:   "Next 3-6 months",
		})
	}

	core := "Buy the baseline index funds in line with your target allocation."
	if amount > trancheAmount {
		core = "Deploy your capital into the baseline index funds in three to four tranches over the next few months to reduce timing risk."
	}

	steps = append(steps,
		model.ActionPlanStep{
			Title:       StepOpenAccounts,
			Description: "Open or consolidate a tax-advantaged retirement account and a taxable brokerage account with a low-cost provider.",
			Timeframe:   "Week 1",
		},
		model.ActionPlanStep{
			Title:       StepCoreHoldings,
			Description: core,
			Timeframe:   "Weeks 2-4",
		},
		model.ActionPlanStep{
			Title:       StepAutomate,
			Description: "Set up automatic monthly contributions so the plan keeps running without decisions.",
			Timeframe:   "Month 1",
		},
		model.ActionPlanStep{
			Title:       StepSatellite,
			Description: satelliteDescription(r),
			Timeframe:   "Months 2-3",
		},
		model.ActionPlanStep{
			Title:       StepReview,
			Description: "Review the portfolio each quarter and rebalance when any category drifts more than five points from target.",
			Timeframe:   "Ongoing",
		},
	)

	for i := range steps {
		steps[i].Priority = i + 1
	}
	return steps
}

func satelliteDescription(r int) string {
	switch {
	case r < 40:
		return "Keep satellite positions small; favour bond and dividend funds over individual picks."
	case r < 60:
		return "Add a few satellite positions in areas you follow, capped at a tenth of the portfolio."
	default:
		return "Use up to a fifth of the portfolio for higher-conviction satellite positions within your interests."
	}
}

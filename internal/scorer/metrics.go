package scorer

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/investor-profile/internal/model"
)

// ComputeKeyMetrics returns the closed-form portfolio estimates for a risk
// score, rounded to two decimals.
func ComputeKeyMetrics(riskScore int, horizonYears int) model.KeyMetrics {
	r := decimal.NewFromInt(int64(sanitizeRisk(riskScore)))
	linear := func(base, slope string) float64 {
		v, _ := decimal.RequireFromString(base).Add(r.Mul(decimal.RequireFromString(slope))).Round(2).Float64()
		return v
	}
	return model.KeyMetrics{
		ExpectedReturn: linear("3", "0.07"),
		Volatility:     linear("4", "0.18"),
		MaxDrawdown:    -linear("8", "0.35"),
		SharpeRatio:    linear("0.3", "0.008"),
		TimeHorizon:    max(horizonYears, 0),
	}
}

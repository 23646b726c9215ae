package scorer

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// ValidateInputs checks builder inputs supplied by a caller that bypasses
// ComputeRiskScore. The builders never fail; they substitute defaults for
// the values rejected here.
func ValidateInputs(riskScore int, amount float64) error {
	var errs []string

	if riskScore < MinRiskScore || riskScore > MaxRiskScore {
		errs = append(errs, "risk_score must be between 10 and 90")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		errs = append(errs, "investable_amount must be finite")
	} else if amount < 0 {
		errs = append(errs, "investable_amount must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: input validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

package scorer

import (
	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

// Recommendation thresholds.
const (
	individualMinAmount = 100_000
	individualMinRisk   = 40
	reitMinRisk         = 45
	bondMaxRisk         = 50
	bondMinAmount       = 250_000
	cryptoMinRisk       = 50
)

// BuildRecommendations returns the instrument list for a risk score,
// interests and investable amount. The three baseline funds are always
// present; each carries a target allocation only when its category is in
// the allocation. Conditional groups follow in a fixed order.
func BuildRecommendations(riskScore int, interests []string, style model.InvestmentStyle, amount float64) []model.Recommendation {
	r := sanitizeRisk(riskScore)
	amount = sanitizeAmount(amount)

	targets := map[string]int{"BND": fixedIncomePct(r)}
	if includesUSEquities(interests) {
		targets["VTI"] = usEquityPct(r)
	}
	if includesIntlEquities(interests) {
		targets["VXUS"] = intlEquityPct(r)
	}

	recs := make([]model.Recommendation, 0, 8)
	for _, sym := range catalog.BaselineInstruments {
		rec := instrument(sym)
		if t, ok := targets[sym]; ok {
			rec.TargetAllocation = &t
		}
		recs = append(recs, rec)
	}

	if amount >= individualMinAmount && r > individualMinRisk {
		recs = appendGroup(recs, catalog.IndividualInstruments)
	}
	if hasInterest(interests, catalog.InterestRealEstate) || r > reitMinRisk {
		recs = appendGroup(recs, catalog.REITInstruments)
	}
	if r < bondMaxRisk || amount >= bondMinAmount {
		recs = appendGroup(recs, catalog.BondInstruments)
	}
	if hasInterest(interests, catalog.InterestAlternatives, catalog.InterestCommodities) {
		recs = appendGroup(recs, catalog.CommodityInstruments)
	}
	if hasInterest(interests, catalog.InterestCrypto) && r > cryptoMinRisk {
		recs = appendGroup(recs, catalog.CryptoInstruments)
	}
	return recs
}

func appendGroup(recs []model.Recommendation, symbols []string) []model.Recommendation {
	for _, sym := range symbols {
		recs = append(recs, instrument(sym))
	}
	return recs
}

func instrument(symbol string) model.Recommendation {
	in, ok := catalog.LookupInstrument(symbol)
	if !ok {
		return model.Recommendation{Symbol: symbol}
	}
	return in.Recommendation()
}

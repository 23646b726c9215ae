package scorer

import (
	"math"
	"slices"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

// DefaultInvestableAmount substitutes for missing or unusable amounts.
const DefaultInvestableAmount = 50_000

// Allocation category names.
const (
	CategoryUSEquities    = "US Equities"
	CategoryIntlEquities  = "International Equities"
	CategoryFixedIncome   = "Fixed Income"
	CategoryRealEstate    = "Real Estate"
	CategoryAlternatives  = "Alternatives"
	CategoryDigitalAssets = "Digital Assets"
	CategoryCash          = "Cash"
)

var categoryColors = map[string]string{
	CategoryUSEquities:    "#2563eb",
	CategoryIntlEquities:  "#7c3aed",
	CategoryFixedIncome:   "#059669",
	CategoryRealEstate:    "#d97706",
	CategoryAlternatives:  "#db2777",
	CategoryDigitalAssets: "#0891b2",
	CategoryCash:          "#64748b",
}

var subcategories = map[string][]model.Subcategory{
	CategoryUSEquities: {
		{Name: "Large-Cap Growth", Percentage: 35},
		{Name: "Large-Cap Value", Percentage: 30},
		{Name: "Mid-Cap", Percentage: 20},
		{Name: "Small-Cap", Percentage: 15},
	},
	CategoryIntlEquities: {
		{Name: "Developed Markets", Percentage: 60},
		{Name: "Emerging Markets", Percentage: 40},
	},
	CategoryFixedIncome: {
		{Name: "Treasuries", Percentage: 40},
		{Name: "Investment-Grade Corporate", Percentage: 35},
		{Name: "TIPS", Percentage: 15},
		{Name: "Municipal", Percentage: 10},
	},
	CategoryRealEstate: {
		{Name: "Equity REITs", Percentage: 60},
		{Name: "Global Real Estate", Percentage: 25},
		{Name: "Mortgage REITs", Percentage: 15},
	},
	CategoryAlternatives: {
		{Name: "Commodities", Percentage: 50},
		{Name: "Gold", Percentage: 30},
		{Name: "Managed Futures", Percentage: 20},
	},
	CategoryDigitalAssets: {
		{Name: "Bitcoin", Percentage: 70},
		{Name: "Ethereum", Percentage: 30},
	},
}

// The percentage formulas are kept in integer arithmetic so that half-point
// boundaries round the same way on every platform:
//
//	equityBase = 30 + r/2       fixedBase = 50 - 0.4r
//	US         = 0.6 * equityBase   = (360 + 6r) / 20
//	Intl       = 0.25 * equityBase  = (60 + r) / 8
//	Fixed      = (250 - 2r) / 5
//	RealEstate = min(15, 3r / 20)
//	Alts       = min(10, r / 10)
//	Digital    = min(5, r / 20)
//	Cash       = max(2, (250 - 2r) / 25)
func usEquityPct(r int) int     { return roundDiv(360+6*r, 20) }
func intlEquityPct(r int) int   { return roundDiv(60+r, 8) }
func fixedIncomePct(r int) int  { return roundDiv(250-2*r, 5) }
func realEstatePct(r int) int   { return min(15, roundDiv(3*r, 20)) }
func alternativesPct(r int) int { return min(10, roundDiv(r, 10)) }
func digitalPct(r int) int      { return min(5, roundDiv(r, 20)) }
func cashPct(r int) int         { return max(2, roundDiv(250-2*r, 25)) }

// BuildAllocation returns the recommended allocation for a risk score and
// the declared interests. Entries are rounded independently and the total
// is not forced to 100; see AllocationTotal. Style and amount do not change
// the percentages.
func BuildAllocation(riskScore int, interests []string, style model.InvestmentStyle, amount float64) []model.AllocationEntry {
	r := sanitizeRisk(riskScore)
	var entries []model.AllocationEntry

	if includesUSEquities(interests) {
		entries = append(entries, entry(CategoryUSEquities, usEquityPct(r)))
	}
	if includesIntlEquities(interests) {
		entries = append(entries, entry(CategoryIntlEquities, intlEquityPct(r)))
	}
	entries = append(entries, entry(CategoryFixedIncome, fixedIncomePct(r)))
	if hasInterest(interests, catalog.InterestRealEstate) || r > 40 {
		entries = append(entries, entry(CategoryRealEstate, realEstatePct(r)))
	}
	if hasInterest(interests, catalog.InterestAlternatives, catalog.InterestCommodities) || r > 50 {
		entries = append(entries, entry(CategoryAlternatives, alternativesPct(r)))
	}
	if hasInterest(interests, catalog.InterestCrypto) && r > 45 {
		entries = append(entries, entry(CategoryDigitalAssets, digitalPct(r)))
	}
	entries = append(entries, entry(CategoryCash, cashPct(r)))

	return entries
}

// AllocationTotal sums the entry percentages. The result may differ from 100.
func AllocationTotal(entries []model.AllocationEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Percentage
	}
	return total
}

func entry(name string, pct int) model.AllocationEntry {
	return model.AllocationEntry{
		Name:          name,
		Percentage:    pct,
		Color:         categoryColors[name],
		Subcategories: slices.Clone(subcategories[name]),
	}
}

func hasInterest(interests []string, tags ...string) bool {
	for _, tag := range tags {
		if slices.Contains(interests, tag) {
			return true
		}
	}
	return false
}

func includesUSEquities(interests []string) bool {
	return noSpecificInterest(interests) || hasInterest(interests, catalog.InterestUSStocks)
}

func includesIntlEquities(interests []string) bool {
	return noSpecificInterest(interests) || hasInterest(interests, catalog.InterestIntlStocks)
}

// noSpecificInterest is true when nothing was selected or only "none" was.
func noSpecificInterest(interests []string) bool {
	for _, i := range interests {
		if i != catalog.InterestNone {
			return false
		}
	}
	return true
}

// roundDiv returns num/den rounded half away from zero. den must be positive.
func roundDiv(num, den int) int {
	if num >= 0 {
		return (2*num + den) / (2 * den)
	}
	return -((-2*num + den) / (2 * den))
}

func sanitizeRisk(r int) int {
	return clampInt(r, MinRiskScore, MaxRiskScore)
}

func sanitizeAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return DefaultInvestableAmount
	}
	return amount
}

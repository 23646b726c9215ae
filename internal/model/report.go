package model

import "time"

// RiskProfile is the labelled risk score.
type RiskProfile struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// InvestorDimensions holds the four personality axes, each in [0,100].
type InvestorDimensions struct {
	Risk     int `json:"risk"`
	Decision int `json:"decision"`
	Time     int `json:"time"`
	Focus    int `json:"focus"`
}

// InvestorType is a named personality profile from the type catalogue.
type InvestorType struct {
	Code                string         `json:"code"`
	Name                string         `json:"name"`
	Tagline             string         `json:"tagline"`
	Description         string         `json:"description"`
	Strengths           []string       `json:"strengths"`
	Challenges          []string       `json:"challenges"`
	SuggestedAllocation map[string]int `json:"suggested_allocation"`
}

// InvestmentStyle describes how hands-on the investor wants to be.
type InvestmentStyle string

// Investment styles.
const (
	StylePassive  InvestmentStyle = "passive"
	StyleBalanced InvestmentStyle = "balanced"
	StyleActive   InvestmentStyle = "active"
)

// Subcategory is a slice of an allocation entry, as a percentage of the entry.
type Subcategory struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// AllocationEntry is one asset-category row of the recommended allocation.
type AllocationEntry struct {
	Name          string        `json:"name"`
	Percentage    int           `json:"percentage"`
	Color         string        `json:"color"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

// RecommendationType tags the instrument class of a recommendation.
type RecommendationType string

// Recommendation types.
const (
	RecFund      RecommendationType = "fund"
	RecStock     RecommendationType = "stock"
	RecREIT      RecommendationType = "reit"
	RecBond      RecommendationType = "bond"
	RecCommodity RecommendationType = "commodity"
	RecCrypto    RecommendationType = "crypto"
)

// Recommendation is a concrete instrument suggestion.
type Recommendation struct {
	Type             RecommendationType `json:"type"`
	Symbol           string             `json:"symbol"`
	Name             string             `json:"name"`
	Category         string             `json:"category"`
	ExpenseRatio     *float64           `json:"expense_ratio,omitempty"`
	TargetAllocation *int               `json:"target_allocation,omitempty"`
	Rationale        string             `json:"rationale"`
}

// ActionPlanStep is one ordered step of the action plan.
type ActionPlanStep struct {
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"`
}

// KeyMetrics are closed-form portfolio estimates derived from the risk score.
type KeyMetrics struct {
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
	MaxDrawdown    float64 `json:"max_drawdown"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	TimeHorizon    int     `json:"time_horizon"`
}

// Report is the full engine output for one response map.
type Report struct {
	RiskProfile      RiskProfile        `json:"risk_profile"`
	Dimensions       InvestorDimensions `json:"dimensions"`
	InvestorType     InvestorType       `json:"investor_type"`
	Style            InvestmentStyle    `json:"style"`
	InvestableAmount float64            `json:"investable_amount"`
	Interests        []string           `json:"interests"`
	Allocation       []AllocationEntry  `json:"allocation"`
	Recommendations  []Recommendation   `json:"recommendations"`
	ActionPlan       []ActionPlanStep   `json:"action_plan"`
	KeyMetrics       KeyMetrics         `json:"key_metrics"`
}

// StoredReport is a generated report as persisted for a user.
type StoredReport struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Responses   ResponseMap `json:"responses"`
	Report      Report      `json:"report"`
	Narrative   string      `json:"narrative"`
	Fingerprint string      `json:"fingerprint"`
	GeneratedAt time.Time   `json:"generated_at"`
}

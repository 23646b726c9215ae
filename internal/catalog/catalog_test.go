package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/model"
)

func TestQuestions_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range Questions() {
		assert.False(t, seen[q.QuestionID()], "duplicate id %s", q.QuestionID())
		seen[q.QuestionID()] = true
	}
}

func TestQuestions_EverySectionHasAPage(t *testing.T) {
	for _, s := range model.AllSections() {
		assert.NotEmpty(t, model.FilterBySection(Questions(), s), "section %s", s)
	}
}

func TestSliders_Defaults(t *testing.T) {
	want := map[string]float64{
		QTimeHorizon:      10,
		QInvestableAmount: 50_000,
		QRiskTolerance:    20,
		QEmergencyFund:    6,
		QInvolvement:      50,
	}
	got := make(map[string]float64)
	for _, s := range Sliders() {
		got[s.ID] = s.Default
		assert.GreaterOrEqual(t, s.Default, s.Min, s.ID)
		assert.LessOrEqual(t, s.Default, s.Max, s.ID)
	}
	assert.Equal(t, want, got)
}

func TestScenarios_DeltaShape(t *testing.T) {
	scenarios := Scenarios()
	require.Len(t, scenarios, 8)

	for _, s := range scenarios {
		for _, c := range []model.ScenarioChoice{s.A, s.B} {
			assert.GreaterOrEqual(t, len(c.Deltas), 1, s.ID)
			assert.LessOrEqual(t, len(c.Deltas), 2, s.ID)
			for dim, d := range c.Deltas {
				abs := d
				if abs < 0 {
					abs = -abs
				}
				assert.GreaterOrEqual(t, abs, 10, "%s %s %s", s.ID, c.Tag, dim)
				assert.LessOrEqual(t, abs, 25, "%s %s %s", s.ID, c.Tag, dim)
			}
		}
	}
}

func TestOptionScore(t *testing.T) {
	tests := []struct {
		id, value string
		want      int
	}{
		{QMarketDropReaction, "buy-more", 20},
		{QMarketDropReaction, "hold", 10},
		{QMarketDropReaction, "sell-some", -10},
		{QMarketDropReaction, "sell-all", -20},
		{QDownturnExperience, "bought-more", 15},
		{QDownturnExperience, "held", 5},
		{QDownturnExperience, "watched", -5},
		{QDownturnExperience, "never", -10},
		{QMarketDropReaction, "panic", 0},
		{QPrimaryGoal, "income", 0},
		{"missing", "x", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OptionScore(tt.id, tt.value), "%s=%s", tt.id, tt.value)
	}
}

func TestTypeCode(t *testing.T) {
	tests := []struct {
		name string
		dims model.InvestorDimensions
		want string
	}{
		{"all midpoint", model.InvestorDimensions{Risk: 50, Decision: 50, Time: 50, Focus: 50}, "GAPD"},
		{"all high", model.InvestorDimensions{Risk: 100, Decision: 51, Time: 90, Focus: 70}, "BINC"},
		{"mixed", model.InvestorDimensions{Risk: 80, Decision: 20, Time: 10, Focus: 60}, "BAPC"},
		{"all low", model.InvestorDimensions{}, "GAPD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeCode(tt.dims))
		})
	}
}

func TestInvestorType_CatalogueComplete(t *testing.T) {
	codes := TypeCodes()
	require.Len(t, codes, 16)
	for _, code := range codes {
		it := InvestorType(code)
		assert.Equal(t, code, it.Code)
		assert.NotEmpty(t, it.Name, code)
		sum := 0
		for _, pct := range it.SuggestedAllocation {
			sum += pct
		}
		assert.Equal(t, 100, sum, "suggested allocation for %s", code)
	}
}

func TestInvestorType_FallsBackToSteward(t *testing.T) {
	it := InvestorType("ZZZZ")
	assert.Equal(t, "GAPD", it.Code)
	assert.Equal(t, "The Steward", it.Name)
}

func TestInvestorType_ReturnsCopy(t *testing.T) {
	it := InvestorType("GAPD")
	it.Strengths[0] = "mutated"
	it.SuggestedAllocation["stocks"] = 0

	again := InvestorType("GAPD")
	assert.NotEqual(t, "mutated", again.Strengths[0])
	assert.Equal(t, 40, again.SuggestedAllocation["stocks"])
}

func TestInstruments_AllGroupsResolve(t *testing.T) {
	groups := [][]string{
		BaselineInstruments, IndividualInstruments, REITInstruments,
		BondInstruments, CommodityInstruments, CryptoInstruments,
	}
	for _, g := range groups {
		for _, sym := range g {
			in, ok := LookupInstrument(sym)
			require.True(t, ok, sym)
			rec := in.Recommendation()
			assert.Equal(t, sym, rec.Symbol)
			assert.NotEmpty(t, rec.Rationale, sym)
		}
	}
}

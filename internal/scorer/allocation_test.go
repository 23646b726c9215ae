package scorer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/model"
)

func percentages(entries []model.AllocationEntry) map[string]int {
	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[e.Name] = e.Percentage
	}
	return out
}

func names(entries []model.AllocationEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestBuildAllocation_WorkedExample(t *testing.T) {
	entries := BuildAllocation(50, []string{}, model.StylePassive, 50_000)

	got := percentages(entries)
	assert.Equal(t, 33, got[CategoryUSEquities])
	assert.Equal(t, 14, got[CategoryIntlEquities])
	assert.Equal(t, 30, got[CategoryFixedIncome])
	assert.Equal(t, 8, got[CategoryRealEstate])
	assert.Equal(t, 6, got[CategoryCash])
	assert.NotContains(t, got, CategoryAlternatives)
	assert.NotContains(t, got, CategoryDigitalAssets)

	// Entries are rounded independently and not normalized.
	assert.Equal(t, 91, AllocationTotal(entries))
}

func TestBuildAllocation_Gates(t *testing.T) {
	tests := []struct {
		name      string
		risk      int
		interests []string
		want      []string
	}{
		{
			"conservative no interests",
			20, nil,
			[]string{CategoryUSEquities, CategoryIntlEquities, CategoryFixedIncome, CategoryCash},
		},
		{
			"none counts as no specific interest",
			20, []string{"none"},
			[]string{CategoryUSEquities, CategoryIntlEquities, CategoryFixedIncome, CategoryCash},
		},
		{
			"conservative crypto interest gets no digital assets",
			20, []string{"crypto"},
			[]string{CategoryFixedIncome, CategoryCash},
		},
		{
			"real estate interest below threshold",
			20, []string{"real-estate"},
			[]string{CategoryFixedIncome, CategoryRealEstate, CategoryCash},
		},
		{
			"commodities interest",
			30, []string{"commodities", "intl-stocks"},
			[]string{CategoryIntlEquities, CategoryFixedIncome, CategoryAlternatives, CategoryCash},
		},
		{
			"aggressive with crypto",
			90, []string{"us-stocks", "crypto"},
			[]string{CategoryUSEquities, CategoryFixedIncome, CategoryRealEstate, CategoryAlternatives, CategoryDigitalAssets, CategoryCash},
		},
		{
			"crypto at exactly 45 is gated",
			45, []string{"crypto", "us-stocks"},
			[]string{CategoryUSEquities, CategoryFixedIncome, CategoryRealEstate, CategoryCash},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(BuildAllocation(tt.risk, tt.interests, model.StyleBalanced, 50_000)))
		})
	}
}

func TestBuildAllocation_NoDigitalAssetsWhenConservative(t *testing.T) {
	for _, interests := range [][]string{nil, {"us-stocks"}, {"crypto"}} {
		got := percentages(BuildAllocation(20, interests, model.StylePassive, 50_000))
		assert.NotContains(t, got, CategoryDigitalAssets)
	}
}

func TestBuildAllocation_Caps(t *testing.T) {
	got := percentages(BuildAllocation(90, []string{"us-stocks", "crypto"}, model.StyleActive, 1_000_000))
	assert.Equal(t, 45, got[CategoryUSEquities])
	assert.Equal(t, 14, got[CategoryFixedIncome])
	assert.Equal(t, 14, got[CategoryRealEstate])
	assert.Equal(t, 9, got[CategoryAlternatives])
	assert.Equal(t, 5, got[CategoryDigitalAssets])
	assert.Equal(t, 3, got[CategoryCash])
}

func TestBuildAllocation_StyleAndAmountDoNotChangePercentages(t *testing.T) {
	want := BuildAllocation(60, nil, model.StylePassive, 10_000)
	for _, style := range []model.InvestmentStyle{model.StyleBalanced, model.StyleActive} {
		assert.Equal(t, want, BuildAllocation(60, nil, style, 5_000_000))
	}
}

func TestBuildAllocation_ClampsRisk(t *testing.T) {
	assert.Equal(t, BuildAllocation(90, nil, model.StyleActive, 0), BuildAllocation(500, nil, model.StyleActive, 0))
	assert.Equal(t, BuildAllocation(10, nil, model.StyleActive, 0), BuildAllocation(-5, nil, model.StyleActive, 0))
}

func TestBuildAllocation_Subcategories(t *testing.T) {
	entries := BuildAllocation(70, []string{"us-stocks", "intl-stocks", "real-estate", "alternatives", "crypto"}, model.StyleActive, 50_000)
	for _, e := range entries {
		assert.NotEmpty(t, e.Color, e.Name)
		if e.Name == CategoryCash {
			assert.Empty(t, e.Subcategories)
			continue
		}
		sum := 0
		for _, s := range e.Subcategories {
			sum += s.Percentage
		}
		assert.Equal(t, 100, sum, e.Name)
	}

	// Mutating a result must not leak into later calls.
	entries[0].Subcategories[0].Percentage = 0
	again := BuildAllocation(70, []string{"us-stocks"}, model.StyleActive, 50_000)
	assert.Equal(t, 35, again[0].Subcategories[0].Percentage)
}

func TestBuildAllocation_JSONRoundTrip(t *testing.T) {
	entries := BuildAllocation(75, []string{"us-stocks", "crypto"}, model.StyleActive, 50_000)

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var decoded []model.AllocationEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, entries, decoded)
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		num, den, want int
	}{
		{15, 2, 8},
		{-15, 2, -8},
		{14, 4, 4},
		{13, 4, 3},
		{0, 7, 0},
		{660, 20, 33},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundDiv(tt.num, tt.den), "%d/%d", tt.num, tt.den)
	}
}

package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

func symbols(recs []model.Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Symbol)
	}
	return out
}

func TestBuildRecommendations(t *testing.T) {
	tests := []struct {
		name      string
		risk      int
		interests []string
		amount    float64
		want      []string
	}{
		{
			"conservative small amount",
			30, nil, 50_000,
			[]string{"VTI", "VXUS", "BND", "VCIT", "TLT"},
		},
		{
			"large amount high risk",
			70, nil, 500_000,
			[]string{"VTI", "VXUS", "BND", "MSFT", "JNJ", "BRK.B", "VNQ", "O", "VCIT", "TLT"},
		},
		{
			"individual needs risk above 40",
			40, nil, 500_000,
			[]string{"VTI", "VXUS", "BND", "VCIT", "TLT"},
		},
		{
			"real estate interest at low risk",
			20, []string{"real-estate"}, 10_000,
			[]string{"VTI", "VXUS", "BND", "VNQ", "O", "VCIT", "TLT"},
		},
		{
			"commodities interest",
			55, []string{"commodities"}, 50_000,
			[]string{"VTI", "VXUS", "BND", "VNQ", "O", "GLD", "PDBC"},
		},
		{
			"crypto at exactly 50 is gated",
			50, []string{"crypto"}, 50_000,
			[]string{"VTI", "VXUS", "BND", "VNQ", "O"},
		},
		{
			"crypto above 50",
			51, []string{"crypto", "alternatives"}, 50_000,
			[]string{"VTI", "VXUS", "BND", "VNQ", "O", "GLD", "PDBC", "BTC", "ETH"},
		},
		{
			"non-finite amount falls back to default",
			70, nil, math.NaN(),
			[]string{"VTI", "VXUS", "BND", "VNQ", "O"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRecommendations(tt.risk, tt.interests, model.StyleBalanced, tt.amount)
			assert.Equal(t, tt.want, symbols(got))
		})
	}
}

func TestBuildRecommendations_IndividualSecurities(t *testing.T) {
	recs := BuildRecommendations(70, nil, model.StyleActive, 500_000)
	var stocks int
	for _, r := range recs {
		if r.Type == model.RecStock {
			stocks++
		}
	}
	assert.GreaterOrEqual(t, stocks, 1)
}

func TestBuildRecommendations_BaselineTargets(t *testing.T) {
	recs := BuildRecommendations(70, nil, model.StyleBalanced, 50_000)
	require.GreaterOrEqual(t, len(recs), 3)

	want := map[string]int{"VTI": 39, "VXUS": 16, "BND": 22}
	for _, r := range recs[:3] {
		require.NotNil(t, r.TargetAllocation, r.Symbol)
		assert.Equal(t, want[r.Symbol], *r.TargetAllocation, r.Symbol)
		assert.NotEmpty(t, r.Rationale)
	}
	for _, r := range recs[3:] {
		assert.Nil(t, r.TargetAllocation, r.Symbol)
	}
}

func TestBuildRecommendations_TargetsFollowAllocation(t *testing.T) {
	tests := []struct {
		name      string
		interests []string
		want      map[string]bool
	}{
		{"no interests", nil, map[string]bool{"VTI": true, "VXUS": true, "BND": true}},
		{"us only", []string{catalog.InterestUSStocks}, map[string]bool{"VTI": true, "BND": true}},
		{"intl only", []string{catalog.InterestIntlStocks}, map[string]bool{"VXUS": true, "BND": true}},
		{"bonds only", []string{catalog.InterestBonds}, map[string]bool{"BND": true}},
	}
	category := map[string]string{
		"VTI":  CategoryUSEquities,
		"VXUS": CategoryIntlEquities,
		"BND":  CategoryFixedIncome,
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc := make(map[string]int)
			for _, e := range BuildAllocation(70, tt.interests, model.StyleBalanced, 50_000) {
				alloc[e.Name] = e.Percentage
			}

			recs := BuildRecommendations(70, tt.interests, model.StyleBalanced, 50_000)
			require.GreaterOrEqual(t, len(recs), 3)
			for _, r := range recs[:3] {
				if !tt.want[r.Symbol] {
					assert.Nil(t, r.TargetAllocation, r.Symbol)
					continue
				}
				require.NotNil(t, r.TargetAllocation, r.Symbol)
				pct, ok := alloc[category[r.Symbol]]
				require.True(t, ok, r.Symbol)
				assert.Equal(t, pct, *r.TargetAllocation, r.Symbol)
			}
		})
	}
}

package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

func TestBuildActionPlan_EmergencyFundFirst(t *testing.T) {
	steps := BuildActionPlan(50, responses(catalog.QEmergencyFund, 2))
	require.Len(t, steps, 6)

	assert.Equal(t, 1, steps[0].Priority)
	assert.Equal(t, StepEmergencyFund, steps[0].Title)
	assert.Contains(t, steps[0].Title, "emergency fund")
	assert.Equal(t, 2, steps[1].Priority)
	assert.Equal(t, StepOpenAccounts, steps[1].Title)
}

func TestBuildActionPlan_NoEmergencyStep(t *testing.T) {
	for _, resp := range []model.ResponseMap{
		responses(catalog.QEmergencyFund, 6),
		responses(catalog.QEmergencyFund, 12),
		{},
	} {
		steps := BuildActionPlan(50, resp)
		require.Len(t, steps, 5)
		assert.Equal(t, StepOpenAccounts, steps[0].Title)
	}
}

func TestBuildActionPlan_Order(t *testing.T) {
	steps := BuildActionPlan(50, responses(catalog.QEmergencyFund, 0))

	var titles []string
	for i, s := range steps {
		assert.Equal(t, i+1, s.Priority)
		assert.NotEmpty(t, s.Timeframe)
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		StepEmergencyFund, StepOpenAccounts, StepCoreHoldings, StepAutomate, StepSatellite, StepReview,
	}, titles)
}

func TestBuildActionPlan_TrancheNote(t *testing.T) {
	tests := []struct {
		amount  float64
		tranche bool
	}{
		{50_000, false},
		{100_000, false},
		{250_000, true},
	}
	for _, tt := range tests {
		steps := BuildActionPlan(50, responses(catalog.QInvestableAmount, tt.amount))
		core := steps[1]
		require.Equal(t, StepCoreHoldings, core.Title)
		if tt.tranche {
			assert.Contains(t, core.Description, "tranches", "amount=%v", tt.amount)
		} else {
			assert.NotContains(t, core.Description, "tranches", "amount=%v", tt.amount)
		}
	}
}

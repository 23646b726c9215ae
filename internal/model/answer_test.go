package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Answer
	}{
		{"text", `"hold"`, TextAnswer("hold")},
		{"number", `12.5`, NumberAnswer(12.5)},
		{"negative number", `-3`, NumberAnswer(-3)},
		{"choices", `["crypto","bonds"]`, ChoicesAnswer("crypto", "bonds")},
		{"empty choices", `[]`, Answer{Kind: AnswerChoices, Choices: []string{}}},
		{"null", `null`, Answer{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got Answer
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer_UnmarshalJSON_Rejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{"a":1}`, `true`, `[1,2]`} {
		var a Answer
		assert.Error(t, json.Unmarshal([]byte(in), &a), "input %s", in)
	}
}

func TestResponseMap_JSON(t *testing.T) {
	t.Parallel()

	raw := `{"market_drop_reaction":"buy-more","time_horizon":25,"asset_interests":["us-stocks"],"scenario_1":"A"}`
	var r ResponseMap
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	reaction, ok := r.Text("market_drop_reaction")
	assert.True(t, ok)
	assert.Equal(t, "buy-more", reaction)

	years, ok := r.Number("time_horizon")
	assert.True(t, ok)
	assert.InDelta(t, 25, years, 0.0001)

	tags, ok := r.Choices("asset_interests")
	assert.True(t, ok)
	assert.Equal(t, []string{"us-stocks"}, tags)

	// Wrong shape is reported as absent.
	_, ok = r.Number("market_drop_reaction")
	assert.False(t, ok)

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestResponseMap_CloneIsDeep(t *testing.T) {
	t.Parallel()

	r := ResponseMap{}
	r.Set("asset_interests", ChoicesAnswer("crypto"))
	c := r.Clone()
	c["asset_interests"].Choices[0] = "bonds"

	tags, _ := r.Choices("asset_interests")
	assert.Equal(t, []string{"crypto"}, tags)
}

func TestResponseMap_Has(t *testing.T) {
	t.Parallel()

	r := ResponseMap{"a": TextAnswer("x"), "b": {}}
	assert.True(t, r.Has("a"))
	assert.False(t, r.Has("b"))
	assert.False(t, r.Has("c"))
}

func TestAllocationEntries_RoundTrip(t *testing.T) {
	t.Parallel()

	entries := []AllocationEntry{
		{
			Name:       "US Equities",
			Percentage: 33,
			Color:      "#2563eb",
			Subcategories: []Subcategory{
				{Name: "Large-Cap Growth", Percentage: 35},
				{Name: "Small-Cap", Percentage: 15},
			},
		},
		{Name: "Cash", Percentage: 6, Color: "#94a3b8"},
	}

	data, err := json.Marshal(entries)
	require.NoError(t, err)

	var got []AllocationEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, entries, got)
}

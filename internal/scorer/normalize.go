package scorer

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Normalize returns a copy of responses in which every slider question has
// a finite, non-negative numeric answer. Missing or unusable slider answers
// take the catalogue default; string answers such as "100k" or "$250,000"
// are coerced to numbers. Other questions are copied unchanged.
func Normalize(responses model.ResponseMap) model.ResponseMap {
	out := responses.Clone()
	if out == nil {
		out = model.ResponseMap{}
	}
	for _, s := range catalog.Sliders() {
		out[s.ID] = model.NumberAnswer(sliderValue(out[s.ID], s.Default))
	}
	return out
}

func sliderValue(a model.Answer, def float64) float64 {
	var v float64
	switch a.Kind {
	case model.AnswerNumber:
		v = a.Number
	case model.AnswerText:
		parsed, ok := ParseAmount(a.Text)
		if !ok {
			return def
		}
		v = parsed
	default:
		return def
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def
	}
	return v
}

// ParseAmount parses a numeric string with an optional "$" prefix, thousands
// separators and a "k" or "m" suffix.
func ParseAmount(s string) (float64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")

	mult := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(s, "k"):
		mult = thousand
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult = million
		s = strings.TrimSuffix(s, "m")
	}
	if s == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Mul(mult).Float64()
	return f, true
}

// Interests returns the declared asset-class interests. A single text tag is
// accepted as a one-element set.
func Interests(responses model.ResponseMap) []string {
	if tags, ok := responses.Choices(catalog.QAssetInterests); ok {
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
	if tag, ok := responses.Text(catalog.QAssetInterests); ok && strings.TrimSpace(tag) != "" {
		return []string{strings.TrimSpace(tag)}
	}
	return []string{}
}

// StyleFor maps the involvement slider (0-100) to an investment style.
func StyleFor(involvement float64) model.InvestmentStyle {
	switch {
	case involvement < 40:
		return model.StylePassive
	case involvement > 60:
		return model.StyleActive
	default:
		return model.StyleBalanced
	}
}

func numberOr(responses model.ResponseMap, id string, def float64) float64 {
	v, ok := responses.Number(id)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

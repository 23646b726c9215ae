// Package catalog holds the immutable questionnaire, investor-type and
// instrument catalogues.
package catalog

import (
	"github.com/sells-group/investor-profile/internal/model"
)

// Question ids referenced by the scoring rules.
const (
	QPrimaryGoal        = "primary_goal"
	QAgeRange           = "age_range"
	QTimeHorizon        = "time_horizon"
	QInvestableAmount   = "investable_amount"
	QEmergencyFund      = "emergency_fund"
	QIncomeStability    = "income_stability"
	QRiskTolerance      = "risk_tolerance"
	QMarketDropReaction = "market_drop_reaction"
	QDownturnExperience = "downturn_experience"
	QExperienceLevel    = "experience_level"
	QInvolvement        = "involvement"
	QAssetInterests     = "asset_interests"
	QAdditionalNotes    = "additional_notes"
)

// Asset-interest tags.
const (
	InterestUSStocks     = "us-stocks"
	InterestIntlStocks   = "intl-stocks"
	InterestRealEstate   = "real-estate"
	InterestCrypto       = "crypto"
	InterestBusiness     = "business"
	InterestAlternatives = "alternatives"
	InterestCommodities  = "commodities"
	InterestNone         = "none"
	InterestBonds        = "bonds"
)

// AmountLadder lists the investable-amount stops offered by the slider.
var AmountLadder = []float64{10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000, 5_000_000}

func score(v int) *int { return &v }

var questions = []model.Question{
	model.ChoiceQuestion{
		Base: model.Base{ID: QPrimaryGoal, Section: model.SectionGoals, Text: "What is the main goal for this money?"},
		Options: []model.Option{
			{Value: "retirement", Label: "Retirement"},
			{Value: "wealth-growth", Label: "Long-term wealth growth"},
			{Value: "income", Label: "Regular income"},
			{Value: "education", Label: "Education funding"},
			{Value: "home-purchase", Label: "Buying a home"},
			{Value: "preservation", Label: "Preserving what I have"},
		},
	},
	model.ChoiceQuestion{
		Base: model.Base{ID: QAgeRange, Section: model.SectionGoals, Text: "Which age range are you in?"},
		Options: []model.Option{
			{Value: "under-30", Label: "Under 30"},
			{Value: "30-44", Label: "30 to 44"},
			{Value: "45-59", Label: "45 to 59"},
			{Value: "60-plus", Label: "60 or older"},
		},
	},
	model.SliderQuestion{
		Base: model.Base{ID: QTimeHorizon, Section: model.SectionGoals, Text: "How many years until you need this money?"},
		Min:  1, Max: 40, Step: 1, Default: 10, Unit: "years",
	},
	model.SliderQuestion{
		Base: model.Base{ID: QInvestableAmount, Section: model.SectionSituation, Text: "How much are you planning to invest?"},
		Min:  10_000, Max: 5_000_000, Default: 50_000, Unit: "usd",
		Stops: AmountLadder,
	},
	model.SliderQuestion{
		Base: model.Base{ID: QEmergencyFund, Section: model.SectionSituation, Text: "How many months of expenses do you keep in an emergency fund?"},
		Min:  0, Max: 24, Step: 1, Default: 6, Unit: "months",
	},
	model.ChoiceQuestion{
		Base: model.Base{ID: QIncomeStability, Section: model.SectionSituation, Text: "How stable is your income?"},
		Options: []model.Option{
			{Value: "very-stable", Label: "Very stable"},
			{Value: "stable", Label: "Stable"},
			{Value: "variable", Label: "Variable"},
			{Value: "uncertain", Label: "Uncertain"},
		},
	},
	model.SliderQuestion{
		Base: model.Base{ID: QRiskTolerance, Section: model.SectionRisk, Text: "What is the largest annual loss you could tolerate?"},
		Min:  0, Max: 50, Step: 5, Default: 20, Unit: "percent",
	},
	model.ChoiceQuestion{
		Base: model.Base{ID: QMarketDropReaction, Section: model.SectionRisk, Text: "Your portfolio drops 25% in a month. What do you do?"},
		Options: []model.Option{
			{Value: "buy-more", Label: "Buy more while prices are low", Score: score(20)},
			{Value: "hold", Label: "Hold and wait it out", Score: score(10)},
			{Value: "sell-some", Label: "Sell some to limit losses", Score: score(-10)},
			{Value: "sell-all", Label: "Sell everything", Score: score(-20)},
		},
	},
	model.ChoiceQuestion{
		Base: model.Base{ID: QDownturnExperience, Section: model.SectionExperience, Text: "What did you do in the last major market downturn?"},
		Options: []model.Option{
			{Value: "bought-more", Label: "Bought more", Score: score(15)},
			{Value: "held", Label: "Held my positions", Score: score(5)},
			{Value: "watched", Label: "Watched from the sidelines", Score: score(-5)},
			{Value: "never", Label: "I have never invested through one", Score: score(-10)},
		},
	},
	model.ChoiceQuestion{
		Base: model.Base{ID: QExperienceLevel, Section: model.SectionExperience, Text: "How would you describe your investing experience?"},
		Options: []model.Option{
			{Value: "none", Label: "None"},
			{Value: "beginner", Label: "Beginner"},
			{Value: "intermediate", Label: "Intermediate"},
			{Value: "advanced", Label: "Advanced"},
		},
	},
	model.SliderQuestion{
		Base: model.Base{ID: QInvolvement, Section: model.SectionExperience, Text: "How involved do you want to be in managing your investments?"},
		Min:  0, Max: 100, Step: 10, Default: 50, Unit: "level",
	},
	scenario("scenario_1", "You reach a fork on a trail.",
		"Climb straight to the summit", map[model.Dimension]int{model.DimensionRisk: 20, model.DimensionFocus: 10},
		"Explore the valley paths", map[model.Dimension]int{model.DimensionRisk: -10, model.DimensionFocus: -15}),
	scenario("scenario_2", "You receive a surprise job offer.",
		"Research salary data before answering", map[model.Dimension]int{model.DimensionDecision: -20},
		"Trust your gut and decide on the spot", map[model.Dimension]int{model.DimensionDecision: 20}),
	scenario("scenario_3", "You inherit a plot of land.",
		"Plant an orchard that pays off in decades", map[model.Dimension]int{model.DimensionTime: -20},
		"Grow a crop you can sell this season", map[model.Dimension]int{model.DimensionTime: 20}),
	scenario("scenario_4", "A game show host offers you a deal.",
		"Take the guaranteed $500", map[model.Dimension]int{model.DimensionRisk: -20},
		"Flip a coin for $1,200 or nothing", map[model.Dimension]int{model.DimensionRisk: 20}),
	scenario("scenario_5", "You need a new car.",
		"Build a comparison spreadsheet first", map[model.Dimension]int{model.DimensionDecision: -15, model.DimensionTime: -10},
		"Test-drive a few and buy the one that feels right", map[model.Dimension]int{model.DimensionDecision: 15, model.DimensionTime: 10}),
	scenario("scenario_6", "You are planting a garden.",
		"One bed of prize-winning roses", map[model.Dimension]int{model.DimensionFocus: 20},
		"A mix of wildflowers, herbs and vegetables", map[model.Dimension]int{model.DimensionFocus: -20}),
	scenario("scenario_7", "You receive an unexpected windfall.",
		"Invest it and leave it for twenty years", map[model.Dimension]int{model.DimensionTime: -25, model.DimensionRisk: 10},
		"Spend it on an experience now", map[model.Dimension]int{model.DimensionTime: 25}),
	scenario("scenario_8", "You are picking a team for a project.",
		"A few specialists you trust completely", map[model.Dimension]int{model.DimensionFocus: 15, model.DimensionDecision: 10},
		"A broad group with varied skills", map[model.Dimension]int{model.DimensionFocus: -15, model.DimensionDecision: -10}),
	model.MultiChoiceQuestion{
		Base: model.Base{ID: QAssetInterests, Section: model.SectionInterests, Text: "Which asset classes interest you?"},
		Options: []model.Option{
			{Value: InterestUSStocks, Label: "US stocks"},
			{Value: InterestIntlStocks, Label: "International stocks"},
			{Value: InterestBonds, Label: "Bonds"},
			{Value: InterestRealEstate, Label: "Real estate"},
			{Value: InterestCrypto, Label: "Crypto"},
			{Value: InterestBusiness, Label: "Private business"},
			{Value: InterestAlternatives, Label: "Alternatives"},
			{Value: InterestCommodities, Label: "Commodities"},
			{Value: InterestNone, Label: "No preference"},
		},
	},
	model.TextQuestion{
		Base:        model.Base{ID: QAdditionalNotes, Section: model.SectionInterests, Text: "Anything else we should know?"},
		Placeholder: "Optional",
	},
}

func scenario(id, prompt, aLabel string, aDeltas map[model.Dimension]int, bLabel string, bDeltas map[model.Dimension]int) model.ScenarioQuestion {
	return model.ScenarioQuestion{
		Base: model.Base{ID: id, Section: model.SectionPersonality, Text: prompt},
		A:    model.ScenarioChoice{Tag: "A", Label: aLabel, Deltas: aDeltas},
		B:    model.ScenarioChoice{Tag: "B", Label: bLabel, Deltas: bDeltas},
	}
}

var byID = func() map[string]model.Question {
	m := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		m[q.QuestionID()] = q
	}
	return m
}()

// Questions returns the catalogue in page order. The returned slice is a
// copy; the question values themselves must be treated as read-only.
func Questions() []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	return out
}

// Lookup returns the question with the given id.
func Lookup(id string) (model.Question, bool) {
	q, ok := byID[id]
	return q, ok
}

// Sliders returns every slider question in catalogue order.
func Sliders() []model.SliderQuestion {
	var out []model.SliderQuestion
	for _, q := range questions {
		if s, ok := q.(model.SliderQuestion); ok {
			out = append(out, s)
		}
	}
	return out
}

// Scenarios returns every scenario question in catalogue order.
func Scenarios() []model.ScenarioQuestion {
	var out []model.ScenarioQuestion
	for _, q := range questions {
		if s, ok := q.(model.ScenarioQuestion); ok {
			out = append(out, s)
		}
	}
	return out
}

// OptionScore returns the numeric score attached to option value of the
// choice question id. Unknown questions, options, or options without a
// score yield 0.
func OptionScore(id, value string) int {
	q, ok := byID[id].(model.ChoiceQuestion)
	if !ok {
		return 0
	}
	for _, o := range q.Options {
		if o.Value == value && o.Score != nil {
			return *o.Score
		}
	}
	return 0
}

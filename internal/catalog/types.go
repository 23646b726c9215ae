package catalog

import (
	"maps"
	"slices"

	"github.com/sells-group/investor-profile/internal/model"
)

// DefaultTypeCode is the profile returned for unknown codes.
const DefaultTypeCode = "GAPD"

// Type-code letters, low side first, in code order risk, decision, time, focus.
var typeLetters = [4][2]byte{
	{'G', 'B'}, // guarded / bold
	{'A', 'I'}, // analytical / intuitive
	{'P', 'N'}, // patient / now-oriented
	{'D', 'C'}, // diversified / concentrated
}

// TypeCode derives the four-letter code for d. A dimension strictly above
// the 50 midpoint selects its high letter.
func TypeCode(d model.InvestorDimensions) string {
	vals := [4]int{d.Risk, d.Decision, d.Time, d.Focus}
	code := make([]byte, 4)
	for i, v := range vals {
		if v > 50 {
			code[i] = typeLetters[i][1]
		} else {
			code[i] = typeLetters[i][0]
		}
	}
	return string(code)
}

func alloc(stocks, bonds, realEstate, alternatives, cash int) map[string]int {
	return map[string]int{
		"stocks":       stocks,
		"bonds":        bonds,
		"real_estate":  realEstate,
		"alternatives": alternatives,
		"cash":         cash,
	}
}

var investorTypes = map[string]model.InvestorType{
	"GAPD": {
		Name:                "The Steward",
		Tagline:             "Protect, plan, and let time do the work.",
		Description:         "You research before acting, prefer a wide spread of holdings and are comfortable waiting for results. Preserving capital matters more to you than chasing the last point of return.",
		Strengths:           []string{"Disciplined saving", "Rarely panics in downturns", "Naturally diversified"},
		Challenges:          []string{"May hold too much cash", "Can miss growth by being overly cautious"},
		SuggestedAllocation: alloc(40, 45, 5, 0, 10),
	},
	"GAPC": {
		Name:                "The Curator",
		Tagline:             "A few carefully chosen holdings, held for years.",
		Description:         "You like to understand every position you own and keep the list short. You are patient and careful, but a concentrated book can hide more risk than it appears to.",
		Strengths:           []string{"Deep knowledge of holdings", "Low turnover and costs"},
		Challenges:          []string{"Concentration risk", "Reluctance to sell losers"},
		SuggestedAllocation: alloc(45, 40, 5, 0, 10),
	},
	"GAND": {
		Name:                "The Treasurer",
		Tagline:             "Keep it liquid, keep it safe, keep it working.",
		Description:         "You plan carefully for near-term needs and want money available when it is needed. Short-duration income and a broad mix suit you.",
		Strengths:           []string{"Strong liquidity planning", "Clear about upcoming needs"},
		Challenges:          []string{"Short horizon limits compounding", "Inflation can erode cash"},
		SuggestedAllocation: alloc(30, 50, 5, 0, 15),
	},
	"GANC": {
		Name:                "The Accountant",
		Tagline:             "Every dollar has a job and a deadline.",
		Description:         "You track numbers closely and focus on a handful of dependable instruments for specific goals. Precision is your edge; rigidity can be the cost.",
		Strengths:           []string{"Excellent record keeping", "Goal-driven decisions"},
		Challenges:          []string{"Few holdings to absorb shocks", "Tendency to over-optimize"},
		SuggestedAllocation: alloc(35, 45, 5, 0, 15),
	},
	"GIPD": {
		Name:                "The Gardener",
		Tagline:             "Plant widely, water regularly, wait.",
		Description:         "You trust broad markets and long horizons more than detailed analysis. Automation and index funds fit the way you think.",
		Strengths:           []string{"Comfortable with automation", "Long-term patience"},
		Challenges:          []string{"May not review allocations often enough"},
		SuggestedAllocation: alloc(50, 35, 5, 0, 10),
	},
	"GIPC": {
		Name:                "The Loyalist",
		Tagline:             "Stick with what you know and trust.",
		Description:         "You gravitate toward familiar companies and brands and hold them through thick and thin. Loyalty keeps you steady, but familiarity is not the same as diversification.",
		Strengths:           []string{"Steady through volatility", "Low trading costs"},
		Challenges:          []string{"Home and brand bias", "Concentration risk"},
		SuggestedAllocation: alloc(45, 40, 5, 0, 10),
	},
	"GIND": {
		Name:                "The Pragmatist",
		Tagline:             "Sensible moves for real-life goals.",
		Description:         "You make quick, practical decisions aimed at near-term goals and prefer not to put all your eggs in one basket.",
		Strengths:           []string{"Decisive", "Balanced exposure"},
		Challenges:          []string{"Short-term focus can cause frequent changes"},
		SuggestedAllocation: alloc(35, 45, 5, 0, 15),
	},
	"GINC": {
		Name:                "The Sentinel",
		Tagline:             "On guard, and ready to act.",
		Description:         "You act on instinct to protect what you have, usually in a few positions you watch closely. Guard against reacting to every headline.",
		Strengths:           []string{"Quick to respond to change", "Protective instincts"},
		Challenges:          []string{"Prone to selling at lows", "Concentrated positions"},
		SuggestedAllocation: alloc(30, 45, 5, 0, 20),
	},
	"BAPD": {
		Name:                "The Architect",
		Tagline:             "Build a bold plan on solid foundations.",
		Description:         "You accept volatility in pursuit of growth, back it with research and spread it across many holdings over a long horizon.",
		Strengths:           []string{"Evidence-based", "Comfortable with volatility", "Long horizon"},
		Challenges:          []string{"Can over-engineer the portfolio"},
		SuggestedAllocation: alloc(70, 15, 10, 3, 2),
	},
	"BAPC": {
		Name:                "The Value Hunter",
		Tagline:             "Find mispriced opportunities and wait for the market to agree.",
		Description:         "You dig for undervalued companies and are willing to hold a concentrated book for years until your thesis plays out.",
		Strengths:           []string{"Independent thinking", "Patience with contrarian positions"},
		Challenges:          []string{"Value traps", "High single-name exposure"},
		SuggestedAllocation: alloc(75, 10, 8, 5, 2),
	},
	"BAND": {
		Name:                "The Tactician",
		Tagline:             "Measured risks, actively managed.",
		Description:         "You like to adjust positions as data changes and keep risk spread across many bets. Discipline on costs and taxes keeps the edge intact.",
		Strengths:           []string{"Responsive to new information", "Diversified risk-taking"},
		Challenges:          []string{"Trading costs", "Tax drag from turnover"},
		SuggestedAllocation: alloc(65, 15, 10, 5, 5),
	},
	"BANC": {
		Name:                "The Strategist",
		Tagline:             "Big calls, backed by numbers.",
		Description:         "You take sizeable, well-researched positions and expect results sooner rather than later. Position sizing is your most important tool.",
		Strengths:           []string{"Conviction", "Analytical depth"},
		Challenges:          []string{"Large drawdowns when wrong", "Short feedback loop"},
		SuggestedAllocation: alloc(75, 5, 5, 10, 5),
	},
	"BIPD": {
		Name:                "The Explorer",
		Tagline:             "Curious about everything, committed for the long run.",
		Description:         "You follow your instincts into new markets and asset classes, but keep a broad spread and a long horizon.",
		Strengths:           []string{"Open to new opportunities", "Long-term patience"},
		Challenges:          []string{"Portfolio sprawl", "Chasing themes"},
		SuggestedAllocation: alloc(65, 15, 10, 7, 3),
	},
	"BIPC": {
		Name:                "The Visionary",
		Tagline:             "Back the future you believe in.",
		Description:         "You invest in a few big ideas you believe will shape the future and are happy to wait years for them to mature.",
		Strengths:           []string{"Strong conviction", "Tolerates long volatile stretches"},
		Challenges:          []string{"Narrative risk", "Concentration"},
		SuggestedAllocation: alloc(75, 5, 5, 12, 3),
	},
	"BIND": {
		Name:                "The Adventurer",
		Tagline:             "Many bets, moving fast.",
		Description:         "You enjoy action and variety, taking quick positions across many markets. A stable core keeps the adventure sustainable.",
		Strengths:           []string{"Energetic", "Diversified experimentation"},
		Challenges:          []string{"Overtrading", "Impulse decisions"},
		SuggestedAllocation: alloc(65, 10, 10, 10, 5),
	},
	"BINC": {
		Name:                "The Maverick",
		Tagline:             "High conviction, high velocity.",
		Description:         "You make fast, instinctive calls on a small number of positions and accept big swings. Hard limits on position size protect you from yourself.",
		Strengths:           []string{"Decisive", "Comfortable with extreme volatility"},
		Challenges:          []string{"Severe drawdowns", "Emotional trading"},
		SuggestedAllocation: alloc(80, 0, 5, 12, 3),
	},
}

// InvestorType returns a copy of the profile for code, falling back to the
// default profile when code is unknown.
func InvestorType(code string) model.InvestorType {
	t, ok := investorTypes[code]
	if !ok {
		code = DefaultTypeCode
		t = investorTypes[code]
	}
	t.Code = code
	t.Strengths = slices.Clone(t.Strengths)
	t.Challenges = slices.Clone(t.Challenges)
	t.SuggestedAllocation = maps.Clone(t.SuggestedAllocation)
	return t
}

// TypeCodes returns every catalogued code in sorted order.
func TypeCodes() []string {
	return slices.Sorted(maps.Keys(investorTypes))
}

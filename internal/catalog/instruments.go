package catalog

import "github.com/sells-group/investor-profile/internal/model"

// Instrument is a static recommendation template.
type Instrument struct {
	Type         model.RecommendationType
	Symbol       string
	Name         string
	Category     string
	ExpenseRatio float64 // 0 when not applicable
	Rationale    string
}

// Instrument groups used by the recommendation rules.
var (
	BaselineInstruments   = []string{"VTI", "VXUS", "BND"}
	IndividualInstruments = []string{"MSFT", "JNJ", "BRK.B"}
	REITInstruments       = []string{"VNQ", "O"}
	BondInstruments       = []string{"VCIT", "TLT"}
	CommodityInstruments  = []string{"GLD", "PDBC"}
	CryptoInstruments     = []string{"BTC", "ETH"}
)

var instruments = map[string]Instrument{
	"VTI": {
		Type: model.RecFund, Symbol: "VTI", Name: "Vanguard Total Stock Market ETF", Category: "US Equities",
		ExpenseRatio: 0.03,
		Rationale:    "Owns the entire US stock market in one low-cost fund and anchors the equity core.",
	},
	"VXUS": {
		Type: model.RecFund, Symbol: "VXUS", Name: "Vanguard Total International Stock ETF", Category: "International Equities",
		ExpenseRatio: 0.07,
		Rationale:    "Adds developed and emerging markets outside the US for geographic diversification.",
	},
	"BND": {
		Type: model.RecFund, Symbol: "BND", Name: "Vanguard Total Bond Market ETF", Category: "Fixed Income",
		ExpenseRatio: 0.03,
		Rationale:    "Broad investment-grade bond exposure that dampens portfolio volatility.",
	},
	"MSFT": {
		Type: model.RecStock, Symbol: "MSFT", Name: "Microsoft Corporation", Category: "US Equities",
		Rationale: "Diversified software and cloud business with durable cash flows.",
	},
	"JNJ": {
		Type: model.RecStock, Symbol: "JNJ", Name: "Johnson & Johnson", Category: "US Equities",
		Rationale: "Defensive healthcare franchise with a long dividend record.",
	},
	"BRK.B": {
		Type: model.RecStock, Symbol: "BRK.B", Name: "Berkshire Hathaway Inc. Class B", Category: "US Equities",
		Rationale: "Conglomerate exposure to insurance, rail, energy and a large equity book.",
	},
	"VNQ": {
		Type: model.RecREIT, Symbol: "VNQ", Name: "Vanguard Real Estate ETF", Category: "Real Estate",
		ExpenseRatio: 0.13,
		Rationale:    "Diversified basket of US REITs providing income and inflation sensitivity.",
	},
	"O": {
		Type: model.RecREIT, Symbol: "O", Name: "Realty Income Corporation", Category: "Real Estate",
		Rationale: "Net-lease REIT known for monthly dividends and long tenant contracts.",
	},
	"VCIT": {
		Type: model.RecBond, Symbol: "VCIT", Name: "Vanguard Intermediate-Term Corporate Bond ETF", Category: "Fixed Income",
		ExpenseRatio: 0.04,
		Rationale:    "Investment-grade corporate bonds for higher yield than Treasuries with moderate duration.",
	},
	"TLT": {
		Type: model.RecBond, Symbol: "TLT", Name: "iShares 20+ Year Treasury Bond ETF", Category: "Fixed Income",
		ExpenseRatio: 0.15,
		Rationale:    "Long-duration Treasuries that tend to rally when equities fall sharply.",
	},
	"GLD": {
		Type: model.RecCommodity, Symbol: "GLD", Name: "SPDR Gold Shares", Category: "Alternatives",
		ExpenseRatio: 0.40,
		Rationale:    "Gold as a hedge against inflation and currency debasement.",
	},
	"PDBC": {
		Type: model.RecCommodity, Symbol: "PDBC", Name: "Invesco Optimum Yield Diversified Commodity Strategy ETF", Category: "Alternatives",
		ExpenseRatio: 0.59,
		Rationale:    "Broad commodity basket with low correlation to stocks and bonds.",
	},
	"BTC": {
		Type: model.RecCrypto, Symbol: "BTC", Name: "Bitcoin", Category: "Digital Assets",
		Rationale: "The largest and most liquid digital asset; keep the position small.",
	},
	"ETH": {
		Type: model.RecCrypto, Symbol: "ETH", Name: "Ethereum", Category: "Digital Assets",
		Rationale: "Smart-contract platform exposure to complement a bitcoin position.",
	},
}

// LookupInstrument returns the instrument template for symbol.
func LookupInstrument(symbol string) (Instrument, bool) {
	in, ok := instruments[symbol]
	return in, ok
}

// Recommendation converts the instrument into a model.Recommendation.
func (in Instrument) Recommendation() model.Recommendation {
	rec := model.Recommendation{
		Type:      in.Type,
		Symbol:    in.Symbol,
		Name:      in.Name,
		Category:  in.Category,
		Rationale: in.Rationale,
	}
	if in.ExpenseRatio > 0 {
		er := in.ExpenseRatio
		rec.ExpenseRatio = &er
	}
	return rec
}

package store

import (
	"time"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/scorer"
)

var baseTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func testReport(id, userID string, at time.Time, reaction string) *model.StoredReport {
	responses := model.ResponseMap{
		catalog.QMarketDropReaction: model.TextAnswer(reaction),
		catalog.QAssetInterests:     model.ChoicesAnswer("us-stocks", "crypto"),
		catalog.QInvestableAmount:   model.NumberAnswer(250_000),
	}
	return &model.StoredReport{
		ID:          id,
		UserID:      userID,
		Responses:   responses,
		Report:      scorer.Generate(responses),
		Narrative:   "narrative for " + id,
		Fingerprint: scorer.Fingerprint(responses),
		GeneratedAt: at,
	}
}

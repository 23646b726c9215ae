// Package export writes stored reports to spreadsheet workbooks.
package export

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/investor-profile/internal/model"
)

// Sheet names, in workbook order.
const (
	SheetSummary         = "Summary"
	SheetAllocation      = "Allocation"
	SheetRecommendations = "Recommendations"
	SheetActionPlan      = "Action Plan"
)

const (
	moneyFormat   = `"$"#,##0`
	decimalFormat = "0.00"
	subIndent     = "    "
)

// WriteXLSX renders r as a workbook and writes it to w.
func WriteXLSX(w io.Writer, r *model.StoredReport) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "export: write workbook")
}

// SaveXLSX renders r as a workbook at path.
func SaveXLSX(path string, r *model.StoredReport) error {
	out, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteXLSX(out, r); err != nil {
		out.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(out.Close(), "export: close %s", path)
}

// Workbook builds the workbook for r without writing it.
func Workbook(r *model.StoredReport) (*xlsx.File, error) {
	if r == nil {
		return nil, eris.New("export: nil report")
	}
	f := xlsx.NewFile()

	builders := []struct {
		name  string
		build func(*xlsx.Sheet, *model.StoredReport)
	}{
		{SheetSummary, summarySheet},
		{SheetAllocation, allocationSheet},
		{SheetRecommendations, recommendationsSheet},
		{SheetActionPlan, actionPlanSheet},
	}
	for _, b := range builders {
		sheet, err := f.AddSheet(b.name)
		if err != nil {
			return nil, eris.Wrapf(err, "export: add sheet %s", b.name)
		}
		b.build(sheet, r)
	}
	return f, nil
}

func summarySheet(s *xlsx.Sheet, r *model.StoredReport) {
	rep := r.Report
	addStrings(s, "Field", "Value")
	addStrings(s, "Report ID", r.ID)
	addStrings(s, "User ID", r.UserID)
	addStrings(s, "Generated At", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))

	row := s.AddRow()
	row.AddCell().SetString("Risk Score")
	row.AddCell().SetInt(rep.RiskProfile.Score)

	addStrings(s, "Risk Label", rep.RiskProfile.Label)
	addStrings(s, "Investor Type", rep.InvestorType.Code+" "+rep.InvestorType.Name)
	addStrings(s, "Style", string(rep.Style))

	row = s.AddRow()
	row.AddCell().SetString("Investable Amount")
	row.AddCell().SetFloatWithFormat(rep.InvestableAmount, moneyFormat)

	addStrings(s, "Interests", strings.Join(rep.Interests, ", "))

	m := rep.KeyMetrics
	for _, kv := range []struct {
		name string
		v    float64
	}{
		{"Expected Return %", m.ExpectedReturn},
		{"Volatility %", m.Volatility},
		{"Max Drawdown %", m.MaxDrawdown},
		{"Sharpe Ratio", m.SharpeRatio},
	} {
		row = s.AddRow()
		row.AddCell().SetString(kv.name)
		row.AddCell().SetFloatWithFormat(kv.v, decimalFormat)
	}
	row = s.AddRow()
	row.AddCell().SetString("Time Horizon (years)")
	row.AddCell().SetInt(m.TimeHorizon)
}

// allocationSheet lists each category followed by its indented
// subcategories. Subcategory amounts are a share of the category amount.
func allocationSheet(s *xlsx.Sheet, r *model.StoredReport) {
	amount := r.Report.InvestableAmount
	addStrings(s, "Category", "Percentage", "Amount")
	for _, e := range r.Report.Allocation {
		catAmount := amount * float64(e.Percentage) / 100
		row := s.AddRow()
		row.AddCell().SetString(e.Name)
		row.AddCell().SetInt(e.Percentage)
		row.AddCell().SetFloatWithFormat(catAmount, moneyFormat)

		for _, sub := range e.Subcategories {
			row = s.AddRow()
			row.AddCell().SetString(subIndent + sub.Name)
			row.AddCell().SetInt(sub.Percentage)
			row.AddCell().SetFloatWithFormat(catAmount*float64(sub.Percentage)/100, moneyFormat)
		}
	}
}

func recommendationsSheet(s *xlsx.Sheet, r *model.StoredReport) {
	addStrings(s, "Symbol", "Name", "Type", "Category", "Expense Ratio %", "Target %", "Rationale")
	for _, rec := range r.Report.Recommendations {
		row := s.AddRow()
		row.AddCell().SetString(rec.Symbol)
		row.AddCell().SetString(rec.Name)
		row.AddCell().SetString(string(rec.Type))
		row.AddCell().SetString(rec.Category)

		cell := row.AddCell()
		if rec.ExpenseRatio != nil {
			cell.SetFloatWithFormat(*rec.ExpenseRatio, decimalFormat)
		}
		cell = row.AddCell()
		if rec.TargetAllocation != nil {
			cell.SetInt(*rec.TargetAllocation)
		}
		row.AddCell().SetString(rec.Rationale)
	}
}

func actionPlanSheet(s *xlsx.Sheet, r *model.StoredReport) {
	addStrings(s, "Priority", "Title", "Description", "Timeframe")
	for _, step := range r.Report.ActionPlan {
		row := s.AddRow()
		row.AddCell().SetInt(step.Priority)
		row.AddCell().SetString(step.Title)
		row.AddCell().SetString(step.Description)
		row.AddCell().SetString(step.Timeframe)
	}
}

func addStrings(s *xlsx.Sheet, values ...string) {
	row := s.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

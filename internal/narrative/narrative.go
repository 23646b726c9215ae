// Package narrative renders the prose summary shown alongside a report.
package narrative

import (
	"bytes"
	"math"
	"strings"
	"text/template"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/investor-profile/internal/model"
)

const reportTemplate = `Your risk score is {{.RiskProfile.Score}} out of 90, which places you in the {{.RiskProfile.Label}} band. {{.RiskProfile.Description}}

You are {{article .InvestorType.Name}} ({{.InvestorType.Code}}): {{.InvestorType.Tagline}} {{.InvestorType.Description}}
{{- if .InvestorType.Strengths}}

Strengths: {{join .InvestorType.Strengths}}.
{{- end}}
{{- if .InvestorType.Challenges}}
Watch out for: {{join .InvestorType.Challenges}}.
{{- end}}

For {{money .InvestableAmount}} with a {{.Style}} approach we suggest:
{{- range .Allocation}}
  - {{.Name}}: {{percent .Percentage}} ({{money (share $.InvestableAmount .Percentage)}})
{{- end}}

Over a {{.KeyMetrics.TimeHorizon}}-year horizon a portfolio like this has historically returned about {{decimal .KeyMetrics.ExpectedReturn}}% a year with {{decimal .KeyMetrics.Volatility}}% volatility. Expect a worst-case decline near {{decimal (abs .KeyMetrics.MaxDrawdown)}}%.
{{- with .ActionPlan}}

First step: {{(index . 0).Title}}. {{(index . 0).Description}}
{{- end}}
`

// Renderer fills the report template.
type Renderer struct {
	tpl     *template.Template
	printer *message.Printer
}

// New returns a Renderer that formats numbers for the en-US locale.
func New() (*Renderer, error) {
	return NewWithTemplate(reportTemplate)
}

// NewWithTemplate parses text as the report template.
func NewWithTemplate(text string) (*Renderer, error) {
	r := &Renderer{printer: message.NewPrinter(language.AmericanEnglish)}
	tpl, err := template.New("report").Funcs(r.funcs()).Parse(text)
	if err != nil {
		return nil, eris.Wrap(err, "narrative: parse template")
	}
	r.tpl = tpl
	return r, nil
}

// Render returns the narrative for report.
func (r *Renderer) Render(report model.Report) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, report); err != nil {
		return "", eris.Wrap(err, "narrative: execute template")
	}
	return strings.TrimSpace(buf.String()), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(v float64) string {
			return r.printer.Sprintf("$%.0f", v)
		},
		"percent": func(v int) string {
			return r.printer.Sprintf("%d%%", v)
		},
		"decimal": func(v float64) string {
			return r.printer.Sprintf("%.2f", v)
		},
		"share": func(amount float64, pct int) float64 {
			return amount * float64(pct) / 100
		},
		"join": func(items []string) string {
			return strings.ToLower(strings.Join(items, "; "))
		},
		"article": article,
		"abs":     math.Abs,
	}
}

// article lower-cases a leading "The" so the name reads inside a sentence.
func article(name string) string {
	if rest, ok := strings.CutPrefix(name, "The "); ok {
		return "the " + rest
	}
	return name
}

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/investor-profile/internal/catalog"
	"github.com/sells-group/investor-profile/internal/model"
)

var questionsFormat string

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the questionnaire catalogue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeQuestions(cmd.OutOrStdout(), questionsFormat)
	},
}

func init() {
	questionsCmd.Flags().StringVar(&questionsFormat, "format", formatTable, "output format: table, json or yaml")
	rootCmd.AddCommand(questionsCmd)
}

func questionViews() []model.QuestionView {
	qs := catalog.Questions()
	views := make([]model.QuestionView, len(qs))
	for i, q := range qs {
		views[i] = model.View(q)
	}
	return views
}

func writeQuestions(w io.Writer, format string) error {
	views := questionViews()
	switch format {
	case formatJSON:
		return writeJSON(w, views)
	case formatYAML:
		return writeYAML(w, views)
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SECTION\tID\tKIND\tANSWERS\tQUESTION")
		for _, v := range views {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", v.Section, v.ID, v.Kind, answerHint(v), v.Text)
		}
		return eris.Wrap(tw.Flush(), "write table")
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

// answerHint summarises what a question accepts in one column.
func answerHint(v model.QuestionView) string {
	switch {
	case len(v.Options) > 0:
		values := make([]string, len(v.Options))
		for i, o := range v.Options {
			values[i] = o.Value
		}
		return strings.Join(values, "|")
	case v.Slider != nil:
		return fmt.Sprintf("%g..%g (default %g)", v.Slider.Min, v.Slider.Max, v.Slider.Default)
	case v.A != nil:
		return "A|B"
	default:
		return "text"
	}
}

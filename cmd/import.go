package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/model"
)

const maxImportLine = 4 << 20

var (
	importFile   string
	importUpsert bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-load stored reports from a JSON Lines file into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		f, err := os.Open(importFile)
		if err != nil {
			return eris.Wrapf(err, "open %s", importFile)
		}
		defer f.Close() //nolint:errcheck

		reports, err := readReportLines(f)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx, "import")
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := env.Postgres.ImportReports(ctx, reports, importUpsert)
		if err != nil {
			return eris.Wrap(err, "import reports")
		}

		zap.L().Info("import complete",
			zap.Int64("rows", n),
			zap.String("file", importFile),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to a JSON Lines file of stored reports (required)")
	importCmd.Flags().BoolVar(&importUpsert, "upsert", false, "overwrite reports whose id already exists")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}

// readReportLines decodes one stored report per non-blank line.
func readReportLines(r io.Reader) ([]model.StoredReport, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxImportLine)

	var out []model.StoredReport
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rep model.StoredReport
		if err := json.Unmarshal([]byte(text), &rep); err != nil {
			return nil, eris.Wrapf(err, "import: line %d", line)
		}
		out = append(out, rep)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "import: scan")
	}
	return out, nil
}

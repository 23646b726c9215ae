package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/investor-profile/internal/export"
	"github.com/sells-group/investor-profile/internal/model"
	"github.com/sells-group/investor-profile/internal/questionnaire"
)

var (
	generateResponses string
	generateUser      string
	generateFormat    string
	generateXLSX      string
	generateSave      bool
	generateStrict    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Score a questionnaire response file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		responses, err := readResponses(generateResponses)
		if err != nil {
			return err
		}
		if generateStrict {
			if responses, err = questionnaire.ValidateAll(responses); err != nil {
				return err
			}
		}

		report, err := generateReport(ctx, generateUser, responses, generateSave)
		if err != nil {
			return err
		}

		if generateXLSX != "" {
			if err := export.SaveXLSX(generateXLSX, report); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", generateXLSX))
		}

		return writeReport(cmd.OutOrStdout(), report, generateFormat)
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateResponses, "responses", "", "path to a JSON response map, or - for stdin (required)")
	generateCmd.Flags().StringVar(&generateUser, "user", "local", "user id to attribute the report to")
	generateCmd.Flags().StringVar(&generateFormat, "format", formatText, "output format: text, json or yaml")
	generateCmd.Flags().StringVar(&generateXLSX, "xlsx", "", "also write the report as an XLSX workbook")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "persist the report to the configured store")
	generateCmd.Flags().BoolVar(&generateStrict, "strict", false, "reject answers that do not match the questionnaire")
	_ = generateCmd.MarkFlagRequired("responses")
	rootCmd.AddCommand(generateCmd)
}

func generateReport(ctx context.Context, userID string, responses model.ResponseMap, save bool) (*model.StoredReport, error) {
	if !save {
		engine, err := newEngine()
		if err != nil {
			return nil, err
		}
		return engine.Evaluate(ctx, userID, responses)
	}

	env, err := initEnv(ctx, "local")
	if err != nil {
		return nil, err
	}
	defer env.Close()

	report, err := env.Pipeline.Run(ctx, userID, responses)
	if err != nil {
		return nil, eris.Wrap(err, "generate report")
	}
	return report, nil
}

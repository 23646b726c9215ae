package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	latestUser   string
	latestFormat string
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print a user's most recent stored report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "local")
		if err != nil {
			return err
		}
		defer env.Close()

		report, err := env.Pipeline.Latest(ctx, latestUser)
		if err != nil {
			return err
		}
		if report == nil {
			return eris.Errorf("no reports for user %q", latestUser)
		}
		return writeReport(cmd.OutOrStdout(), report, latestFormat)
	},
}

func init() {
	latestCmd.Flags().StringVar(&latestUser, "user", "", "user id (required)")
	latestCmd.Flags().StringVar(&latestFormat, "format", formatText, "output format: text, json or yaml")
	_ = latestCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(latestCmd)
}

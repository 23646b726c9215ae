package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/investor-profile/internal/monitoring"
)

var statsHours int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise reports generated in a recent window",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx, "local")
		if err != nil {
			return err
		}
		defer env.Close()

		snap, err := monitoring.NewCollector(env.Store).Collect(ctx, statsHours)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), snap)
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsHours, "hours", 24, "lookback window in hours (0 = all time)")
	rootCmd.AddCommand(statsCmd)
}

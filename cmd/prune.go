package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/investor-profile/internal/retention"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete reports older than retention.max_age_days once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Retention.MaxAgeDays == 0 {
			return eris.New("retention.max_age_days is 0; nothing expires")
		}

		env, err := initEnv(ctx, "local")
		if err != nil {
			return err
		}
		defer env.Close()

		sweeper, err := retention.NewSweeper(env.Store, cfg.Retention)
		if err != nil {
			return err
		}
		_, err = sweeper.Sweep(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
}

package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/investor-profile/internal/model"
)

var (
	batchDir         string
	batchConcurrency int
	batchLimit       int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate and store reports for a directory of response files",
	Long:  "Each <user>.json file in --dir is scored and stored for user <user>.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, "local")
		if err != nil {
			return err
		}
		defer env.Close()

		files, err := responseFiles(batchDir)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		res, err := processBatch(ctx, files, batchLimit, concurrency, env.Pipeline.Run)
		if err != nil {
			return err
		}
		if res.Failed > 0 {
			return eris.Errorf("batch: %d of %d files failed", res.Failed, res.Failed+res.Succeeded)
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of <user>.json response files (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "parallel generations (default from config)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of files to process (0 = all)")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// runFunc generates and stores one report.
type runFunc func(ctx context.Context, userID string, responses model.ResponseMap) (*model.StoredReport, error)

// batchResult counts per-file outcomes.
type batchResult struct {
	Succeeded int64
	Failed    int64
}

// responseFiles lists the *.json files in dir in name order.
func responseFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, eris.Wrapf(err, "batch: list %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func userIDFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// processBatch applies limit, then generates reports concurrently. A failed
// file is logged and counted; it does not stop the batch.
func processBatch(ctx context.Context, files []string, limit, concurrency int, run runFunc) (batchResult, error) {
	if len(files) == 0 {
		zap.L().Info("no response files found")
		return batchResult{}, nil
	}

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range files {
		g.Go(func() error {
			userID := userIDFromPath(path)
			log := zap.L().With(zap.String("file", path), zap.String("user_id", userID))

			responses, err := readResponses(path)
			if err != nil {
				failed.Add(1)
				log.Error("read responses failed", zap.Error(err))
				return nil
			}

			report, err := run(gctx, userID, responses)
			if err != nil {
				failed.Add(1)
				log.Error("generation failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("report generated",
				zap.String("report_id", report.ID),
				zap.Int("risk_score", report.Report.RiskProfile.Score),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return batchResult{}, eris.Wrap(err, "batch: wait")
	}

	res := batchResult{Succeeded: succeeded.Load(), Failed: failed.Load()}
	zap.L().Info("batch complete",
		zap.Int64("succeeded", res.Succeeded),
		zap.Int64("failed", res.Failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

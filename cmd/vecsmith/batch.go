package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vecsmith/internal/driver"
	"vecsmith/internal/observ"
)

const cacheApp = "vecsmith"

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate a corpus of programs",
		Long: `Generate --count programs with consecutive seeds into --out, one
prog_<seed>.c per seed. Programs already produced with identical settings are
reused from the disk cache.`,
		Args: cobra.NoArgs,
		RunE: runBatch,
	}
	addGeneratorFlags(cmd.Flags())
	addBatchFlags(cmd.Flags())
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	m, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	root := cmd.Root().PersistentFlags()
	uiFlag, _ := root.GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, _ := root.GetBool("quiet")
	showTimings, _ := root.GetBool("timings")

	req := driver.BatchRequest{
		Options: generatorOptions(m.Config),
		Count:   m.Config.Batch.Count,
		OutDir:  m.OutDir(),
		Jobs:    m.Config.Batch.Jobs,
	}
	if showTimings {
		req.Options.Timer = observ.NewTimer()
	}
	if m.Config.Batch.Cache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		req.Cache = cache
	}

	return instrumented(cmd, func(ctx context.Context) error {
		started := time.Now()
		var (
			res driver.BatchResult
			err error
		)
		if shouldUseTUI(mode) && !quiet {
			res, err = runBatchWithUI(ctx, "vecsmith batch", req)
		} else {
			res, err = driver.Batch(ctx, req)
		}
		if err != nil {
			return err
		}
		if !quiet {
			printBatchSummary(cmd.ErrOrStderr(), res.Generated, res.Cached, time.Since(started))
		}
		if req.Options.Timer != nil {
			printTimings(cmd.ErrOrStderr(), req.Options.Timer)
		}
		return nil
	})
}

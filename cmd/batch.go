package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/ChheanSilapin/yt-tool/internal/worker"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Render every transcript in a directory",
	Long: `Render every transcript (.json, .srt, .vtt, .ass) found in a directory.
Each file is captioned independently; a failing file does not stop the rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

var (
	batchStyle     styleFlags
	batchOutput    string
	batchAlso      []string
	batchSaveJSON  bool
	batchSkipEmpty bool
	noAsync        bool
	maxConcurrent  int
	rateLimit      int
)

func init() {
	batchStyle.register(batchCmd.Flags())
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "output directory (default: <directory>/captions)")
	batchCmd.Flags().StringSliceVar(&batchAlso, "also", nil, "also write plain captions: srt, vtt")
	batchCmd.Flags().BoolVar(&batchSaveJSON, "save-json", false, "save the normalized words as JSON alongside the captions")
	batchCmd.Flags().BoolVar(&batchSkipEmpty, "skip-empty", false, "do not write documents for transcripts with nothing to caption")
	batchCmd.Flags().BoolVar(&noAsync, "no-async", false, "process files one at a time")
	batchCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", 4, "files processed in parallel")
	batchCmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "files started per minute (0 = unlimited)")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := batchStyle.buildConfig(cmd.Flags())
	if err != nil {
		return err
	}
	exports, err := parseExports(batchAlso)
	if err != nil {
		return err
	}

	seed := batchStyle.resolveSeed(cmd.Flags())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := worker.RunBatch(ctx, worker.BatchOptions{
		InputDir:        args[0],
		OutputDir:       batchOutput,
		Config:          cfg,
		Seed:            seed,
		Exports:         exports,
		SaveJSON:        batchSaveJSON,
		SkipEmpty:       batchSkipEmpty,
		NoAsync:         noAsync,
		MaxConcurrent:   maxConcurrent,
		RateLimitPerMin: rateLimit,
	})
	if err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "files", len(report.Results), "seed", seed)
	}
	return nil
}

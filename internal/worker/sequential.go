package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// processSequential runs jobs one at a time.
func processSequential(ctx context.Context, jobs []Options, opts BatchOptions) ([]FileResult, error) {
	limiter := newLimiter(opts.RateLimitPerMin)
	results := make([]FileResult, 0, len(jobs))

	for i, job := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		slog.Info("processing file",
			"file", fmt.Sprintf("%d/%d", i+1, len(jobs)),
			"name", filepath.Base(job.InputPath))

		outcome, err := Run(ctx, job)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			slog.Error("file failed", "file", filepath.Base(job.InputPath), "err", err)
		}
		results = append(results, FileResult{Input: job.InputPath, Outcome: outcome, Err: err})
	}

	return results, nil
}

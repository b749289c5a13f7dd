package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// newLimiter paces file starts; rpm <= 0 disables pacing.
func newLimiter(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
}

// processConcurrent runs jobs with bounded parallelism and rate limiting.
// Each job is independent: it only reads its own Options and writes its own
// slot of the result slice.
func processConcurrent(ctx context.Context, jobs []Options, opts BatchOptions) ([]FileResult, error) {
	slog.Info("starting concurrent processing",
		"files", len(jobs),
		"max_concurrent", opts.MaxConcurrent,
		"rate_limit_rpm", opts.RateLimitPerMin)

	limiter := newLimiter(opts.RateLimitPerMin)
	results := make([]FileResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxConcurrent)

	for i, job := range jobs {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			slog.Info("starting file", "file", fmt.Sprintf("%d/%d", i+1, len(jobs)), "name", filepath.Base(job.InputPath))

			outcome, err := Run(gctx, job)
			results[i] = FileResult{Input: job.InputPath, Outcome: outcome, Err: err}
			if err != nil {
				slog.Error("file failed", "file", filepath.Base(job.InputPath), "err", err)
				return nil
			}

			slog.Info("file completed", "file", fmt.Sprintf("%d/%d", i+1, len(jobs)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ChheanSilapin/yt-tool/internal/config"
	"github.com/ChheanSilapin/yt-tool/internal/export"
	"github.com/ChheanSilapin/yt-tool/internal/transcript"
)

// ErrOutputConflict is returned when two transcripts of a batch would write
// the same document.
var ErrOutputConflict = errors.New("conflicting output paths")

// BatchOptions configures captioning every transcript in a directory.
type BatchOptions struct {
	InputDir  string
	OutputDir string // default: <input>/captions
	Config    *config.Config
	Seed      uint64
	Source    transcript.Source
	Exports   []export.Format
	SaveJSON  bool
	SkipEmpty bool

	NoAsync         bool
	MaxConcurrent   int
	RateLimitPerMin int // files started per minute, 0 = unlimited
}

// FileResult is the outcome of one file of a batch.
type FileResult struct {
	Input   string
	Outcome *Outcome
	Err     error
}

// BatchReport lists per-file results in directory order.
type BatchReport struct {
	Results []FileResult
}

// Failed returns the results that ended in an error.
func (r *BatchReport) Failed() []FileResult {
	var failed []FileResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// SeedFor derives the seed of one file from the batch seed and the file
// name, so a file gets the same chunking whatever else is in the batch.
func SeedFor(base uint64, name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return base ^ h.Sum64()
}

// ListTranscripts returns the supported transcript files of dir, sorted.
func ListTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !transcript.Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// planOutputs maps every input to its document path in outputDir.
//
// Inputs that are documents written by an earlier run into the same
// directory (<stem>.karaoke.ass, or the <stem>.ass of another input) are left
// out. Inputs sharing a stem, like clip.json and clip.srt, keep their source
// extension: clip.json.ass and clip.srt.ass. Any clash left after that is an
// error, so no two files ever race for one output.
func planOutputs(files []string, outputDir string) (map[string]string, error) {
	naive := make(map[string]string, len(files))
	for _, path := range files {
		if strings.HasSuffix(strings.ToLower(path), karaokeExt) {
			slog.Debug("skipping generated captions", "file", filepath.Base(path))
			continue
		}
		naive[path] = outputPathFor(path, outputDir)
	}

	generated := make(map[string]bool, len(naive))
	for _, out := range naive {
		generated[absPath(out)] = true
	}

	byOutput := make(map[string][]string)
	for _, path := range files {
		out, ok := naive[path]
		if !ok {
			continue
		}
		if generated[absPath(path)] {
			slog.Warn("skipping file that is another transcript's output", "file", filepath.Base(path))
			continue
		}
		byOutput[out] = append(byOutput[out], path)
	}

	outputs := make(map[string]string, len(naive))
	taken := make(map[string]string)
	kept := make(map[string]bool)
	for out, inputs := range byOutput {
		for _, path := range inputs {
			kept[absPath(path)] = true
		}
		if len(inputs) == 1 {
			outputs[inputs[0]] = out
			continue
		}
		for _, path := range inputs {
			outputs[path] = filepath.Join(outputDir, filepath.Base(path)+".ass")
		}
	}
	for _, path := range files {
		out, ok := outputs[path]
		if !ok {
			continue
		}
		key := absPath(out)
		if other, dup := taken[key]; dup {
			return nil, fmt.Errorf("%w: %s and %s both write %s",
				ErrOutputConflict, filepath.Base(other), filepath.Base(path), out)
		}
		if kept[key] {
			return nil, fmt.Errorf("%w: %s would overwrite a transcript", ErrOutputConflict, out)
		}
		taken[key] = path
	}
	return outputs, nil
}

// RunBatch captions every transcript found in opts.InputDir. A failing file
// does not stop the others; the returned error summarizes the failures.
func RunBatch(ctx context.Context, opts BatchOptions) (*BatchReport, error) {
	files, err := ListTranscripts(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		slog.Warn("no transcripts found", "dir", opts.InputDir)
		return &BatchReport{}, nil
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(opts.InputDir, "captions")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	slog.Info("found transcripts", "count", len(files), "output_dir", outputDir)

	outputs, err := planOutputs(files, outputDir)
	if err != nil {
		return nil, err
	}

	jobs := make([]Options, 0, len(files))
	for _, path := range files {
		out, ok := outputs[path]
		if !ok {
			continue
		}
		jobs = append(jobs, Options{
			InputPath:  path,
			OutputPath: out,
			Config:     opts.Config,
			Seed:       SeedFor(opts.Seed, filepath.Base(path)),
			Source:     opts.Source,
			Exports:    opts.Exports,
			SaveJSON:   opts.SaveJSON,
			SkipEmpty:  opts.SkipEmpty,
		})
	}
	if len(jobs) == 0 {
		slog.Warn("no transcripts left after skipping generated captions", "dir", opts.InputDir)
		return &BatchReport{}, nil
	}

	var results []FileResult
	if !opts.NoAsync && opts.MaxConcurrent > 1 && len(jobs) > 1 {
		results, err = processConcurrent(ctx, jobs, opts)
	} else {
		results, err = processSequential(ctx, jobs, opts)
	}
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Results: results}
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%d of %d transcripts failed", len(failed), len(results))
	}
	return report, nil
}

package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ChheanSilapin/yt-tool/internal/config"
	"github.com/ChheanSilapin/yt-tool/internal/export"
	"github.com/ChheanSilapin/yt-tool/internal/pipeline"
	"github.com/ChheanSilapin/yt-tool/internal/transcript"
)

// ErrOutputIsInput is returned when the document would replace its own transcript.
var ErrOutputIsInput = errors.New("output path is the input transcript")

// karaokeExt names documents whose plain <stem>.ass would clash with the
// transcript they were made from.
const karaokeExt = ".karaoke.ass"

// Options configures the captioning of one transcript.
type Options struct {
	InputPath  string
	OutputPath string // default: <input>.ass, or <input>.karaoke.ass for .ass transcripts
	Config     *config.Config
	Seed       uint64
	// Source reads the transcript. Nil means transcript.FileSource.
	Source    transcript.Source
	Exports   []export.Format
	SaveJSON  bool
	SkipEmpty bool
}

// Outcome describes what Run produced.
type Outcome struct {
	Input   string
	Output  string
	Seed    uint64
	Words   int
	Cues    int
	Skipped bool
	Extras  []string
}

// Run is the top-level orchestrator for a single transcript: read words,
// run the caption pipeline, write the document and any companion files.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	inputPath := opts.InputPath

	outputASS := opts.OutputPath
	if outputASS == "" {
		outputASS = outputPathFor(inputPath, filepath.Dir(inputPath))
	} else if samePath(outputASS, inputPath) {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, outputASS)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	src := opts.Source
	if src == nil {
		src = transcript.FileSource{}
	}

	slog.Info("processing file", "input", filepath.Base(inputPath), "seed", opts.Seed)

	words, err := src.Words(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	result, err := pipeline.Process(words, pipeline.Options{Config: cfg, Seed: opts.Seed})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(inputPath), err)
	}

	slog.Debug("pipeline complete",
		"input_words", result.InputWords,
		"words", len(result.Words),
		"chunks", len(result.Chunks),
		"cues", len(result.Cues))

	outcome := &Outcome{
		Input:  inputPath,
		Output: outputASS,
		Seed:   opts.Seed,
		Words:  len(result.Words),
		Cues:   len(result.Cues),
	}

	if result.Empty() {
		slog.Warn("nothing to caption", "input", filepath.Base(inputPath))
		if opts.SkipEmpty {
			outcome.Skipped = true
			return outcome, nil
		}
	}

	if err := writeFileAtomic(outputASS, []byte(result.Document)); err != nil {
		return nil, fmt.Errorf("write subtitle file: %w", err)
	}
	slog.Info("subtitle file saved", "path", outputASS, "cues", len(result.Cues))

	if opts.SaveJSON {
		jsonPath := trimExt(outputASS) + ".words.json"
		if err := saveJSON(jsonPath, result.Words); err != nil {
			slog.Warn("failed to save JSON", "err", err)
		} else {
			outcome.Extras = append(outcome.Extras, jsonPath)
		}
	}

	if len(opts.Exports) > 0 && !result.Empty() {
		upper, err := config.UpperCaser(cfg.Language)
		if err != nil {
			return nil, err
		}
		for _, f := range opts.Exports {
			path := trimExt(outputASS) + f.Ext()
			var buf bytes.Buffer
			if err := export.Write(&buf, f, result, upper); err != nil {
				return nil, fmt.Errorf("export %s: %w", f, err)
			}
			if err := writeFileAtomic(path, buf.Bytes()); err != nil {
				return nil, fmt.Errorf("write %s file: %w", f, err)
			}
			slog.Info("companion file saved", "path", path, "format", string(f))
			outcome.Extras = append(outcome.Extras, path)
		}
	}

	return outcome, nil
}

func saveJSON(path string, words []pipeline.Word) error {
	data, err := json.MarshalIndent(words, "", "    ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// outputPathFor places the document of input in dir. A transcript that is
// itself <stem>.ass gets <stem>.karaoke.ass instead.
func outputPathFor(input, dir string) string {
	stem := trimExt(filepath.Base(input))
	out := filepath.Join(dir, stem+".ass")
	if samePath(out, input) {
		out = filepath.Join(dir, stem+karaokeExt)
	}
	return out
}

func samePath(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

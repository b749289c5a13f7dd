package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChheanSilapin/yt-tool/internal/pipeline"
)

func TestSeedFor(t *testing.T) {
	if SeedFor(1, "a.json") != SeedFor(1, "a.json") {
		t.Error("SeedFor should be deterministic")
	}
	if SeedFor(1, "a.json") == SeedFor(1, "b.json") {
		t.Error("different files should get different seeds")
	}
	if SeedFor(1, "a.json") == SeedFor(2, "a.json") {
		t.Error("different batch seeds should give different file seeds")
	}
}

func TestListTranscripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.srt", "video.mp4", "notes.txt"} {
		writeInput(t, dir, name, "")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListTranscripts(dir)
	if err != nil {
		t.Fatalf("ListTranscripts() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.srt"), filepath.Join(dir, "b.json")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestRunBatch_CollectsFailures(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "one.json", sampleJSON)
	writeInput(t, dir, "two.json", sampleJSON)
	writeInput(t, dir, "bad.json", `[{"word": "x"}]`)

	report, err := RunBatch(context.Background(), BatchOptions{
		InputDir:      dir,
		Seed:          5,
		MaxConcurrent: 2,
	})
	if err == nil {
		t.Fatal("expected batch error for the bad transcript")
	}
	if report == nil || len(report.Results) != 3 {
		t.Fatalf("expected 3 results, got %+v", report)
	}
	failed := report.Failed()
	if len(failed) != 1 || filepath.Base(failed[0].Input) != "bad.json" {
		t.Errorf("failed = %+v, want only bad.json", failed)
	}

	for _, name := range []string{"one.ass", "two.ass"} {
		if _, err := os.Stat(filepath.Join(dir, "captions", name)); err != nil {
			t.Errorf("expected %s in captions dir: %v", name, err)
		}
	}
}

func TestRunBatch_SequentialMatchesConcurrent(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json", "c.json", "d.json"} {
		writeInput(t, dir, name, sampleJSON)
	}

	seqDir := filepath.Join(t.TempDir(), "seq")
	conDir := filepath.Join(t.TempDir(), "con")

	if _, err := RunBatch(context.Background(), BatchOptions{InputDir: dir, OutputDir: seqDir, Seed: 8, NoAsync: true}); err != nil {
		t.Fatalf("sequential batch: %v", err)
	}
	if _, err := RunBatch(context.Background(), BatchOptions{InputDir: dir, OutputDir: conDir, Seed: 8, MaxConcurrent: 3}); err != nil {
		t.Fatalf("concurrent batch: %v", err)
	}

	for _, name := range []string{"a.ass", "b.ass", "c.ass", "d.ass"} {
		if readFile(t, filepath.Join(seqDir, name)) != readFile(t, filepath.Join(conDir, name)) {
			t.Errorf("%s differs between sequential and concurrent runs", name)
		}
	}
}

func TestRunBatch_EmptyDir(t *testing.T) {
	report, err := RunBatch(context.Background(), BatchOptions{InputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("empty dir should not fail, got %v", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("expected no results, got %d", len(report.Results))
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.json", sampleJSON)
	writeInput(t, dir, "b.json", sampleJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := RunBatch(ctx, BatchOptions{InputDir: dir, MaxConcurrent: 2}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRunBatch_SameStemKeepsBoth(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "clip.json", "")
	writeInput(t, dir, "clip.srt", "")
	src := staticSource{words: []pipeline.Word{{Text: "hi", Start: 0, End: 0.5}}}

	report, err := RunBatch(context.Background(), BatchOptions{InputDir: dir, Source: src, MaxConcurrent: 2})
	if err != nil {
		t.Fatalf("RunBatch() error = %v", err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(report.Results))
	}
	if report.Results[0].Outcome.Output == report.Results[1].Outcome.Output {
		t.Errorf("both transcripts wrote %s", report.Results[0].Outcome.Output)
	}
	for _, name := range []string{"clip.json.ass", "clip.srt.ass"} {
		if _, err := os.Stat(filepath.Join(dir, "captions", name)); err != nil {
			t.Errorf("expected %s in captions dir: %v", name, err)
		}
	}
}

func TestRunBatch_OutputIntoInputDir(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "clip.json", sampleJSON)
	words := writeInput(t, dir, "words.ass", "original")
	src := staticSource{words: []pipeline.Word{{Text: "hi", Start: 0, End: 0.5}}}

	for run := 1; run <= 2; run++ {
		report, err := RunBatch(context.Background(), BatchOptions{InputDir: dir, OutputDir: dir, Source: src, NoAsync: true})
		if err != nil {
			t.Fatalf("run %d: RunBatch() error = %v", run, err)
		}
		if len(report.Results) != 2 {
			t.Errorf("run %d: results = %d, want 2 (generated captions must not be read back)", run, len(report.Results))
		}
	}

	if got := readFile(t, words); got != "original" {
		t.Errorf("source transcript was overwritten: %q", got)
	}
	for _, name := range []string{"clip.ass", "words.karaoke.ass"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "words.karaoke.karaoke.ass")); !os.IsNotExist(err) {
		t.Errorf("generated captions were captioned again, stat err = %v", err)
	}
}

func TestPlanOutputs_Conflict(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "clip.json"),
		filepath.Join(dir, "clip.json.ass"),
		filepath.Join(dir, "clip.srt"),
	}

	_, err := planOutputs(files, dir)
	if !errors.Is(err, ErrOutputConflict) {
		t.Errorf("error = %v, want ErrOutputConflict", err)
	}
}

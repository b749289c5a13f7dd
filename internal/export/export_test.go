package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ChheanSilapin/yt-tool/internal/config"
	"github.com/ChheanSilapin/yt-tool/internal/pipeline"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func sampleResult(t *testing.T) *pipeline.Result {
	t.Helper()
	cfg := config.Default()
	cfg.Chunk = config.ChunkBounds{Min: 2, Max: 2}
	words := []pipeline.Word{
		{Text: "a", Start: 0, End: 0.8},
		{Text: "b", Start: 1, End: 1.5},
		{Text: "c", Start: 2, End: 2.5},
		{Text: "d", Start: 3, End: 3.75},
	}
	result, err := pipeline.Process(words, pipeline.Options{Config: cfg})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	return result
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"srt", FormatSRT, false},
		{" VTT ", FormatWebVTT, false},
		{"ass", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSubtitles_OneItemPerChunk(t *testing.T) {
	subs := Subtitles(sampleResult(t), cases.Upper(language.Und))

	if len(subs.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(subs.Items))
	}

	first, second := subs.Items[0], subs.Items[1]
	if first.StartAt != 0 || first.EndAt != 2*time.Second {
		t.Errorf("first item = %v-%v, want 0s-2s", first.StartAt, first.EndAt)
	}
	if second.StartAt != 2*time.Second || second.EndAt != 3750*time.Millisecond {
		t.Errorf("second item = %v-%v, want 2s-3.75s", second.StartAt, second.EndAt)
	}
	if got := first.String(); got != "A B" {
		t.Errorf("first item text = %q, want %q", got, "A B")
	}
}

func TestWrite(t *testing.T) {
	result := sampleResult(t)
	upper := cases.Upper(language.Und)

	var srt bytes.Buffer
	if err := Write(&srt, FormatSRT, result, upper); err != nil {
		t.Fatalf("Write(srt) error = %v", err)
	}
	if !strings.Contains(srt.String(), "00:00:02,000 --> 00:00:03,750") {
		t.Errorf("SRT output missing second cue timing:\n%s", srt.String())
	}
	if strings.Contains(srt.String(), "Highlight") {
		t.Errorf("SRT output should not carry karaoke markup:\n%s", srt.String())
	}

	var vtt bytes.Buffer
	if err := Write(&vtt, FormatWebVTT, result, upper); err != nil {
		t.Fatalf("Write(vtt) error = %v", err)
	}
	if !strings.HasPrefix(vtt.String(), "WEBVTT") {
		t.Errorf("WebVTT output should start with header:\n%s", vtt.String())
	}
	if !strings.Contains(vtt.String(), "C D") {
		t.Errorf("WebVTT output missing chunk text:\n%s", vtt.String())
	}
}

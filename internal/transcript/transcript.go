// Package transcript reads word-level transcripts produced by a speech
// recognizer into pipeline words.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChheanSilapin/yt-tool/internal/pipeline"
)

var (
	ErrInvalidWordRecord = errors.New("invalid word record")
	ErrUnsupportedFormat = errors.New("unsupported transcript format")
)

// Source supplies the words of one transcript. Implementations must not
// share mutable state between calls.
type Source interface {
	Words(ctx context.Context, path string) ([]pipeline.Word, error)
}

// FileSource reads transcripts from disk, picking the decoder by extension.
type FileSource struct{}

// Words implements Source.
func (FileSource) Words(ctx context.Context, path string) ([]pipeline.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(path)
}

// Supported reports whether path has an extension ReadFile understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".srt", ".vtt", ".ass", ".ssa":
		return true
	}
	return false
}

// ReadFile reads a JSON transcript or a word-level subtitle file.
func ReadFile(path string) ([]pipeline.Word, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open transcript: %w", err)
		}
		defer f.Close()
		return ReadJSON(f)
	case ".srt", ".vtt", ".ass", ".ssa":
		return readSubtitleFile(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// wordRecord accepts both the "word" key (faster-whisper, WhisperX) and the
// "text" key (ElevenLabs). Pointers tell a missing timestamp from zero.
type wordRecord struct {
	Word  *string  `json:"word"`
	Text  *string  `json:"text"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
	Type  string   `json:"type"` // "word", "spacing", "audio_event"; empty means word
}

type segmentRecord struct {
	Words []wordRecord `json:"words"`
}

type transcriptDoc struct {
	Words    []wordRecord    `json:"words"`
	Segments []segmentRecord `json:"segments"`
}

// ReadJSON decodes any of the supported JSON layouts:
//
//	[{"word": " hi", "start": 0.0, "end": 0.4}, ...]
//	{"words": [{"text": "hi", "start": 0.0, "end": 0.4, "type": "word"}, ...]}
//	{"segments": [{"words": [{"word": " hi", "start": 0.0, "end": 0.4}]}]}
func ReadJSON(r io.Reader) ([]pipeline.Word, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []wordRecord
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
	case '{':
		var doc transcriptDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse transcript: %w", err)
		}
		records = doc.Words
		if len(records) == 0 {
			for _, seg := range doc.Segments {
				records = append(records, seg.Words...)
			}
		}
	default:
		return nil, fmt.Errorf("%w: expected a JSON array or object", ErrUnsupportedFormat)
	}

	return convertRecords(records)
}

func convertRecords(records []wordRecord) ([]pipeline.Word, error) {
	words := make([]pipeline.Word, 0, len(records))
	for i, rec := range records {
		if rec.Type != "" && rec.Type != "word" {
			continue
		}
		if rec.Start == nil || rec.End == nil {
			return nil, fmt.Errorf("%w: record %d has no start or end time", ErrInvalidWordRecord, i)
		}

		var text string
		switch {
		case rec.Word != nil:
			text = *rec.Word
		case rec.Text != nil:
			text = *rec.Text
		}

		words = append(words, pipeline.Word{Text: text, Start: *rec.Start, End: *rec.End})
	}
	return words, nil
}

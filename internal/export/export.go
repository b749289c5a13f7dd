// Package export writes the chunked captions in plain subtitle formats,
// one item per chunk without karaoke markup.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ChheanSilapin/yt-tool/internal/pipeline"

	"github.com/asticode/go-astisub"
	"golang.org/x/text/cases"
)

// Format is a companion subtitle format.
type Format string

const (
	FormatSRT    Format = "srt"
	FormatWebVTT Format = "vtt"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSRT, FormatWebVTT:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want srt or vtt)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Subtitles builds one item per chunk. An item spans from the chunk's first
// word to the end of its last cue, so consecutive chunks meet without gaps
// just like the karaoke document.
func Subtitles(result *pipeline.Result, upper cases.Caser) *astisub.Subtitles {
	subs := astisub.NewSubtitles()

	cue := 0
	for _, chunk := range result.Chunks {
		if len(chunk) == 0 {
			continue
		}
		cue += len(chunk)
		end := chunk[len(chunk)-1].End
		if cue-1 < len(result.Cues) {
			end = result.Cues[cue-1].End
		}

		parts := make([]string, len(chunk))
		for i, w := range chunk {
			parts[i] = upper.String(w.Text)
		}

		subs.Items = append(subs.Items, &astisub.Item{
			StartAt: seconds(chunk[0].Start),
			EndAt:   seconds(end),
			Lines:   []astisub.Line{{Items: []astisub.LineItem{{Text: strings.Join(parts, " ")}}}},
		})
	}

	return subs
}

// Write encodes the chunk captions of result to w.
func Write(w io.Writer, f Format, result *pipeline.Result, upper cases.Caser) error {
	subs := Subtitles(result, upper)
	switch f {
	case FormatSRT:
		return subs.WriteToSRT(w)
	case FormatWebVTT:
		return subs.WriteToWebVTT(w)
	}
	return fmt.Errorf("unknown export format %q", f)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}

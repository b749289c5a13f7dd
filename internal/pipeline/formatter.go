package pipeline

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

const (
	styleDefault   = "Default"
	styleHighlight = "Highlight"
)

// formatASSTime converts seconds to the ASS time format H:MM:SS.CC.
// Hours are not padded; the value is rounded to the nearest centisecond.
func formatASSTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	cs := int64(math.Round(seconds * 100))
	hours := cs / 360000
	minutes := cs % 360000 / 6000
	secs := cs % 6000 / 100
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, cs%100)
}

// sanitizeText keeps recognizer output from opening override blocks.
func sanitizeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

// renderCueText joins the chunk's words, switching to the Highlight style
// for the word at highlight and back to Default right after it.
func renderCueText(chunk Chunk, highlight int, upper cases.Caser) string {
	parts := make([]string, len(chunk))
	for i, w := range chunk {
		text := sanitizeText(upper.String(strings.TrimSpace(w.Text)))
		if i == highlight {
			text = "{\\r" + styleHighlight + "}" + text + "{\\r" + styleDefault + "}"
		}
		parts[i] = text
	}
	return strings.Join(parts, " ")
}

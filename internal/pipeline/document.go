package pipeline

import (
	"fmt"
	"strings"

	"github.com/ChheanSilapin/yt-tool/internal/config"
)

const (
	styleFormat = "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding"
	eventFormat = "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text"
)

// RenderDocument writes a complete ASS document: script info, the Default
// and Highlight styles, then one Dialogue line per cue. Style colors must
// already be resolved (see config.StyleConfig.Resolved).
func RenderDocument(style config.StyleConfig, cues []Cue) string {
	var sb strings.Builder

	sb.WriteString("[Script Info]\n")
	sb.WriteString("ScriptType: v4.00+\n")
	fmt.Fprintf(&sb, "PlayResX: %d\n", style.PlayResX)
	fmt.Fprintf(&sb, "PlayResY: %d\n", style.PlayResY)
	sb.WriteByte('\n')

	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString(styleFormat + "\n")
	// Default: outlined text, no box (BorderStyle 1).
	fmt.Fprintf(&sb, "Style: %s,%s,%d,%s,%s,%s,%s,-1,0,1,2,0,2,10,10,%d,1\n",
		styleDefault, style.FontName, style.FontSize,
		style.PrimaryColor, style.SecondaryColor, style.OutlineColor, style.OutlineColor,
		style.MarginV)
	// Highlight: same text on an opaque box (BorderStyle 3).
	fmt.Fprintf(&sb, "Style: %s,%s,%d,%s,%s,%s,%s,-1,0,3,8,0,2,10,10,%d,1\n",
		styleHighlight, style.FontName, style.FontSize,
		style.PrimaryColor, style.SecondaryColor, style.HighlightColor, style.HighlightColor,
		style.MarginV)
	sb.WriteByte('\n')

	sb.WriteString("[Events]\n")
	sb.WriteString(eventFormat + "\n")
	for _, cue := range cues {
		fmt.Fprintf(&sb, "Dialogue: 0,%s,%s,%s,,0,0,0,,%s\n",
			formatASSTime(cue.Start), formatASSTime(cue.End), cue.Style, cue.Text)
	}

	return sb.String()
}

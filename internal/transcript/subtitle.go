package transcript

import (
	"fmt"

	"github.com/ChheanSilapin/yt-tool/internal/pipeline"

	"github.com/asticode/go-astisub"
)

// readSubtitleFile treats every subtitle item as one word, the layout
// recognizers emit when asked for one word per line.
func readSubtitleFile(path string) ([]pipeline.Word, error) {
	st, err := astisub.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open subtitles: %w", err)
	}

	words := make([]pipeline.Word, 0, len(st.Items))
	for _, item := range st.Items {
		words = append(words, pipeline.Word{
			Text:  item.String(),
			Start: item.StartAt.Seconds(),
			End:   item.EndAt.Seconds(),
		})
	}
	return words, nil
}

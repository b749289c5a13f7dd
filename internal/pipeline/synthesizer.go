package pipeline

import "golang.org/x/text/cases"

// SynthesizeCues emits one cue per word of every chunk, highlighting that
// word. Each cue runs until the next word starts, so the highlight never
// leaves a blank gap: inside a chunk it ends at the following word, at a
// chunk boundary it ends at the first word of the next chunk. Only the very
// last word falls back to its own end time.
func SynthesizeCues(chunks []Chunk, upper cases.Caser) []Cue {
	var cues []Cue

	for ci, chunk := range chunks {
		for h, word := range chunk {
			end := word.End
			switch {
			case h < len(chunk)-1:
				end = chunk[h+1].Start
			case ci+1 < len(chunks) && len(chunks[ci+1]) > 0:
				end = chunks[ci+1][0].Start
			}

			cues = append(cues, Cue{
				Start: word.Start,
				End:   end,
				Style: styleDefault,
				Text:  renderCueText(chunk, h, upper),
			})
		}
	}

	return cues
}

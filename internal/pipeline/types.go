package pipeline

// Word is a single recognized word with its timing in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Chunk is a contiguous group of words shown on screen together.
type Chunk []Word

// Cue is one timed Dialogue line of the output document.
type Cue struct {
	Start float64
	End   float64
	Style string
	Text  string
}

// Result is everything produced by one Process call.
type Result struct {
	Document string
	Chunks   []Chunk
	Cues     []Cue
	// InputWords is the number of raw words handed to Process, Words the
	// number left after normalization.
	InputWords int
	Words      []Word
}

// Empty reports whether there was nothing to caption.
func (r *Result) Empty() bool {
	return len(r.Cues) == 0
}

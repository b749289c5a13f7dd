package pipeline

import (
	"fmt"

	"github.com/ChheanSilapin/yt-tool/internal/config"
)

// Options configures one Process call.
type Options struct {
	Config *config.Config
	// Sizes draws chunk sizes. Nil means a source seeded with Seed.
	Sizes SizeSource
	Seed  uint64
}

// Process runs the full caption pipeline on a word-level transcript:
// normalize, validate, chunk, synthesize cues and render the document.
// The configuration is checked before any word is looked at. An empty
// transcript is not an error; it yields a document with headers only.
func Process(words []Word, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	upper, err := config.UpperCaser(cfg.Language)
	if err != nil {
		return nil, err
	}
	style, err := cfg.Style.Resolved()
	if err != nil {
		return nil, err
	}

	sizes := opts.Sizes
	if sizes == nil {
		sizes = NewSeededSource(opts.Seed)
	}

	normalized := NormalizeWords(words)
	if err := ValidateWords(normalized); err != nil {
		return nil, fmt.Errorf("validate words: %w", err)
	}

	chunks := ChunkWords(normalized, cfg.Chunk, sizes)
	cues := SynthesizeCues(chunks, upper)

	return &Result{
		Document:   RenderDocument(style, cues),
		Chunks:     chunks,
		Cues:       cues,
		InputWords: len(words),
		Words:      normalized,
	}, nil
}

package pipeline

import (
	"math/rand/v2"

	"github.com/ChheanSilapin/yt-tool/internal/config"
)

// SizeSource draws chunk sizes.
type SizeSource interface {
	// IntRange returns an integer in [min, max], both inclusive.
	IntRange(min, max int) int
}

type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a SizeSource whose draws are fully determined by seed.
func NewSeededSource(seed uint64) SizeSource {
	return &seededSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *seededSource) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

// ChunkWords partitions words into consecutive chunks whose sizes are drawn
// from src within bounds. The last chunk takes whatever words remain. Chunks
// share the backing array of words.
func ChunkWords(words []Word, bounds config.ChunkBounds, src SizeSource) []Chunk {
	var chunks []Chunk

	for i := 0; i < len(words); {
		size := src.IntRange(bounds.Min, bounds.Max)
		if size < 1 {
			size = 1
		}
		end := min(i+size, len(words))
		chunks = append(chunks, Chunk(words[i:end:end]))
		i = end
	}

	return chunks
}

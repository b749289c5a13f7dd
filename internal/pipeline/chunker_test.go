package pipeline

import (
	"testing"

	"github.com/ChheanSilapin/yt-tool/internal/config"
)

// fixedSizes replays sizes in order, repeating the last one.
type fixedSizes struct {
	sizes []int
	next  int
}

func (f *fixedSizes) IntRange(min, max int) int {
	s := f.sizes[len(f.sizes)-1]
	if f.next < len(f.sizes) {
		s = f.sizes[f.next]
		f.next++
	}
	return s
}

func numberedWords(n int) []Word {
	words := make([]Word, n)
	for i := range words {
		words[i] = Word{Text: string(rune('A' + i%26)), Start: float64(i), End: float64(i + 1)}
	}
	return words
}

func chunkSizes(chunks []Chunk) []int {
	out := make([]int, len(chunks))
	for i, c := range chunks {
		out[i] = len(c)
	}
	return out
}

func TestChunkWords_Empty(t *testing.T) {
	chunks := ChunkWords(nil, config.ChunkBounds{Min: 2, Max: 3}, NewSeededSource(1))
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkWords_FixedSizes(t *testing.T) {
	tests := []struct {
		name  string
		words int
		sizes []int
		want  []int
	}{
		{"exact fit", 4, []int{2, 2}, []int{2, 2}},
		{"short tail", 5, []int{3, 3}, []int{3, 2}},
		{"tail smaller than min", 7, []int{3, 3, 3}, []int{3, 3, 1}},
		{"mixed", 8, []int{2, 3, 2, 3}, []int{2, 3, 2, 1}},
		{"single word", 1, []int{3}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkWords(numberedWords(tt.words), config.ChunkBounds{Min: 2, Max: 3}, &fixedSizes{sizes: tt.sizes})
			got := chunkSizes(chunks)
			if len(got) != len(tt.want) {
				t.Fatalf("sizes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("sizes = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestChunkWords_CoversEveryWordInOrder(t *testing.T) {
	words := numberedWords(50)
	chunks := ChunkWords(words, config.ChunkBounds{Min: 2, Max: 5}, NewSeededSource(42))

	var flat []Word
	for i, c := range chunks {
		if len(c) > 5 {
			t.Errorf("chunk %d has %d words, max is 5", i, len(c))
		}
		if i < len(chunks)-1 && len(c) < 2 {
			t.Errorf("chunk %d has %d words, min is 2", i, len(c))
		}
		flat = append(flat, c...)
	}
	if len(flat) != len(words) {
		t.Fatalf("chunks hold %d words, want %d", len(flat), len(words))
	}
	for i := range words {
		if flat[i] != words[i] {
			t.Fatalf("word %d = %+v, want %+v", i, flat[i], words[i])
		}
	}
}

func TestChunkWords_SameSeedSameChunks(t *testing.T) {
	words := numberedWords(40)
	bounds := config.ChunkBounds{Min: 1, Max: 4}

	a := chunkSizes(ChunkWords(words, bounds, NewSeededSource(7)))
	b := chunkSizes(ChunkWords(words, bounds, NewSeededSource(7)))
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("chunk sizes differ at %d: %v vs %v", i, a, b)
		}
	}
}

func TestSeededSource_StaysInRange(t *testing.T) {
	src := NewSeededSource(99)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := src.IntRange(2, 4)
		if n < 2 || n > 4 {
			t.Fatalf("IntRange(2, 4) = %d", n)
		}
		seen[n] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected all of 2..4 to be drawn, saw %v", seen)
	}
	if got := src.IntRange(3, 3); got != 3 {
		t.Errorf("IntRange(3, 3) = %d, want 3", got)
	}
}

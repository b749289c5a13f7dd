package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidWord    = errors.New("invalid word record")
	ErrUnorderedWords = errors.New("words are not ordered by start time")
)

// WordError reports which word failed validation and why.
type WordError struct {
	Index int
	Word  Word
	Err   error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %d (%q %.3f-%.3f): %v", e.Index, e.Word.Text, e.Word.Start, e.Word.End, e.Err)
}

func (e *WordError) Unwrap() error {
	return e.Err
}

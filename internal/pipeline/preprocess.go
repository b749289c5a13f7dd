package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// leadingPunctuation is the set of characters that, when they open a token,
// mean the recognizer split the token off the word before it.
var leadingPunctuation = map[rune]struct{}{
	',':  {},
	'.':  {},
	'?':  {},
	'!':  {},
	';':  {},
	':':  {},
	'\'': {},
}

func startsWithPunctuation(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	_, ok := leadingPunctuation[r]
	return ok
}

func startsWithDigit(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsDigit(r)
}

// currencyGroupPrefix matches a dollar amount waiting for its next
// thousands group, e.g. "$1," or "$12,500,".
var currencyGroupPrefix = regexp.MustCompile(`\$\d{1,3}(,\d{3})*,$`)

// leadingDigits counts the digits at the start of text.
func leadingDigits(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsDigit(r) {
			break
		}
		n++
	}
	return n
}

// shouldMerge decides whether text continues the previously accepted word.
func shouldMerge(prev, text string) bool {
	if startsWithPunctuation(text) {
		return true
	}
	prev = strings.TrimRightFunc(prev, unicode.IsSpace)
	if strings.HasSuffix(prev, "$") && (startsWithDigit(text) || startsWithPunctuation(text)) {
		return true
	}
	// Thousands group split off an amount: "$1," + "000".
	return currencyGroupPrefix.MatchString(prev) && leadingDigits(text) == 3
}

// NormalizeWords repairs recognizer tokenization artifacts: it drops blank
// tokens, folds leading punctuation into the previous word and rejoins
// currency amounts and numbers split across tokens. A merged word keeps the
// start of its first token and takes the end of its last.
//
// The input slice is never modified.
func NormalizeWords(raw []Word) []Word {
	words := make([]Word, 0, len(raw))

	for _, w := range raw {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}

		if n := len(words); n > 0 && shouldMerge(words[n-1].Text, text) {
			prev := words[n-1]
			words[n-1] = Word{
				Text:  strings.TrimRightFunc(prev.Text, unicode.IsSpace) + text,
				Start: prev.Start,
				End:   w.End,
			}
			continue
		}

		words = append(words, Word{Text: text, Start: w.Start, End: w.End})
	}

	return words
}

// ValidateWords checks that every word has usable timestamps and that
// words are ordered by start time.
func ValidateWords(words []Word) error {
	for i, w := range words {
		if err := checkTimestamps(w); err != nil {
			return &WordError{Index: i, Word: w, Err: err}
		}
		if i > 0 && w.Start < words[i-1].Start {
			return &WordError{
				Index: i,
				Word:  w,
				Err:   fmt.Errorf("%w: starts at %.3f before previous word at %.3f", ErrUnorderedWords, w.Start, words[i-1].Start),
			}
		}
	}
	return nil
}

func checkTimestamps(w Word) error {
	for _, v := range []float64{w.Start, w.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: timestamp is not a finite number", ErrInvalidWord)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative timestamp", ErrInvalidWord)
		}
	}
	if w.Start > w.End {
		return fmt.Errorf("%w: start after end", ErrInvalidWord)
	}
	return nil
}

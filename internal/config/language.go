package config

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperCaser returns an upper-casing transformer for the BCP 47 tag lang.
// An empty tag means language-neutral casing. The returned Caser keeps
// state, so each pipeline run needs its own.
func UpperCaser(lang string) (cases.Caser, error) {
	tag := language.Und
	if lang != "" {
		t, err := language.Parse(lang)
		if err != nil {
			return cases.Caser{}, fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, lang, err)
		}
		tag = t
	}
	return cases.Upper(tag), nil
}

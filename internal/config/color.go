package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	assColorPattern  = regexp.MustCompile(`^&[Hh]([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})&?$`)
	htmlColorPattern = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)
)

// ParseColor canonicalizes a color to the ASS &HAABBGGRR form.
//
// Accepted inputs are ASS colors (&HBBGGRR or &HAABBGGRR, optional trailing
// &) and HTML colors (#RRGGBB or #AARRGGBB). HTML alpha is opacity, so it
// is inverted into ASS transparency.
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)

	if m := assColorPattern.FindStringSubmatch(s); m != nil {
		hex := strings.ToUpper(m[1])
		if len(hex) == 6 {
			hex = "00" + hex
		}
		return "&H" + hex, nil
	}

	if m := htmlColorPattern.FindStringSubmatch(s); m != nil {
		hex := strings.ToUpper(m[1])
		alpha := "00"
		if len(hex) == 8 {
			a, _ := strconv.ParseUint(hex[:2], 16, 8)
			alpha = fmt.Sprintf("%02X", 0xFF-a)
			hex = hex[2:]
		}
		rr, gg, bb := hex[0:2], hex[2:4], hex[4:6]
		return "&H" + alpha + bb + gg + rr, nil
	}

	return "", fmt.Errorf("unrecognized color %q (want &HAABBGGRR or #RRGGBB)", s)
}

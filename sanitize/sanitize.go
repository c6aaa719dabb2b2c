package sanitize

import "strings"

var markupEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Sanitize escapes '<' and '>' as HTML entities and removes control
// characters below U+0020, keeping tab, LF and CR. Already-escaped
// input passes through unchanged, so applying Sanitize twice is the
// same as applying it once.
func Sanitize(s string) string {
	return StripControl(markupEscaper.Replace(s))
}

// StripControl removes control characters below U+0020 from s, keeping
// tab, LF and CR. Runes at U+0020 and above pass through untouched.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

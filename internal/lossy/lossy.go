// Package lossy converts byte slices to strings without failing on malformed UTF-8.
package lossy

import (
	"strings"
	"unicode/utf8"
)

// String returns p as a string in which every byte that does not start a
// valid UTF-8 sequence is replaced by utf8.RuneError (U+FFFD).
func String(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}
	var sb strings.Builder
	sb.Grow(len(p) + 8)
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(p[:size])
		}
		p = p[size:]
	}
	return sb.String()
}

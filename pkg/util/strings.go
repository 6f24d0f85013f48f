package util

import "unicode/utf8"

// MaxLogSize is the default maximum size of a value written to a debug log (2KB).
const MaxLogSize = 2 * 1024

const truncatedSuffix = "...(truncated)"

// Truncate caps s at maxSize bytes, appending "...(truncated)" if it was cut.
// The cut never splits a UTF-8 sequence. If maxSize <= 0, MaxLogSize is used.
func Truncate(s string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogSize
	}
	if len(s) <= maxSize {
		return s
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedSuffix
}

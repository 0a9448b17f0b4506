// Package format provides shared text formatting utilities for terminal
// output.
package format

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DisplayWidth returns the visible width of a string in terminal columns,
// accounting for wide characters like CJK and emoji.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens a string to fit within maxWidth display columns,
// appending "..." when truncation occurs.
func Truncate(s string, maxWidth int) string {
	if DisplayWidth(s) <= maxWidth {
		return s
	}

	targetWidth := maxWidth - 3
	if targetWidth < 0 {
		targetWidth = 0
	}

	var b strings.Builder
	width := 0
	for pos := 0; pos < len(s); {
		r, size := utf8.DecodeRuneInString(s[pos:])
		rw := runewidth.RuneWidth(r)
		if width+rw > targetWidth {
			break
		}
		b.WriteString(s[pos : pos+size])
		width += rw
		pos += size
	}
	b.WriteString("...")
	return b.String()
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, targetWidth int) string {
	width := DisplayWidth(s)
	if width >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-width)
}

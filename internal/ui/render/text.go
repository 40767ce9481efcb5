// Package render provides text rendering utilities for TUI components.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and drops invalid UTF-8
// bytes. Tag metadata is untrusted and may carry either.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			// invalid byte
		case r != '\t' && unicode.IsControl(r):
		case r == '\u00a0':
			b.WriteByte(' ')
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for _, r := range s {
		if (r != '\t' && unicode.IsControl(r)) || r == '\u00a0' {
			return true
		}
	}
	return false
}

// Truncate shortens a sanitized string to fit within maxWidth cells, ending
// with "…" when cut. Wide characters (CJK, emoji) count double.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// Pad fills a string with spaces to reach the specified width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Row joins left and right content with at least one space so the result
// spans width cells. Styled strings are measured without escape codes.
func Row(left, right string, width int) string {
	gap := max(width-ansi.StringWidth(left)-ansi.StringWidth(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Clip cuts a styled string to at most width cells, keeping escape codes
// intact.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}

// Duration formats d as m:ss, or h:mm:ss from one hour. Negative durations
// render as 0:00.
func Duration(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// TimePair formats "elapsed / total".
func TimePair(elapsed, total time.Duration) string {
	return Duration(elapsed) + " / " + Duration(total)
}

package strings

import (
	"strings"
)

// MinTruncateLen is the minimum maxLen value for TruncatePost.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// TruncatePost trims a candidate post to at most maxLen characters.
// Surrounding whitespace is dropped; interior newlines survive, posts
// are allowed to span lines. Text that is too long is cut on a rune
// boundary and "..." is appended so the result still reads as prose
// rather than a mid-word chop.
//
// The function operates on runes rather than bytes, so multi-byte
// characters are never split.
//
// If maxLen is less than MinTruncateLen (4), it is clamped to
// MinTruncateLen to leave room for at least one character plus "...".
func TruncatePost(s string, maxLen int) string {
	// Clamp maxLen to prevent a negative slice index below
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxLen {
		return strings.TrimRight(string(runes[:maxLen-3]), " \t\n") + "..."
	}
	return s
}

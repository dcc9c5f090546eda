package list

import "strings"

// Truncate shortens s to at most n runes, ending with an ellipsis when cut.
// Newlines are folded into spaces so a row stays on one line.
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Pad right-pads s with spaces to n runes, truncating when longer.
func Pad(s string, n int) string {
	s = Truncate(s, n)
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// Package controls implements the behavioral half of the dashboard's form
// primitives: character filtering, date masking, filter-bubble state and
// table row actions. Rendering is out of scope; these run before a
// caller's change handler sees the value.
package controls

import "strings"

// Policy filters characters out of an input before the change handler runs.
type Policy int

const (
	None Policy = iota
	// TextOnly strips digits.
	TextOnly
	// NumbersOnly strips everything but digits.
	NumbersOnly
)

// Apply runs the policy and then truncates to maxLength. maxLength <= 0
// means unlimited.
func Apply(p Policy, maxLength int, input string) string {
	var out string
	switch p {
	case TextOnly:
		out = strip(input, isDigit)
	case NumbersOnly:
		out = strip(input, func(r rune) bool { return !isDigit(r) })
	default:
		out = input
	}
	if maxLength > 0 && len([]rune(out)) > maxLength {
		out = string([]rune(out)[:maxLength])
	}
	return out
}

func strip(s string, drop func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !drop(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// DateMask formats raw keystrokes as dd/mm/yyyy, inserting separators
// progressively as digits arrive and capping the output at 10 characters.
// Non-digit input characters are discarded, so pasted values with
// separators in the right places survive unchanged.
func DateMask(input string) string {
	digits := strip(input, func(r rune) bool { return !isDigit(r) })
	if len(digits) > 8 {
		digits = digits[:8]
	}
	var b strings.Builder
	for i, r := range digits {
		if i == 2 || i == 4 {
			b.WriteByte('/')
		}
		b.WriteRune(r)
	}
	return b.String()
}

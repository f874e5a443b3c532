// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"
)

// Name trims surrounding whitespace and collapses internal runs of spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone formats a phone number the way the signup form does: ten-digit
// numbers become "(nnn) nnn-nnnn"; anything longer, or anything entered with
// a leading "+", is reduced to "+" followed by up to fifteen digits.
// Non-digit input characters are dropped.
func Phone(val string) string {
	pattern := "(nnn) nnn-nnnn"
	if len(val) > len(pattern) || strings.HasPrefix(val, "+") {
		pattern = "+" + strings.Repeat("n", 15)
		val = "+" + digitsOnly(val)
	}

	var buf strings.Builder
	pointer := 0
	for i := 0; i < len(pattern) && pointer < len(val); i++ {
		target := pattern[i]
		ch := val[pointer]
		switch {
		case target == ch:
			buf.WriteByte(ch)
			pointer++
		case ch >= '0' && ch <= '9':
			if target == 'n' {
				buf.WriteByte(ch)
				pointer++
			} else {
				// Fill in the literal formatting character and retry the
				// digit against the next pattern slot.
				buf.WriteByte(target)
			}
		default:
			// Neither a digit nor the expected literal; drop it.
			pointer++
			i--
		}
	}
	return buf.String()
}

func digitsOnly(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			buf.WriteByte(s[i])
		}
	}
	return buf.String()
}

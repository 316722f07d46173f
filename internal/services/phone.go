package services

import (
	"fmt"
	"strings"
	"unicode"
)

// FormatPhone renders a phone number in the display format used on
// confirmations and exports: US-style for 10/11-digit numbers, the raw
// input otherwise.
func FormatPhone(p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	digits := digitsOnly(p)
	switch {
	case len(digits) == 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	case len(digits) == 11 && digits[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:])
	}
	return p
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

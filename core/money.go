package core

import (
	"fmt"
	"strings"
)

// FormatINR formats a major-unit amount as an Indian-rupee price string,
// e.g. 129900.5 -> "₹1,29,900.50". Indian digit grouping separates the
// last three digits, then pairs: 12,34,567.
func FormatINR(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	whole := int64(amount)
	// Round the fractional part to two places, carrying into the whole
	// part when it rounds up to 100.
	frac := int64((amount-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/2 + 8)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(digits))
	fmt.Fprintf(&b, ".%02d", frac)
	return b.String()
}

// groupIndian inserts commas into a plain digit string using Indian
// grouping: the rightmost group has three digits, the rest have two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

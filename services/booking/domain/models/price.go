package models

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice reads a display price such as "₹1,299" or "Rs. 499.00" as whole
// currency units. Anything before the first digit is treated as a currency
// prefix and thousands separators are dropped; parsing stops at the first
// other non-digit, so decimals and suffixes are ignored.
// Unparseable input yields 0.
func ParsePrice(s string) int64 {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	s = strings.ReplaceAll(s, ",", "")
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Surcharge is an extra charge added on top of the unit price.
type Surcharge struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Total is the unit price of ref plus every surcharge.
func Total(ref ServiceRef, surcharges ...Surcharge) int64 {
	total := ParsePrice(ref.UnitPrice)
	for _, s := range surcharges {
		total += s.Amount
	}
	return total
}

// FormatPrice renders amount with the rupee sign and Indian digit grouping,
// e.g. 129999 -> "₹1,29,999".
func FormatPrice(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if len(digits) > 3 {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		for i, r := range head {
			if i > 0 && (len(head)-i)%2 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(r)
		}
		b.WriteByte(',')
		b.WriteString(tail)
	} else {
		b.WriteString(digits)
	}

	if neg {
		return "-₹" + b.String()
	}
	return "₹" + b.String()
}

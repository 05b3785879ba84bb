package renderer

import (
	"strings"

	"github.com/chiehmin/etfmon"
)

// SharesString formats a share count with thousands separators.
func SharesString(q etfmon.Quantity) string {
	return groupDigits(q.String())
}

// SignedSharesString formats a share delta with an explicit sign and
// thousands separators, or "-" for zero.
func SignedSharesString(q etfmon.Quantity) string {
	if q.IsZero() {
		return "-"
	}
	if q.IsPositive() {
		return "+" + groupDigits(q.String())
	}
	return groupDigits(q.String())
}

// groupDigits inserts thousands separators into the integer part of a
// plain decimal string, keeping any sign and fractional part.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

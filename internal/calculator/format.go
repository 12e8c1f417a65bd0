package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders d the Brazilian way, with "." grouping thousands and ","
// before the two cent digits: 9999999.99 becomes "9.999.999,99".
func FormatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(cents)
	return b.String()
}

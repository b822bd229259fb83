package ledgerparser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads an amount in any of the notations found in ledger
// exports: "1.234,56", "1,234.56", "12,5", "12.5" and a trailing minus
// ("150,00-"). The second result is false when s holds no number; the
// amount is then zero.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("€", "", " ", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasSuffix(s, "-") {
		negative = true
		s = strings.TrimSuffix(s, "-")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		if strings.Index(s, ".") < strings.Index(s, ",") {
			s = strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		v = v.Neg()
	}
	return v, true
}

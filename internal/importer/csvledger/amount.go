package csvledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// parseAmount reads a money amount in the given style into cents, rounding
// half away from zero. Currency symbols and spaces are ignored.
// "1.234,56" (comma) -> 123456, "-588,74" (comma) -> -58874, "1,234.5" (dot) -> 123450.
func parseAmount(s string, style numberStyle) (int64, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '€', '$', '£', ' ', '\u00a0':
			return -1
		}

		return r
	}, s)

	switch style {
	case commaDecimal:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dotDecimal:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(hundred).Round(0).IntPart(), nil
}

package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice extracts the numeric value of a display price such as "R1999" or "$19.99".
// Every character that is not a digit or a decimal point is dropped and the longest
// numeric prefix of what remains is parsed, so "1.2.3" yields 1.2. Anything without
// digits yields zero.
func ParsePrice(price string) decimal.Decimal {
	var sb strings.Builder
	for _, r := range price {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}

	number := numericPrefix(sb.String())
	if number == "" {
		return decimal.Zero
	}

	value, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero
	}
	return value
}

func numericPrefix(s string) string {
	end := 0
	digits := 0
	seenPoint := false
	for end < len(s) {
		if s[end] == '.' {
			if seenPoint {
				break
			}
			seenPoint = true
		} else {
			digits++
		}
		end++
	}
	if digits == 0 {
		return ""
	}

	prefix := strings.TrimSuffix(s[:end], ".")
	if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	}
	return prefix
}

// Package format renders apartment prices for chat and UI output.
// Prices flow through the system in manwon (10,000 KRW) units.
package format

import (
	"fmt"
	"math"
)

// PriceEok renders a manwon amount as "X.Y억원".
// Zero or NaN means the value is unknown.
func PriceEok(manwon float64) string {
	if manwon == 0 || math.IsNaN(manwon) {
		return "정보 없음"
	}
	return fmt.Sprintf("%.1f억원", manwon/10000)
}

// PriceKor renders a manwon amount as "X억 Y,YYY만원".
func PriceKor(manwon float64) string {
	eok := int(manwon) / 10000
	man := int(manwon) % 10000
	switch {
	case eok > 0 && man > 0:
		return fmt.Sprintf("%d억 %s만원", eok, GroupDigits(man))
	case eok > 0:
		return fmt.Sprintf("%d억원", eok)
	default:
		return fmt.Sprintf("%s만원", GroupDigits(man))
	}
}

// Manwon renders a manwon amount with thousand separators, e.g. "₩12,345만원".
func Manwon(manwon float64) string {
	return fmt.Sprintf("₩%s만원", GroupDigits(int(math.Round(manwon))))
}

// GroupDigits inserts thousand separators, e.g. 12345 -> "12,345".
func GroupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

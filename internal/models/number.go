package models

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way a JSON serializer in a browser does:
// integral values below 1e21 print in full, very large or very small
// magnitudes use an exponent without zero padding (1e+21, 1e-7).
// Non-finite values have no JSON form and render as "null".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

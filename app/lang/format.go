package lang

import (
	"math"
	"strconv"
	"strings"
)

// String renders n for display. Whole integers use k/m suffixes when they
// are exact multiples of a thousand or a million; rationals and floats are
// truncated into magnitude bands.
func (n Number) String() string {
	switch n.kind {
	case KindInt:
		return formatInt(n.i)
	case KindRat:
		return formatFloat(n.r.Float64())
	}
	return formatFloat(n.f)
}

// Exact renders n without loss: rationals as num/den.
func (n Number) Exact() string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindRat:
		return n.r.String()
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func formatInt(v int64) string {
	abs := absU(v)
	switch {
	case abs >= 1_000_000 && abs%1_000_000 == 0:
		return strconv.FormatInt(v/1_000_000, 10) + "m"
	case abs >= 1_000 && abs%1_000 == 0:
		return strconv.FormatInt(v/1_000, 10) + "k"
	}
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e9 || abs < 1e-3:
		return formatSci(v)
	case abs >= 1e6:
		return plain(math.Trunc(v/1e3)/1e3) + "m"
	case abs >= 1e3:
		return plain(math.Trunc(v)/1e3) + "k"
	case abs >= 1:
		return plain(math.Trunc(v*1e3) / 1e3)
	}
	return plain(math.Trunc(v*1e6) / 1e6)
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatSci writes three decimals of mantissa with a bare exponent, as in
// 1.235e9 or 1.000e-4.
func formatSci(v float64) string {
	s := strconv.FormatFloat(v, 'e', 3, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "e" + exp
}

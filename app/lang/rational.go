package lang

import (
	"errors"
	"math"
	"math/bits"
	"strconv"
)

var errOverflow = errors.New("rational: 64-bit overflow")

// Rational is an exact fraction kept in lowest terms. The sign is carried by
// Num and Den is never zero.
type Rational struct {
	Num int64
	Den uint64
}

// NewRational builds num/den reduced to lowest terms.
func NewRational(num int64, den uint64) (Rational, error) {
	if den == 0 {
		return Rational{}, ErrDivByZero
	}
	r, _ := reduce(absU(num), num < 0, den)
	return r, nil
}

// mustRat is NewRational for constant tables.
func mustRat(num int64, den uint64) Rational {
	r, err := NewRational(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// RatInt returns n/1.
func RatInt(n int64) Rational {
	return Rational{Num: n, Den: 1}
}

// Inverse returns 1/v.
func Inverse(v int64) (Rational, error) {
	if v == 0 {
		return Rational{}, ErrDivByZero
	}
	sign := int64(1)
	if v < 0 {
		sign = -1
	}
	return Rational{Num: sign, Den: absU(v)}, nil
}

// Invert returns 1/r.
func (r Rational) Invert() (Rational, error) {
	if r.Num == 0 {
		return Rational{}, ErrDivByZero
	}
	num, ok := signed(r.Den, r.Num < 0)
	if !ok {
		return Rational{}, errOverflow
	}
	return Rational{Num: num, Den: absU(r.Num)}, nil
}

func (r Rational) IsInt() bool { return r.Den == 1 }

func (r Rational) Sign() int {
	switch {
	case r.Num < 0:
		return -1
	case r.Num > 0:
		return 1
	}
	return 0
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return strconv.FormatInt(r.Num, 10) + "/" + strconv.FormatUint(r.Den, 10)
}

// Neg returns -r. It fails only for a numerator of math.MinInt64.
func (r Rational) Neg() (Rational, bool) {
	if r.Num == math.MinInt64 {
		return Rational{}, false
	}
	return Rational{Num: -r.Num, Den: r.Den}, true
}

// Add returns r+o over the LCM of both denominators, reduced. The boolean is
// false when an intermediate value overflows 64 bits.
func (r Rational) Add(o Rational) (Rational, bool) {
	den, ok := lcm(r.Den, o.Den)
	if !ok {
		return Rational{}, false
	}
	x, ok := scale(r.Num, den/r.Den)
	if !ok {
		return Rational{}, false
	}
	y, ok := scale(o.Num, den/o.Den)
	if !ok {
		return Rational{}, false
	}
	sum, ok := addInt64(x, y)
	if !ok {
		return Rational{}, false
	}
	return reduce(absU(sum), sum < 0, den)
}

// Sub returns r-o, see Add.
func (r Rational) Sub(o Rational) (Rational, bool) {
	n, ok := o.Neg()
	if !ok {
		return Rational{}, false
	}
	return r.Add(n)
}

// Mul returns r*o, cross-reducing before multiplying.
func (r Rational) Mul(o Rational) (Rational, bool) {
	if r.Num == 0 || o.Num == 0 {
		return Rational{Num: 0, Den: 1}, true
	}
	an, bn := absU(r.Num), absU(o.Num)
	g1, g2 := gcd(an, o.Den), gcd(bn, r.Den)
	hi, num := bits.Mul64(an/g1, bn/g2)
	if hi != 0 {
		return Rational{}, false
	}
	hi, den := bits.Mul64(r.Den/g2, o.Den/g1)
	if hi != 0 {
		return Rational{}, false
	}
	return reduce(num, (r.Num < 0) != (o.Num < 0), den)
}

// Quo returns r/o. The caller rejects a zero divisor.
func (r Rational) Quo(o Rational) (Rational, bool) {
	if o.Num == 0 {
		return Rational{}, false
	}
	inv := Rational{Den: absU(o.Num)}
	// Build the reciprocal magnitude first; the sign is applied by Mul.
	mag, ok := signed(o.Den, o.Num < 0)
	if !ok {
		return Rational{}, false
	}
	inv.Num = mag
	return r.Mul(inv)
}

// Pow raises r to an integer power, reporting false on overflow or on a
// negative power of zero.
func (r Rational) Pow(exp int32) (Rational, bool) {
	abs := uint32(exp)
	if exp < 0 {
		abs = uint32(-int64(exp))
	}
	num, ok := powInt64(r.Num, abs)
	if !ok {
		return Rational{}, false
	}
	den, ok := powUint64(r.Den, abs)
	if !ok {
		return Rational{}, false
	}
	if exp >= 0 {
		return Rational{Num: num, Den: den}, true
	}
	if num == 0 {
		return Rational{}, false
	}
	n, ok := signed(den, num < 0)
	if !ok {
		return Rational{}, false
	}
	return Rational{Num: n, Den: absU(num)}, true
}

func reduce(mag uint64, neg bool, den uint64) (Rational, bool) {
	g := gcd(mag, den)
	num, ok := signed(mag/g, neg)
	if !ok {
		return Rational{}, false
	}
	return Rational{Num: num, Den: den / g}, true
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a/gcd(a, b), b)
	return lo, hi == 0
}

func absU(n int64) uint64 {
	if n < 0 {
		return uint64(-(n + 1)) + 1
	}
	return uint64(n)
}

// signed applies a sign to a magnitude if the result fits an int64.
func signed(mag uint64, neg bool) (int64, bool) {
	if neg {
		switch {
		case mag > 1<<63:
			return 0, false
		case mag == 1<<63:
			return math.MinInt64, true
		}
		return -int64(mag), true
	}
	if mag > math.MaxInt64 {
		return 0, false
	}
	return int64(mag), true
}

func scale(n int64, m uint64) (int64, bool) {
	if m > math.MaxInt64 {
		return 0, false
	}
	return mulInt64(n, int64(m))
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func powInt64(base int64, exp uint32) (int64, bool) {
	result := int64(1)
	var ok bool
	for exp > 0 {
		if exp&1 == 1 {
			if result, ok = mulInt64(result, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			if base, ok = mulInt64(base, base); !ok {
				return 0, false
			}
		}
	}
	return result, true
}

func powUint64(base uint64, exp uint32) (uint64, bool) {
	result := uint64(1)
	for exp > 0 {
		if exp&1 == 1 {
			hi, lo := bits.Mul64(result, base)
			if hi != 0 {
				return 0, false
			}
			result = lo
		}
		exp >>= 1
		if exp > 0 {
			hi, lo := bits.Mul64(base, base)
			if hi != 0 {
				return 0, false
			}
			base = lo
		}
	}
	return result, true
}

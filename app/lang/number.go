package lang

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// NumberKind tags the variant held by a Number.
type NumberKind int

const (
	KindInt NumberKind = iota
	KindRat
	KindFloat
)

func (k NumberKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindRat:
		return "rational"
	case KindFloat:
		return "float"
	}
	return "unknown"
}

// Number is an integer, an exact rational or a float. Exact arithmetic
// collapses rationals with denominator 1 back to integers; any float operand
// makes the result a float.
type Number struct {
	kind NumberKind
	i    int64
	r    Rational
	f    float64
}

func Int(n int64) Number {
	return Number{kind: KindInt, i: n}
}

func Rat(r Rational) Number {
	return Number{kind: KindRat, r: r}
}

func Float(f float64) Number {
	return Number{kind: KindFloat, f: f}
}

func (n Number) Kind() NumberKind { return n.kind }

// collapse returns an integer when r is whole.
func collapse(r Rational) Number {
	if r.IsInt() {
		return Int(r.Num)
	}
	return Rat(r)
}

// IntValue returns the integer payload.
func (n Number) IntValue() (int64, bool) {
	return n.i, n.kind == KindInt
}

// RatValue returns the number as an exact rational. Floats report false.
func (n Number) RatValue() (Rational, bool) {
	switch n.kind {
	case KindInt:
		return RatInt(n.i), true
	case KindRat:
		return n.r, true
	}
	return Rational{}, false
}

func (n Number) Float64() float64 {
	switch n.kind {
	case KindInt:
		return float64(n.i)
	case KindRat:
		return n.r.Float64()
	}
	return n.f
}

func (n Number) IsZero() bool {
	switch n.kind {
	case KindInt:
		return n.i == 0
	case KindRat:
		return n.r.Num == 0
	}
	return n.f == 0
}

func (n Number) isFloat() bool { return n.kind == KindFloat }

func (n Number) Add(o Number) Number {
	return n.exact(o, Rational.Add, func(a, b float64) float64 { return a + b })
}

func (n Number) Sub(o Number) Number {
	return n.exact(o, Rational.Sub, func(a, b float64) float64 { return a - b })
}

func (n Number) Mul(o Number) Number {
	return n.exact(o, Rational.Mul, func(a, b float64) float64 { return a * b })
}

// exact applies op on rationals, using fop when either side is a float or
// the exact result does not fit 64 bits.
func (n Number) exact(o Number, op func(Rational, Rational) (Rational, bool), fop func(a, b float64) float64) Number {
	if !n.isFloat() && !o.isFloat() {
		a, _ := n.RatValue()
		b, _ := o.RatValue()
		if r, ok := op(a, b); ok {
			return collapse(r)
		}
	}
	return Float(fop(n.Float64(), o.Float64()))
}

// Quo divides n by o. A zero divisor is an error for every variant.
func (n Number) Quo(o Number) (Number, error) {
	if n.isFloat() || o.isFloat() {
		if o.IsZero() {
			return Number{}, ErrDivByZero
		}
		return Float(n.Float64() / o.Float64()), nil
	}
	d, _ := o.RatValue()
	if d.Num == 0 {
		return Number{}, ErrDivByZero
	}
	a, _ := n.RatValue()
	if r, ok := a.Quo(d); ok {
		return collapse(r), nil
	}
	return Float(n.Float64() / o.Float64()), nil
}

// Pow raises n to o. Integer and rational bases with an integer exponent stay
// exact when the result fits; everything else goes through floats.
func (n Number) Pow(o Number) (Number, error) {
	switch {
	case n.kind == KindInt && o.kind == KindInt:
		if o.i >= -math.MaxUint32 && o.i <= math.MaxUint32 {
			if v, ok := powInt64(n.i, uint32(absU(o.i))); ok {
				if o.i >= 0 {
					return Int(v), nil
				}
				r, err := Inverse(v)
				if err != nil {
					return Number{}, err
				}
				return collapse(r), nil
			}
		}
	case n.kind == KindRat && o.kind == KindInt:
		if o.i >= math.MinInt32 && o.i <= math.MaxInt32 {
			if n.r.Num == 0 && o.i < 0 {
				return Number{}, ErrDivByZero
			}
			if r, ok := n.r.Pow(int32(o.i)); ok {
				return collapse(r), nil
			}
		}
	}
	return Float(floatPow(n.Float64(), o.Float64())), nil
}

func (n Number) Neg() Number {
	switch n.kind {
	case KindInt:
		if n.i == math.MinInt64 {
			return Float(-float64(n.i))
		}
		return Int(-n.i)
	case KindRat:
		if r, ok := n.r.Neg(); ok {
			return Rat(r)
		}
		return Float(-n.r.Float64())
	}
	return Float(-n.f)
}

// Cmp compares the numeric values of n and o, exactly when neither is a float.
func (n Number) Cmp(o Number) int {
	if !n.isFloat() && !o.isFloat() {
		a, _ := n.RatValue()
		b, _ := o.RatValue()
		if d, ok := a.Sub(b); ok {
			return d.Sign()
		}
	}
	a, b := n.Float64(), o.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// floatPrec is the mantissa width used for bigfloat powers; results are
// rounded back to float64.
const floatPrec = 128

// floatPow computes x**y. Positive finite bases with a fractional exponent go
// through bigfloat for a correctly rounded result; other cases follow
// math.Pow.
func floatPow(x, y float64) float64 {
	if x <= 0 || math.IsInf(x, 0) || math.IsNaN(x) || math.IsInf(y, 0) || math.IsNaN(y) || y == math.Trunc(y) {
		return math.Pow(x, y)
	}
	bx := new(big.Float).SetPrec(floatPrec).SetFloat64(x)
	by := new(big.Float).SetPrec(floatPrec).SetFloat64(y)
	z := bigfloat.Pow(new(big.Float).SetPrec(floatPrec), bx, by)
	f, _ := z.Float64()
	return f
}

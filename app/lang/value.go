package lang

// Value pairs a number with its unit. The zero Unit means dimensionless.
type Value struct {
	Num  Number
	Unit Unit
}

// HasUnit reports whether v carries a unit.
func (v Value) HasUnit() bool { return !v.Unit.IsZero() }

// String formats the value for display: the number immediately followed by
// the unit symbol.
func (v Value) String() string {
	return v.Num.String() + v.Unit.Symbol()
}

// Exact is String with rationals rendered as num/den.
func (v Value) Exact() string {
	return v.Num.Exact() + v.Unit.Symbol()
}

// Arithmetic operations on Values

func valAdd(a, b Value, rates RateProvider) (Value, error) {
	return additive(a, b, rates, Number.Add)
}

func valSub(a, b Value, rates RateProvider) (Value, error) {
	return additive(a, b, rates, Number.Sub)
}

// additive operates directly when both units are identical, otherwise converts
// b into a's unit first. A unit on only one side cannot be added.
func additive(a, b Value, rates RateProvider, op func(Number, Number) Number) (Value, error) {
	if a.Unit == b.Unit {
		return Value{Num: op(a.Num, b.Num), Unit: a.Unit}, nil
	}
	if !a.HasUnit() || !b.HasUnit() {
		return Value{}, ErrDifferentUnitTypes
	}
	conv, err := Convert(b.Num, b.Unit, a.Unit, rates)
	if err != nil {
		return Value{}, err
	}
	return Value{Num: op(a.Num, conv), Unit: a.Unit}, nil
}

func valMul(a, b Value) (Value, error) {
	u, err := single(a.Unit, b.Unit)
	if err != nil {
		return Value{}, err
	}
	return Value{Num: a.Num.Mul(b.Num), Unit: u}, nil
}

func valDiv(a, b Value) (Value, error) {
	n, err := a.Num.Quo(b.Num)
	if err != nil {
		return Value{}, err
	}
	u, err := single(a.Unit, b.Unit)
	if err != nil {
		return Value{}, err
	}
	return Value{Num: n, Unit: u}, nil
}

func valPow(a, b Value) (Value, error) {
	if b.HasUnit() {
		return Value{}, ErrExpByUnit
	}
	n, err := a.Num.Pow(b.Num)
	if err != nil {
		return Value{}, err
	}
	return Value{Num: n, Unit: a.Unit}, nil
}

// valConvert re-expresses a in b's unit; the magnitude of b is ignored.
func valConvert(a, b Value, rates RateProvider) (Value, error) {
	if !a.HasUnit() || !b.HasUnit() {
		return Value{}, ErrMissingUnit
	}
	n, err := Convert(a.Num, a.Unit, b.Unit, rates)
	if err != nil {
		return Value{}, err
	}
	return Value{Num: n, Unit: b.Unit}, nil
}

func valNeg(a Value) Value {
	return Value{Num: a.Num.Neg(), Unit: a.Unit}
}

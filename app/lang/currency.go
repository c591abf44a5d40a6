package lang

// RateProvider supplies exact exchange rates. Rate returns how many units of
// to one unit of from is worth. Codes are lowercase ISO 4217.
type RateProvider interface {
	Rate(from, to string) (Rational, error)
}

// RateFunc adapts a function to RateProvider.
type RateFunc func(from, to string) (Rational, error)

func (f RateFunc) Rate(from, to string) (Rational, error) {
	return f(from, to)
}

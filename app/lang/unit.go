package lang

import (
	"errors"
	"sort"
	"strings"
)

// UnitCategory groups units that convert into each other.
type UnitCategory int

const (
	UnitNone UnitCategory = iota
	UnitLength
	UnitArea
	UnitVolume
	UnitMass
	UnitTemperature
	UnitTime
	UnitCurrency
)

var categoryNames = [...]string{
	UnitNone:        "none",
	UnitLength:      "length",
	UnitArea:        "area",
	UnitVolume:      "volume",
	UnitMass:        "mass",
	UnitTemperature: "temperature",
	UnitTime:        "time",
	UnitCurrency:    "currency",
}

func (c UnitCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// UnitKind identifies one fixed unit, or a currency when it is Currency.
type UnitKind int

const (
	NoUnit UnitKind = iota

	Meter
	Kilometer
	Centimeter
	Millimeter
	Inch
	Foot
	Yard
	Mile

	SquareMeter
	SquareKilometer
	SquareCentimeter
	SquareMillimeter
	SquareInch
	SquareFoot
	SquareYard
	SquareMile

	Liter
	Milliliter
	CubicMeter
	CubicCentimeter
	CubicMillimeter
	CubicInch
	CubicFoot
	CubicYard
	Pint
	Gallon

	Gram
	Kilogram
	Ounce
	Pound

	Celsius
	Fahrenheit

	Second
	Minute
	Hour

	Currency
)

// Unit is a fixed unit or a currency code. The zero Unit is dimensionless.
type Unit struct {
	Kind UnitKind
	Code string // lowercase ISO 4217 code, only for Currency
}

// Curr returns the currency unit for an ISO code in any case.
func Curr(code string) Unit {
	return Unit{Kind: Currency, Code: strings.ToLower(code)}
}

// IsZero reports whether u is the dimensionless unit.
func (u Unit) IsZero() bool { return u.Kind == NoUnit }

// Symbol is the display form appended to numbers.
func (u Unit) Symbol() string {
	if u.Kind == Currency {
		return u.Code
	}
	if d := u.def(); d != nil {
		return d.symbol
	}
	return ""
}

func (u Unit) String() string { return u.Symbol() }

func (u Unit) Category() UnitCategory {
	if u.Kind == Currency {
		return UnitCurrency
	}
	if d := u.def(); d != nil {
		return d.category
	}
	return UnitNone
}

type unitDef struct {
	symbol   string
	category UnitCategory
	// factor converts into the category's base unit (m, m2, l, kg, s).
	// Temperatures have none.
	factor  Number
	aliases []string
}

func (u Unit) def() *unitDef {
	if u.Kind <= NoUnit || u.Kind >= Currency {
		return nil
	}
	return &unitDefs[u.Kind]
}

var (
	inchM = mustRat(254, 10000)
	footM = ratMul(RatInt(12), inchM)
	yardM = ratMul(RatInt(36), inchM)
	mileM = ratMul(RatInt(63360), inchM)
	oneK  = RatInt(1000)
	centi = mustRat(1, 100)
	milli = mustRat(1, 1000)
)

var unitDefs = [Currency]unitDef{
	Meter:      {"m", UnitLength, Int(1), []string{"m", "meter", "meters", "metre", "metres"}},
	Kilometer:  {"km", UnitLength, Int(1000), []string{"km", "kilometer", "kilometers", "kilometre", "kilometres"}},
	Centimeter: {"cm", UnitLength, Rat(centi), []string{"cm", "centimeter", "centimeters", "centimetre", "centimetres"}},
	Millimeter: {"mm", UnitLength, Rat(milli), []string{"mm", "millimeter", "millimeters", "millimetre", "millimetres"}},
	Inch:       {`"`, UnitLength, Rat(inchM), []string{`"`, "in", "inch", "inches"}},
	Foot:       {"'", UnitLength, collapse(footM), []string{"'", "ft", "foot", "feet"}},
	Yard:       {"yd", UnitLength, collapse(yardM), []string{"yd", "yard", "yards"}},
	Mile:       {"mi", UnitLength, collapse(mileM), []string{"mi", "mile", "miles"}},

	SquareMeter:      {"m2", UnitArea, Int(1), []string{"m2", "sqm"}},
	SquareKilometer:  {"km2", UnitArea, collapse(ratPow(oneK, 2)), []string{"km2"}},
	SquareCentimeter: {"cm2", UnitArea, collapse(ratPow(centi, 2)), []string{"cm2"}},
	SquareMillimeter: {"mm2", UnitArea, collapse(ratPow(milli, 2)), []string{"mm2"}},
	SquareInch:       {"in2", UnitArea, collapse(ratPow(inchM, 2)), []string{"in2", "sqin"}},
	SquareFoot:       {"ft2", UnitArea, collapse(ratPow(footM, 2)), []string{"ft2", "sqft"}},
	SquareYard:       {"yd2", UnitArea, collapse(ratPow(yardM, 2)), []string{"yd2", "sqyd"}},
	SquareMile:       {"mi2", UnitArea, collapse(ratPow(mileM, 2)), []string{"mi2", "sqmi"}},

	Liter:            {"l", UnitVolume, Int(1), []string{"l", "L", "liter", "liters", "litre", "litres"}},
	Milliliter:       {"ml", UnitVolume, Rat(milli), []string{"ml", "mL", "milliliter", "milliliters", "millilitre", "millilitres"}},
	CubicMeter:       {"m3", UnitVolume, Int(1000), []string{"m3"}},
	CubicCentimeter:  {"cm3", UnitVolume, collapse(ratMul(ratPow(centi, 3), oneK)), []string{"cm3", "cc"}},
	CubicMillimeter:  {"mm3", UnitVolume, collapse(ratMul(ratPow(milli, 3), oneK)), []string{"mm3"}},
	CubicInch:        {"in3", UnitVolume, collapse(ratMul(ratPow(inchM, 3), oneK)), []string{"in3"}},
	CubicFoot:        {"ft3", UnitVolume, collapse(ratMul(ratPow(footM, 3), oneK)), []string{"ft3"}},
	CubicYard:        {"yd3", UnitVolume, collapse(ratMul(ratPow(yardM, 3), oneK)), []string{"yd3"}},
	Pint:             {"pint", UnitVolume, Rat(mustRat(454609, 800000)), []string{"pt", "pint", "pints"}},
	Gallon:           {"gallon", UnitVolume, Rat(mustRat(454609, 100000)), []string{"gal", "gallon", "gallons"}},

	Gram:     {"g", UnitMass, Rat(milli), []string{"g", "gram", "grams"}},
	Kilogram: {"kg", UnitMass, Int(1), []string{"kg", "kilogram", "kilograms"}},
	Ounce:    {"oz", UnitMass, Rat(mustRat(45359237, 1600000000)), []string{"oz", "ounce", "ounces"}},
	Pound:    {"lb", UnitMass, Rat(mustRat(45359237, 100000000)), []string{"lb", "lbs", "pound", "pounds"}},

	Celsius:    {"C", UnitTemperature, Number{}, []string{"C", "c", "celsius"}},
	Fahrenheit: {"F", UnitTemperature, Number{}, []string{"F", "f", "fahrenheit"}},

	Second: {"s", UnitTime, Int(1), []string{"s", "sec", "secs", "second", "seconds"}},
	Minute: {"min", UnitTime, Int(60), []string{"min", "mins", "minute", "minutes"}},
	Hour:   {"h", UnitTime, Int(3600), []string{"h", "hr", "hrs", "hour", "hours"}},
}

func ratMul(a, b Rational) Rational {
	r, ok := a.Mul(b)
	if !ok {
		panic("unit factor overflow")
	}
	return r
}

func ratPow(a Rational, n int32) Rational {
	r, ok := a.Pow(n)
	if !ok {
		panic("unit factor overflow")
	}
	return r
}

// Currencies lists the ISO codes the calculator recognizes.
var Currencies = []string{
	"aud", "bgn", "brl", "cad", "chf", "cny", "czk", "dkk", "eur", "gbp",
	"hkd", "huf", "idr", "ils", "inr", "isk", "jpy", "krw", "mxn", "myr",
	"nok", "nzd", "php", "pln", "ron", "rsd", "rub", "sek", "sgd", "thb",
	"try", "uah", "usd", "zar",
}

// unitLookup maps every alias to its unit kind.
var unitLookup map[string]UnitKind

// UnitNames lists every alias, sorted, for completion and highlighting.
var UnitNames []string

func init() {
	unitLookup = make(map[string]UnitKind)
	for k := Meter; k < Currency; k++ {
		for _, a := range unitDefs[k].aliases {
			unitLookup[a] = k
			UnitNames = append(UnitNames, a)
		}
	}
	sort.Strings(UnitNames)
}

// LookupUnit resolves a unit alias or a currency code (case-insensitive).
func LookupUnit(name string) (Unit, bool) {
	if k, ok := unitLookup[name]; ok {
		return Unit{Kind: k}, true
	}
	if IsCurrency(name) {
		return Curr(name), true
	}
	return Unit{}, false
}

// IsCurrency reports whether name is a known currency code in any case.
func IsCurrency(name string) bool {
	if len(name) != 3 {
		return false
	}
	lc := strings.ToLower(name)
	i := sort.SearchStrings(Currencies, lc)
	return i < len(Currencies) && Currencies[i] == lc
}

// CommonType returns the category shared by a and b, or UnitNone.
func CommonType(a, b Unit) UnitCategory {
	if c := a.Category(); c == b.Category() {
		return c
	}
	return UnitNone
}

var (
	tempFactor = Rat(mustRat(18, 10))
	tempBias   = Int(32)
)

func convertTemp(v Number, from, to Unit) (Number, error) {
	switch {
	case from.Kind == Celsius && to.Kind == Fahrenheit:
		return v.Mul(tempFactor).Add(tempBias), nil
	case from.Kind == Fahrenheit && to.Kind == Celsius:
		return v.Sub(tempBias).Quo(tempFactor)
	}
	return Number{}, convErr("temperature " + from.Symbol() + " to " + to.Symbol())
}

// Convert expresses v, given in from, in the unit to. Currency conversion
// asks rates for the exchange rate and fails without a provider.
func Convert(v Number, from, to Unit, rates RateProvider) (Number, error) {
	switch CommonType(from, to) {
	case UnitNone:
		return Number{}, ErrDifferentUnitTypes
	case UnitTemperature:
		return convertTemp(v, from, to)
	case UnitCurrency:
		if rates == nil {
			return Number{}, convErr("no exchange rates available")
		}
		r, err := rates.Rate(from.Code, to.Code)
		if err != nil {
			if !errors.Is(err, ErrConversion) {
				err = convErr(err.Error())
			}
			return Number{}, err
		}
		return v.Mul(collapse(r)), nil
	}
	rate, err := from.def().factor.Quo(to.def().factor)
	if err != nil {
		return Number{}, err
	}
	return rate.Mul(v), nil
}

// single returns the unit of whichever side carries one; both sides having
// a unit is an error.
func single(a, b Unit) (Unit, error) {
	if a.IsZero() {
		return b, nil
	}
	if b.IsZero() {
		return a, nil
	}
	return Unit{}, ErrOperateWithUnits
}

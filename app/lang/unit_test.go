package lang

import (
	"errors"
	"testing"
)

func fixedRates(rates map[string]Rational) RateProvider {
	return RateFunc(func(from, to string) (Rational, error) {
		if from == to {
			return RatInt(1), nil
		}
		r, ok := rates[from+"/"+to]
		if !ok {
			return Rational{}, errors.New("no rate for " + from + "/" + to)
		}
		return r, nil
	})
}

func TestConvert(t *testing.T) {
	tests := []struct {
		val      Number
		from, to UnitKind
		want     Number
	}{
		{Int(1), Pint, Gallon, Rat(mustRat(1, 8))},
		{Int(95), Fahrenheit, Celsius, Int(35)},
		{Int(15), Celsius, Fahrenheit, Int(59)},
		{Int(1), Kilometer, Meter, Int(1000)},
		{Int(1), Foot, Inch, Int(12)},
		{Int(1), Mile, Foot, Int(5280)},
		{Int(1), Yard, Foot, Int(3)},
		{Int(1), CubicMeter, Liter, Int(1000)},
		{Int(1), Liter, CubicCentimeter, Int(1000)},
		{Int(1), Hour, Minute, Int(60)},
		{Int(1), Pound, Ounce, Int(16)},
		{Int(1), Kilogram, Gram, Int(1000)},
		{Int(1), SquareKilometer, SquareMeter, Int(1000000)},
		{Int(1), SquareFoot, SquareInch, Int(144)},
		{Int(1), CubicFoot, CubicInch, Int(1728)},
		{Int(2), Meter, Foot, Rat(mustRat(2500, 381))},
		{Float(0.5), Hour, Second, Float(1800)},
	}
	for _, tt := range tests {
		from, to := Unit{Kind: tt.from}, Unit{Kind: tt.to}
		got, err := Convert(tt.val, from, to, nil)
		if err != nil {
			t.Errorf("Convert(%s, %s, %s) error: %v", tt.val.Exact(), from, to, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Convert(%s, %s, %s) = %s, want %s", tt.val.Exact(), from, to, got.Exact(), tt.want.Exact())
		}
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		from, to Unit
		want     error
	}{
		{Unit{Kind: Meter}, Unit{Kind: Kilogram}, ErrDifferentUnitTypes},
		{Unit{Kind: Celsius}, Unit{Kind: Celsius}, ErrConversion},
		{Unit{Kind: Fahrenheit}, Unit{Kind: Fahrenheit}, ErrConversion},
		{Unit{Kind: Liter}, Curr("usd"), ErrDifferentUnitTypes},
		{Curr("usd"), Curr("eur"), ErrConversion}, // no provider
	}
	for _, tt := range tests {
		_, err := Convert(Int(1), tt.from, tt.to, nil)
		if !errors.Is(err, tt.want) {
			t.Errorf("Convert(1, %s, %s) error = %v, want %v", tt.from, tt.to, err, tt.want)
		}
	}
}

func TestConvertCurrency(t *testing.T) {
	rates := fixedRates(map[string]Rational{
		"usd/eur": mustRat(9, 10),
	})

	got, err := Convert(Int(10), Curr("USD"), Curr("eur"), rates)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != Int(9) {
		t.Errorf("10 usd to eur = %s, want 9", got.Exact())
	}

	// Provider failures surface as conversion errors.
	_, err = Convert(Int(1), Curr("eur"), Curr("gbp"), rates)
	if !errors.Is(err, ErrConversion) {
		t.Errorf("missing rate error = %v, want ConversionError", err)
	}
}

func TestLookupUnit(t *testing.T) {
	tests := []struct {
		name string
		want Unit
	}{
		{"m", Unit{Kind: Meter}},
		{"feet", Unit{Kind: Foot}},
		{"'", Unit{Kind: Foot}},
		{`"`, Unit{Kind: Inch}},
		{"gal", Unit{Kind: Gallon}},
		{"pt", Unit{Kind: Pint}},
		{"lbs", Unit{Kind: Pound}},
		{"c", Unit{Kind: Celsius}},
		{"hr", Unit{Kind: Hour}},
		{"USD", Curr("usd")},
		{"Eur", Curr("eur")},
	}
	for _, tt := range tests {
		got, ok := LookupUnit(tt.name)
		if !ok || got != tt.want {
			t.Errorf("LookupUnit(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
		}
	}
	for _, name := range []string{"xyz", "usdx", "", "to"} {
		if _, ok := LookupUnit(name); ok {
			t.Errorf("LookupUnit(%q) should fail", name)
		}
	}
}

func TestUnitTable(t *testing.T) {
	for k := Meter; k < Currency; k++ {
		u := Unit{Kind: k}
		if u.Symbol() == "" {
			t.Errorf("unit %d has no symbol", k)
		}
		if u.Category() == UnitNone {
			t.Errorf("unit %s has no category", u)
		}
		if u.Category() != UnitTemperature && u.def().factor.IsZero() {
			t.Errorf("unit %s has no factor", u)
		}
		// Every unit is reachable through its own symbol.
		if got, ok := LookupUnit(u.Symbol()); !ok || got != u {
			t.Errorf("LookupUnit(%q) = %v, want %v", u.Symbol(), got, u)
		}
	}
	if len(Currencies) != 34 {
		t.Errorf("len(Currencies) = %d, want 34", len(Currencies))
	}
	for i := 1; i < len(Currencies); i++ {
		if Currencies[i-1] >= Currencies[i] {
			t.Errorf("Currencies not sorted at %q", Currencies[i])
		}
	}
}

func TestCommonTypeAndSingle(t *testing.T) {
	m, km, kg := Unit{Kind: Meter}, Unit{Kind: Kilometer}, Unit{Kind: Kilogram}
	if got := CommonType(m, km); got != UnitLength {
		t.Errorf("CommonType(m, km) = %v, want length", got)
	}
	if got := CommonType(m, kg); got != UnitNone {
		t.Errorf("CommonType(m, kg) = %v, want none", got)
	}
	if got := CommonType(Curr("usd"), Curr("huf")); got != UnitCurrency {
		t.Errorf("CommonType(usd, huf) = %v, want currency", got)
	}

	if u, err := single(m, Unit{}); err != nil || u != m {
		t.Errorf("single(m, none) = %v, %v", u, err)
	}
	if u, err := single(Unit{}, kg); err != nil || u != kg {
		t.Errorf("single(none, kg) = %v, %v", u, err)
	}
	if _, err := single(m, kg); !errors.Is(err, ErrOperateWithUnits) {
		t.Errorf("single(m, kg) error = %v, want OperateWithUnits", err)
	}
}

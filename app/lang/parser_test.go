package lang

import "testing"

func TestParseTree(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1+2+3+4", "(((1+2)+3)+4)"},
		{"1-2-3", "((1-2)-3)"},
		{"(1+2)*3", "((1+2)*3)"},
		{"1+2*3", "(1+(2*3))"},
		{"8/4/2", "((8/4)/2)"},
		{"2^3^2", "(2^(3^2))"},
		{"2*3^2", "(2*(3^2))"},
		{"-2^2", "(-(2^2))"},
		{"-1+2", "((-1)+2)"},
		{"m", "1m"},
		{"5 ft + 2m", "(5'+2m)"},
		{"1 ft 6 in", `(1'+6")`},
		{"5 ft 3 in 2 cm", `((5'+3")+2cm)`},
		{"15 C to F", "(15C to F)"},
		{"1 km to m", "(1km to m)"},
		{"2 * 3 to m", "((2*3) to m)"},
		{"1 ft 6 in to cm", `((1'+6") to cm)`},
		{"10 usd to eur", "(10usd to eur)"},
		{"2 ** 10", "(2^10)"},
		{"1.5 l", "1.5l"},
	}
	for _, tt := range tests {
		node, ok := ParseLine(tt.input)
		if !ok {
			t.Errorf("ParseLine(%q) failed", tt.input)
			continue
		}
		if got := node.String(); got != tt.want {
			t.Errorf("ParseLine(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseFailure(t *testing.T) {
	inputs := []string{
		"",
		"1+2)",
		"(1+2",
		"1 +",
		"2 * -3",
		"1 % 2",
		"3 x",
		"to m",
		"1 m 2 kg",
		"5 to 3",
		"3 $",
		"()",
	}
	for _, input := range inputs {
		if node, ok := ParseLine(input); ok {
			t.Errorf("ParseLine(%q) = %s, want failure", input, node)
		}
	}
}

func TestParserBuffer(t *testing.T) {
	p := NewParser()
	if !p.Empty() {
		t.Fatal("new parser should be empty")
	}

	p.Extend(Lex("(1 +")...)
	if _, ok := p.Parse(); ok {
		t.Fatal("incomplete input should not parse")
	}
	p.Extend(Lex("2) * 3")...)
	node, ok := p.Parse()
	if !ok {
		t.Fatal("continued input should parse")
	}
	if got := node.String(); got != "((1+2)*3)" {
		t.Errorf("got %s, want ((1+2)*3)", got)
	}

	p.Reset()
	if !p.Empty() {
		t.Error("Reset should empty the buffer")
	}
	p.Extend(Lex("4")...)
	if node, ok := p.Parse(); !ok || node.String() != "4" {
		t.Errorf("after Reset got %v, %v", node, ok)
	}
}

func TestParseMemoIsolated(t *testing.T) {
	// A stale memo from a shorter buffer must not leak into the next parse.
	p := NewParser()
	p.Extend(Lex("1 + 2")...)
	if _, ok := p.Parse(); !ok {
		t.Fatal("1 + 2 should parse")
	}
	p.Extend(Lex("+ 3")...)
	node, ok := p.Parse()
	if !ok || node.String() != "((1+2)+3)" {
		t.Errorf("got %v, %v; want ((1+2)+3)", node, ok)
	}
}

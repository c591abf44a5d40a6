package main

import (
	"image/color"

	"unitcalc/app/lang"
)

// SpanKind is the highlight category of a piece of a line.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanKeyword
	SpanNumber
	SpanComment
	SpanOperator
	SpanUnit
	SpanCurrency
	SpanParen
	SpanInvalid
)

// Span is a run of text with a highlight category.
type Span struct {
	Text string
	Kind SpanKind
}

// spanColors is dark-theme oriented.
var spanColors = map[SpanKind]color.NRGBA{
	SpanPlain:    {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	SpanKeyword:  {R: 0x56, G: 0x9C, B: 0xD6, A: 0xFF}, // blue
	SpanNumber:   {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // green
	SpanComment:  {R: 0x6A, G: 0x99, B: 0x55, A: 0xFF}, // dark green
	SpanOperator: {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF},
	SpanUnit:     {R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF}, // teal
	SpanCurrency: {R: 0xCE, G: 0x91, B: 0x78, A: 0xFF}, // orange
	SpanParen:    {R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // yellow
	SpanInvalid:  {R: 0xF4, G: 0x47, B: 0x47, A: 0xFF}, // red
}

func SpanColor(kind SpanKind) color.NRGBA {
	if c, ok := spanColors[kind]; ok {
		return c
	}
	return spanColors[SpanPlain]
}

func spanKind(t lang.TokenType) SpanKind {
	switch t {
	case lang.TOKEN_INT, lang.TOKEN_FLOAT:
		return SpanNumber
	case lang.TOKEN_PLUS, lang.TOKEN_MINUS, lang.TOKEN_STAR, lang.TOKEN_SLASH, lang.TOKEN_CARET, lang.TOKEN_PERCENT:
		return SpanOperator
	case lang.TOKEN_LPAREN, lang.TOKEN_RPAREN:
		return SpanParen
	case lang.TOKEN_TO:
		return SpanKeyword
	case lang.TOKEN_UNIT:
		return SpanUnit
	case lang.TOKEN_CURRENCY:
		return SpanCurrency
	case lang.TOKEN_INVALID:
		return SpanInvalid
	}
	return SpanPlain
}

// Highlight splits a line into spans using the calculator's lexer. The spans
// cover the whole line, gaps included.
func Highlight(line string) []Span {
	if line == "" {
		return nil
	}
	if lang.IsComment(line) {
		return []Span{{Text: line, Kind: SpanComment}}
	}

	var spans []Span
	lastEnd := 0
	for _, tok := range lang.Lex(line) {
		if tok.Pos > lastEnd {
			spans = append(spans, Span{Text: line[lastEnd:tok.Pos]})
		}
		spans = append(spans, Span{Text: tok.Literal, Kind: spanKind(tok.Type)})
		lastEnd = tok.Pos + len(tok.Literal)
	}
	if lastEnd < len(line) {
		spans = append(spans, Span{Text: line[lastEnd:]})
	}
	return spans
}

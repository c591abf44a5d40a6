package lang

import (
	"math"
	"strconv"
)

// Lex tokenizes a single line of input into a slice of tokens.
func Lex(input string) []Token {
	var tokens []Token
	i := 0
	for i < len(input) {
		ch := input[i]

		// Skip whitespace
		if isSpace(ch) {
			i++
			continue
		}

		switch ch {
		case '+':
			tokens = append(tokens, Token{Type: TOKEN_PLUS, Literal: "+", Pos: i})
			i++
		case '-':
			tokens = append(tokens, Token{Type: TOKEN_MINUS, Literal: "-", Pos: i})
			i++
		case '*':
			if i+1 < len(input) && input[i+1] == '*' {
				tokens = append(tokens, Token{Type: TOKEN_CARET, Literal: "**", Pos: i})
				i += 2
			} else {
				tokens = append(tokens, Token{Type: TOKEN_STAR, Literal: "*", Pos: i})
				i++
			}
		case '^':
			tokens = append(tokens, Token{Type: TOKEN_CARET, Literal: "^", Pos: i})
			i++
		case '/':
			tokens = append(tokens, Token{Type: TOKEN_SLASH, Literal: "/", Pos: i})
			i++
		case '(':
			tokens = append(tokens, Token{Type: TOKEN_LPAREN, Literal: "(", Pos: i})
			i++
		case ')':
			tokens = append(tokens, Token{Type: TOKEN_RPAREN, Literal: ")", Pos: i})
			i++
		case '%':
			tokens = append(tokens, Token{Type: TOKEN_PERCENT, Literal: "%", Pos: i})
			i++
		case '"', '\'':
			u, _ := LookupUnit(input[i : i+1])
			tokens = append(tokens, Token{Type: TOKEN_UNIT, Literal: input[i : i+1], Pos: i, Unit: u})
			i++
		default:
			if isDigit(ch) || (ch == '.' && i+1 < len(input) && isDigit(input[i+1])) {
				start := i
				end, tok := lexNumber(input, i)
				tok.Pos = start
				tokens = append(tokens, tok)
				i = end
			} else if isWordStart(ch) {
				start := i
				for i < len(input) && isWordContinue(input[i]) {
					i++
				}
				tokens = append(tokens, lexWord(input[start:i], start))
			} else {
				// Unknown byte: the rest of the non-space run is invalid.
				start := i
				for i < len(input) && !isSpace(input[i]) {
					i++
				}
				tokens = append(tokens, Token{Type: TOKEN_INVALID, Literal: input[start:i], Pos: start})
			}
		}
	}
	return tokens
}

// lexWord classifies a word as the conversion keyword, a unit, a currency
// code or an identifier.
func lexWord(word string, pos int) Token {
	if word == "to" {
		return Token{Type: TOKEN_TO, Literal: word, Pos: pos}
	}
	if u, ok := LookupUnit(word); ok {
		typ := TOKEN_UNIT
		if u.Kind == Currency {
			typ = TOKEN_CURRENCY
		}
		return Token{Type: typ, Literal: word, Pos: pos, Unit: u}
	}
	return Token{Type: TOKEN_IDENT, Literal: word, Pos: pos}
}

// lexNumber scans an integer or decimal literal with an optional exponent
// starting at pos and returns the end offset.
func lexNumber(input string, pos int) (int, Token) {
	i := pos
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	mantEnd := i
	isFloat := false
	if i < len(input) && input[i] == '.' {
		isFloat = true
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
		}
		mantEnd = i
	}
	expStart := -1
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			j++
		}
		if j < len(input) && isDigit(input[j]) {
			expStart = i + 1
			for j < len(input) && isDigit(input[j]) {
				j++
			}
			i = j
		}
	}
	lit := input[pos:i]
	if isFloat {
		f, _ := strconv.ParseFloat(lit, 64)
		return i, Token{Type: TOKEN_FLOAT, Literal: lit, Num: Float(f)}
	}
	if n, ok := intLiteral(input[pos:mantEnd], input, expStart, i); ok {
		return i, Token{Type: TOKEN_INT, Literal: lit, Num: Int(n)}
	}
	f, _ := strconv.ParseFloat(lit, 64)
	return i, Token{Type: TOKEN_FLOAT, Literal: lit, Num: Float(f)}
}

// intLiteral evaluates digits*10^exp when the result is a whole number that
// fits an int64.
func intLiteral(digits, input string, expStart, end int) (int64, bool) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if expStart < 0 {
		return n, true
	}
	exp, err := strconv.ParseInt(input[expStart:end], 10, 64)
	if err != nil || exp < 0 || exp > math.MaxUint32 {
		return 0, false
	}
	scale, ok := powInt64(10, uint32(exp))
	if !ok {
		return 0, false
	}
	return mulInt64(n, scale)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isWordStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isWordContinue(ch byte) bool {
	return isWordStart(ch) || isDigit(ch)
}

package lang

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TOKEN_INT TokenType = iota
	TOKEN_FLOAT
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_CARET
	TOKEN_MINUS
	TOKEN_PLUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_TO
	TOKEN_UNIT
	TOKEN_CURRENCY
	TOKEN_IDENT
	TOKEN_INVALID
)

var tokenNames = [...]string{
	TOKEN_INT:      "INT",
	TOKEN_FLOAT:    "FLOAT",
	TOKEN_LPAREN:   "LPAREN",
	TOKEN_RPAREN:   "RPAREN",
	TOKEN_CARET:    "CARET",
	TOKEN_MINUS:    "MINUS",
	TOKEN_PLUS:     "PLUS",
	TOKEN_STAR:     "STAR",
	TOKEN_SLASH:    "SLASH",
	TOKEN_PERCENT:  "PERCENT",
	TOKEN_TO:       "TO",
	TOKEN_UNIT:     "UNIT",
	TOKEN_CURRENCY: "CURRENCY",
	TOKEN_IDENT:    "IDENT",
	TOKEN_INVALID:  "INVALID",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// Token represents a single lexer token. Number literals carry their value in
// Num; unit and currency tokens carry the resolved Unit.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // byte offset in the input
	Num     Number
	Unit    Unit
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d)", t.Type, t.Literal, t.Pos)
}

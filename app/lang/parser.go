package lang

// rule identifies a grammar rule in the memo table.
type rule int

const (
	ruleExpression rule = iota
	ruleTerm
	ruleExponent
	ruleAtom
	ruleQuantityMerge
)

type memoKey struct {
	pos  int
	rule rule
}

// match is the outcome of applying a rule: ok with the node and the position
// after it, or a failure.
type match struct {
	node Node
	end  int
	ok   bool
}

var noMatch = match{}

// Parser is a packrat parser over a growing token buffer. Left-recursive
// rules are resolved by growing a seed result until it stops advancing.
//
//	Expression    := Expression ('+'|'-') Term | '-' Term | Term
//	Term          := Term ('*'|'/') Exponent | Term 'to' Unit | Exponent
//	Exponent      := Atom '^' Exponent | Atom
//	Atom          := '(' Expression ')' | QuantityMerge | Number | Unit
//	QuantityMerge := QuantityMerge Number Unit | Number Unit
type Parser struct {
	tokens []Token
	memo   map[memoKey]match
}

func NewParser() *Parser {
	return &Parser{}
}

// Extend appends tokens to the buffer.
func (p *Parser) Extend(tokens ...Token) {
	p.tokens = append(p.tokens, tokens...)
}

// Reset drops all buffered tokens.
func (p *Parser) Reset() {
	p.tokens = p.tokens[:0]
	p.memo = nil
}

// Empty reports whether no tokens are buffered.
func (p *Parser) Empty() bool {
	return len(p.tokens) == 0
}

// Parse parses the whole buffer as one Expression. It reports false when no
// derivation consumes every token.
func (p *Parser) Parse() (Node, bool) {
	p.memo = make(map[memoKey]match)
	m := p.expression(0)
	if m.ok && m.end == len(p.tokens) {
		return m.node, true
	}
	return nil, false
}

// Parse parses a single line (given as a token slice) into an AST node.
func Parse(tokens []Token) (Node, bool) {
	p := &Parser{tokens: tokens}
	return p.Parse()
}

func (p *Parser) memoize(pos int, r rule, body func(int) match) match {
	if pos >= len(p.tokens) {
		return noMatch
	}
	key := memoKey{pos, r}
	if m, ok := p.memo[key]; ok {
		return m
	}
	m := body(pos)
	p.memo[key] = m
	return m
}

// memoizeLeftRec seeds the memo with a failure so the rule's self-call falls
// through to its base alternative, then re-applies the body while the match
// keeps growing.
func (p *Parser) memoizeLeftRec(pos int, r rule, body func(int) match) match {
	if pos >= len(p.tokens) {
		return noMatch
	}
	key := memoKey{pos, r}
	if m, ok := p.memo[key]; ok {
		return m
	}
	p.memo[key] = noMatch
	last := noMatch
	for {
		m := body(pos)
		if !m.ok || (last.ok && m.end <= last.end) {
			break
		}
		last = m
		p.memo[key] = last
	}
	return last
}

func (p *Parser) expect(pos int, typ TokenType) (int, bool) {
	if pos < len(p.tokens) && p.tokens[pos].Type == typ {
		return pos + 1, true
	}
	return 0, false
}

func (p *Parser) number(pos int) (Number, int, bool) {
	if pos < len(p.tokens) {
		if t := p.tokens[pos]; t.Type == TOKEN_INT || t.Type == TOKEN_FLOAT {
			return t.Num, pos + 1, true
		}
	}
	return Number{}, 0, false
}

func (p *Parser) unit(pos int) (Unit, int, bool) {
	if pos < len(p.tokens) {
		if t := p.tokens[pos]; t.Type == TOKEN_UNIT || t.Type == TOKEN_CURRENCY {
			return t.Unit, pos + 1, true
		}
	}
	return Unit{}, 0, false
}

func (p *Parser) numberUnit(pos int) (Value, int, bool) {
	n, end, ok := p.number(pos)
	if !ok {
		return Value{}, 0, false
	}
	u, end, ok := p.unit(end)
	if !ok {
		return Value{}, 0, false
	}
	return Value{Num: n, Unit: u}, end, true
}

func leaf(v Value, end int) match {
	return match{node: &Leaf{Value: v}, end: end, ok: true}
}

func binary(op OpCode, left, right Node, end int) match {
	return match{node: &BinaryExpr{Op: op, Left: left, Right: right}, end: end, ok: true}
}

func (p *Parser) expression(pos int) match {
	return p.memoizeLeftRec(pos, ruleExpression, p.expressionBody)
}

func (p *Parser) expressionBody(pos int) match {
	if lhs := p.expression(pos); lhs.ok {
		if end, ok := p.expect(lhs.end, TOKEN_PLUS); ok {
			if rhs := p.term(end); rhs.ok {
				return binary(OpAdd, lhs.node, rhs.node, rhs.end)
			}
		} else if end, ok := p.expect(lhs.end, TOKEN_MINUS); ok {
			if rhs := p.term(end); rhs.ok {
				return binary(OpSubtract, lhs.node, rhs.node, rhs.end)
			}
		}
	}
	if end, ok := p.expect(pos, TOKEN_MINUS); ok {
		if operand := p.term(end); operand.ok {
			return match{node: &UnaryExpr{Op: OpNegate, Operand: operand.node}, end: operand.end, ok: true}
		}
	}
	return p.term(pos)
}

func (p *Parser) term(pos int) match {
	return p.memoizeLeftRec(pos, ruleTerm, p.termBody)
}

func (p *Parser) termBody(pos int) match {
	if lhs := p.term(pos); lhs.ok {
		if end, ok := p.expect(lhs.end, TOKEN_STAR); ok {
			if rhs := p.exponent(end); rhs.ok {
				return binary(OpMultiply, lhs.node, rhs.node, rhs.end)
			}
		} else if end, ok := p.expect(lhs.end, TOKEN_SLASH); ok {
			if rhs := p.exponent(end); rhs.ok {
				return binary(OpDivide, lhs.node, rhs.node, rhs.end)
			}
		} else if end, ok := p.expect(lhs.end, TOKEN_TO); ok {
			if u, end, ok := p.unit(end); ok {
				target := &Leaf{Value: Value{Num: Int(1), Unit: u}}
				return binary(OpConvertTo, lhs.node, target, end)
			}
		}
	}
	return p.exponent(pos)
}

func (p *Parser) exponent(pos int) match {
	return p.memoize(pos, ruleExponent, p.exponentBody)
}

func (p *Parser) exponentBody(pos int) match {
	if lhs := p.atom(pos); lhs.ok {
		if end, ok := p.expect(lhs.end, TOKEN_CARET); ok {
			if rhs := p.exponent(end); rhs.ok {
				return binary(OpPower, lhs.node, rhs.node, rhs.end)
			}
		}
	}
	return p.atom(pos)
}

func (p *Parser) atom(pos int) match {
	return p.memoize(pos, ruleAtom, p.atomBody)
}

func (p *Parser) atomBody(pos int) match {
	if end, ok := p.expect(pos, TOKEN_LPAREN); ok {
		if inner := p.expression(end); inner.ok {
			if end, ok := p.expect(inner.end, TOKEN_RPAREN); ok {
				return match{node: inner.node, end: end, ok: true}
			}
		}
	}
	if m := p.quantityMerge(pos); m.ok {
		return m
	}
	if n, end, ok := p.number(pos); ok {
		return leaf(Value{Num: n}, end)
	}
	if u, end, ok := p.unit(pos); ok {
		return leaf(Value{Num: Int(1), Unit: u}, end)
	}
	return noMatch
}

func (p *Parser) quantityMerge(pos int) match {
	return p.memoizeLeftRec(pos, ruleQuantityMerge, p.quantityMergeBody)
}

// quantityMergeBody folds "5 ft 3 in" style runs into additions. Each new
// pair must share a category with the first unit of the run.
func (p *Parser) quantityMergeBody(pos int) match {
	if lhs := p.quantityMerge(pos); lhs.ok {
		if v, end, ok := p.numberUnit(lhs.end); ok {
			if CommonType(leadingUnit(lhs.node), v.Unit) != UnitNone {
				return binary(OpAdd, lhs.node, &Leaf{Value: v}, end)
			}
		}
	}
	if v, end, ok := p.numberUnit(pos); ok {
		return leaf(v, end)
	}
	return noMatch
}

// leadingUnit returns the unit of the leftmost leaf of a merged quantity.
func leadingUnit(n Node) Unit {
	for {
		switch x := n.(type) {
		case *Leaf:
			return x.Value.Unit
		case *BinaryExpr:
			n = x.Left
		default:
			return Unit{}
		}
	}
}

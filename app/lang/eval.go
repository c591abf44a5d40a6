package lang

import (
	"errors"
	"fmt"
)

// ErrNoParse is returned by the line helpers when the input does not form an
// expression. It is not an evaluation error.
var ErrNoParse = errors.New("no parse")

// Evaluator walks an AST. It holds no state besides the rate provider used
// for currency conversions, which may be nil.
type Evaluator struct {
	rates RateProvider
}

func NewEvaluator(rates RateProvider) *Evaluator {
	return &Evaluator{rates: rates}
}

// Eval evaluates an AST node, stopping at the first error.
func (e *Evaluator) Eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *Leaf:
		return n.Value, nil

	case *UnaryExpr:
		operand, err := e.Eval(n.Operand)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case OpNegate:
			return valNeg(operand), nil
		}
		return Value{}, fmt.Errorf("unknown unary operator %d", n.Op)

	case *BinaryExpr:
		left, err := e.Eval(n.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := e.Eval(n.Right)
		if err != nil {
			return Value{}, err
		}
		switch n.Op {
		case OpAdd:
			return valAdd(left, right, e.rates)
		case OpSubtract:
			return valSub(left, right, e.rates)
		case OpMultiply:
			return valMul(left, right)
		case OpDivide:
			return valDiv(left, right)
		case OpPower:
			return valPow(left, right)
		case OpConvertTo:
			return valConvert(left, right, e.rates)
		}
		return Value{}, fmt.Errorf("unknown binary operator %d", n.Op)

	case nil:
		return Value{}, errors.New("empty expression")
	}
	return Value{}, fmt.Errorf("unknown node type %T", node)
}

// ParseLine lexes and parses a single line into an AST node without evaluating.
func ParseLine(line string) (Node, bool) {
	return Parse(Lex(line))
}

// EvalLine lexes, parses, and evaluates a single line.
func (e *Evaluator) EvalLine(line string) (Value, error) {
	node, ok := ParseLine(line)
	if !ok {
		return Value{}, ErrNoParse
	}
	return e.Eval(node)
}

package lang

// Node is the interface all AST nodes implement. Each node owns its
// children exclusively.
type Node interface {
	nodeTag()
	String() string
}

// OpCode names the operation a UnaryExpr or BinaryExpr performs.
type OpCode int

const (
	OpNegate OpCode = iota
	OpPower
	OpMultiply
	OpDivide
	OpAdd
	OpSubtract
	OpConvertTo
)

var opSymbols = [...]string{
	OpNegate:    "-",
	OpPower:     "^",
	OpMultiply:  "*",
	OpDivide:    "/",
	OpAdd:       "+",
	OpSubtract:  "-",
	OpConvertTo: " to ",
}

func (op OpCode) String() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return "?"
	}
	return opSymbols[op]
}

// Leaf is a literal quantity. A bare unit is the quantity 1 of that unit.
type Leaf struct {
	Value Value
}

// UnaryExpr represents a unary operation (negation).
type UnaryExpr struct {
	Op      OpCode
	Operand Node
}

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Op    OpCode
	Left  Node
	Right Node
}

func (*Leaf) nodeTag()       {}
func (*UnaryExpr) nodeTag()  {}
func (*BinaryExpr) nodeTag() {}

func (n *Leaf) String() string {
	return n.Value.Exact()
}

func (n *UnaryExpr) String() string {
	return "(" + n.Op.String() + n.Operand.String() + ")"
}

// String renders the tree fully parenthesized, e.g. "((1+2)*3)". The target
// of a conversion is shown as its unit symbol alone.
func (n *BinaryExpr) String() string {
	right := n.Right.String()
	if leaf, ok := n.Right.(*Leaf); ok && n.Op == OpConvertTo {
		right = leaf.Value.Unit.Symbol()
	}
	return "(" + n.Left.String() + n.Op.String() + right + ")"
}

package expression

import (
	"strconv"
	"strings"
)

// Node is an expression tree node: *Literal or *BinaryOp.
type Node interface {
	String() string
	node()
}

type Literal struct {
	Value int64
}

func (*Literal) node() {}

func (n *Literal) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// BinaryOp owns its operands; trees never share nodes.
type BinaryOp struct {
	Operator Operator
	Left     Node
	Right    Node
}

func (*BinaryOp) node() {}

// String renders the subtree as an S-expression, e.g. "(+ 5 (* 3 2))".
func (n *BinaryOp) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Operator.String())
	b.WriteByte(' ')
	b.WriteString(n.Left.String())
	b.WriteByte(' ')
	b.WriteString(n.Right.String())
	b.WriteByte(')')
	return b.String()
}

type Expr struct {
	Source string
	Root   Node
}

func (e *Expr) String() string {
	return e.Source
}

func (e *Expr) Evaluate() (Number, error) {
	return Evaluate(e.Root)
}

package expression

import (
	"fmt"
)

// Evaluate walks the tree bottom-up. It fails only on division by zero
// and on int64 overflow.
func Evaluate(n Node) (Number, error) {
	switch n := n.(type) {
	case *Literal:
		return Int(n.Value), nil

	case *BinaryOp:
		left, err := Evaluate(n.Left)
		if err != nil {
			return Number{}, fmt.Errorf("left of operator %q: %w", n.Operator, err)
		}

		right, err := Evaluate(n.Right)
		if err != nil {
			return Number{}, fmt.Errorf("right of operator %q: %w", n.Operator, err)
		}

		return calculate(n.Operator, left, right)

	default:
		panic(fmt.Sprintf("invalid AST node: %T", n))
	}
}

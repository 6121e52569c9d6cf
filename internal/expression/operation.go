package expression

import (
	"fmt"
	"math"

	"github.com/karupanerura/pratt-calc/internal/types"
)

func calculate(op Operator, left, right Number) (Number, error) {
	if op == Div {
		if right.Float64() == 0 {
			return Number{}, &types.Error{
				Tag: types.ZeroDivisionErrorTag,
				Err: fmt.Errorf("division by zero: %s / %s", left, right),
			}
		}
		return checkFloat(op, left, right, left.Float64()/right.Float64())
	}

	if left.isFloat || right.isFloat {
		lhs, rhs := left.Float64(), right.Float64()
		switch op {
		case Add:
			return checkFloat(op, left, right, lhs+rhs)
		case Sub:
			return checkFloat(op, left, right, lhs-rhs)
		case Mul:
			return checkFloat(op, left, right, lhs*rhs)
		}
	} else {
		lhs, rhs := left.i, right.i
		var (
			v  int64
			ok bool
		)
		switch op {
		case Add:
			v, ok = addInt64(lhs, rhs)
		case Sub:
			v, ok = subInt64(lhs, rhs)
		case Mul:
			v, ok = mulInt64(lhs, rhs)
		default:
			panic(fmt.Sprintf("unknown operator: %s", op))
		}
		if !ok {
			return Number{}, &types.Error{
				Tag: types.OverflowErrorTag,
				Err: fmt.Errorf("integer overflow: %d %s %d", lhs, op, rhs),
			}
		}
		return Int(v), nil
	}

	panic(fmt.Sprintf("unknown operator: %s", op))
}

// checkFloat rejects results that are not finite, so a Number is always
// printable and JSON-encodable.
func checkFloat(op Operator, left, right Number, v float64) (Number, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Number{}, &types.Error{
			Tag: types.OverflowErrorTag,
			Err: fmt.Errorf("real overflow: %s %s %s", left, op, right),
		}
	}
	return Float(v), nil
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

package expression

import (
	"strconv"

	"github.com/goccy/go-json"
)

// Number is an evaluation result. It stays an integer until a division
// is involved, after which it is a float64.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

func Int(v int64) Number {
	return Number{i: v}
}

func Float(v float64) Number {
	return Number{f: v, isFloat: true}
}

func (n Number) IsInteger() bool {
	return !n.isFloat
}

// Int64 returns the integer value; ok is false for real numbers.
func (n Number) Int64() (v int64, ok bool) {
	return n.i, !n.isFloat
}

func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// Equal compares numerically, so Int(2) equals Float(2).
func (n Number) Equal(o Number) bool {
	if !n.isFloat && !o.isFloat {
		return n.i == o.i
	}
	return n.Float64() == o.Float64()
}

func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.isFloat {
		return json.Marshal(n.f)
	}
	return json.Marshal(n.i)
}

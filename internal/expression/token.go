package expression

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
)

// Operator is one of the four arithmetic operators.
type Operator int

const (
	Add Operator = iota + 1
	Sub
	Mul
	Div
)

var operatorCharMap = map[Operator]byte{
	Add: '+',
	Sub: '-',
	Mul: '*',
	Div: '/',
}

var charOperatorMap = lo.Invert(operatorCharMap)

func (o Operator) String() string {
	if c, ok := operatorCharMap[o]; ok {
		return string(c)
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Token is a lexical token. The set of implementations is closed:
// NumberToken, IdentifierToken, OperatorToken, LParenToken and RParenToken.
type Token interface {
	BeginsPos() int
	EndsPos() int
	String() string
	token()
}

type rangeToken struct {
	beginsPos, endsPos int
}

func (t rangeToken) BeginsPos() int {
	return t.beginsPos
}

func (t rangeToken) EndsPos() int {
	return t.endsPos
}

func (rangeToken) token() {}

type NumberToken struct {
	rangeToken
	Value int64
}

func (t NumberToken) String() string {
	return strconv.FormatInt(t.Value, 10)
}

// IdentifierToken is recognized by Scan but never accepted by the parser.
type IdentifierToken struct {
	rangeToken
	Name string
}

func (t IdentifierToken) String() string {
	return t.Name
}

type OperatorToken struct {
	rangeToken
	Operator Operator
}

func (t OperatorToken) String() string {
	return t.Operator.String()
}

type LParenToken struct {
	rangeToken
}

func (LParenToken) String() string {
	return "("
}

type RParenToken struct {
	rangeToken
}

func (RParenToken) String() string {
	return ")"
}

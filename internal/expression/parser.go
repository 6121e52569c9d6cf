package expression

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/karupanerura/pratt-calc/internal/types"
)

type bindingPower struct {
	left, right uint8
}

// left < right makes every operator left-associative.
var infixOperatorBindingPowerMap = map[Operator]bindingPower{
	Add: {left: 4, right: 5},
	Sub: {left: 4, right: 5},
	Mul: {left: 6, right: 7},
	Div: {left: 6, right: 7},
}

var (
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	ErrUnexpectedEOF         = errors.New("unexpected end of input")
	ErrUnexpectedToken       = errors.New("unexpected token")
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("PRATT_CALC_EXPRESSION_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

type parser struct {
	source string
	tokens []Token
	index  int
	debug  bool
	strict bool
}

// Parse scans and parses source. Tokens left over after a complete
// expression are ignored, so "1 + 3)" parses as "1 + 3".
func Parse(source string) (*Expr, error) {
	p := &parser{source: source, debug: parserDebugLog}
	return p.parse()
}

// ParseStrict is like Parse but fails when tokens are left over.
func ParseStrict(source string) (*Expr, error) {
	p := &parser{source: source, debug: parserDebugLog, strict: true}
	return p.parse()
}

func ParseWithDebugOutput(source string) (*Expr, error) {
	p := &parser{source: source, debug: true}
	return p.parse()
}

func ParseStrictWithDebugOutput(source string) (*Expr, error) {
	p := &parser{source: source, debug: true, strict: true}
	return p.parse()
}

// ParseTokens parses a single expression from the head of tokens and
// ignores the rest.
func ParseTokens(tokens []Token) (Node, error) {
	p := &parser{tokens: tokens, debug: parserDebugLog}
	return p.parseExpr(0)
}

func (p *parser) parse() (*Expr, error) {
	tokens, err := Scan(p.source)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	if p.debug {
		pp.Println(p.source)
		pp.Println(tokens)
	}

	root, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		if p.debug {
			log.Println("not consumed token: ", tok)
		}
		if p.strict {
			if _, isRParen := tok.(RParenToken); isRParen {
				return nil, p.createParseError(ErrMismatchedParentheses, tok)
			}
			return nil, p.createParseError(ErrUnexpectedToken, tok)
		}
	}

	if p.debug {
		pp.Println(root)
		log.Println(root)
	}

	return &Expr{
		Source: p.source,
		Root:   root,
	}, nil
}

func (p *parser) peek() (Token, bool) {
	if p.index == len(p.tokens) {
		return nil, false
	}
	return p.tokens[p.index], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.index++
	}
	return tok, ok
}

func (p *parser) parseExpr(minBP uint8) (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			return left, nil
		}

		opTok, isOP := tok.(OperatorToken)
		if !isOP {
			return left, nil
		}
		bp := infixOperatorBindingPowerMap[opTok.Operator]
		if bp.left < minBP {
			return left, nil
		}
		p.index++
		if p.debug {
			log.Println("OP", minBP, opTok, left)
		}

		right, err := p.parseExpr(bp.right)
		if err != nil {
			return nil, err
		}

		left = &BinaryOp{
			Operator: opTok.Operator,
			Left:     left,
			Right:    right,
		}
	}
}

func (p *parser) parsePrimary() (Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.createEOFError()
	}
	if p.debug {
		log.Println("primary token: ", tok)
	}

	switch t := tok.(type) {
	case NumberToken:
		return &Literal{Value: t.Value}, nil

	case LParenToken:
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}

		closing, ok := p.next()
		if !ok {
			return nil, p.createParseError(ErrMismatchedParentheses, tok)
		}
		if _, isRParen := closing.(RParenToken); !isRParen {
			return nil, p.createParseError(ErrMismatchedParentheses, closing)
		}
		return inner, nil

	default:
		return nil, p.createParseError(ErrUnexpectedToken, tok)
	}
}

func (p *parser) createParseError(reason error, t Token) error {
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("%w: %s at %d", reason, t, t.BeginsPos()+1),
		Extra: map[string]any{
			"position": t.BeginsPos() + 1,
			"token":    t.String(),
		},
	}
}

func (p *parser) createEOFError() error {
	// one past the last character; ParseTokens has no source and reports
	// the end of the last token instead
	pos := len(p.source) + 1
	if p.source == "" && len(p.tokens) != 0 {
		pos = p.tokens[len(p.tokens)-1].EndsPos() + 1
	}
	return &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("%w at %d", ErrUnexpectedEOF, pos),
		Extra: map[string]any{
			"position": pos,
		},
	}
}

package expression

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/karupanerura/pratt-calc/internal/types"
)

type lexer struct {
	source string
	index  int
}

func newLexer(source string) *lexer {
	return &lexer{
		source: source,
		index:  0,
	}
}

// Scan splits source into tokens. Space and tab separate tokens; an
// identifier runs from a lowercase letter up to the next space, whatever
// characters it contains.
func Scan(source string) ([]Token, error) {
	lex := newLexer(source)

	var tokens []Token
	for {
		tok, err := lex.consume()
		if err == io.EOF {
			return tokens, nil
		} else if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *lexer) consume() (Token, error) {
	for l.index != len(l.source) {
		switch c := l.source[l.index]; {
		case c == ' ' || c == '\t':
			l.index++ // just skip white spaces
		case c == '(':
			l.index++
			return LParenToken{rangeToken{beginsPos: l.index - 1, endsPos: l.index}}, nil
		case c == ')':
			l.index++
			return RParenToken{rangeToken{beginsPos: l.index - 1, endsPos: l.index}}, nil
		case '0' <= c && c <= '9':
			return l.consumeNumber()
		case 'a' <= c && c <= 'z':
			return l.consumeIdentifier(), nil
		default:
			if op, isOP := charOperatorMap[c]; isOP {
				l.index++
				return OperatorToken{
					rangeToken: rangeToken{beginsPos: l.index - 1, endsPos: l.index},
					Operator:   op,
				}, nil
			}
			return nil, l.createInvalidCharacterError()
		}
	}
	return nil, io.EOF
}

func (l *lexer) consumeNumber() (Token, error) {
	begins := l.index
	for l.index != len(l.source) && '0' <= l.source[l.index] && l.source[l.index] <= '9' {
		l.index++
	}

	literal := l.source[begins:l.index]
	v, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return nil, &types.Error{
			Tag: types.LexErrorTag,
			Err: fmt.Errorf("invalid integer %s at %d: %w", literal, begins+1, err),
			Extra: map[string]any{
				"position": begins + 1,
				"token":    literal,
			},
		}
	}

	return NumberToken{
		rangeToken: rangeToken{beginsPos: begins, endsPos: l.index},
		Value:      v,
	}, nil
}

func (l *lexer) consumeIdentifier() Token {
	begins := l.index
	if i := strings.IndexByte(l.source[begins:], ' '); i == -1 {
		l.index = len(l.source)
	} else {
		l.index = begins + i
	}

	tok := IdentifierToken{
		rangeToken: rangeToken{beginsPos: begins, endsPos: l.index},
		Name:       l.source[begins:l.index],
	}
	if l.index != len(l.source) {
		l.index++ // the delimiting space
	}
	return tok
}

func (l *lexer) createInvalidCharacterError() error {
	r, _ := utf8.DecodeRuneInString(l.source[l.index:])
	return &types.Error{
		Tag: types.LexErrorTag,
		Err: fmt.Errorf("invalid character %q at %d: expr=%q", r, l.index+1, l.source),
		Extra: map[string]any{
			"position": l.index + 1,
			"token":    string(r),
		},
	}
}

package expression

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/pratt-calc/internal/types"
)

func TestScan(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected []Token
	}{
		{
			source:   "",
			expected: nil,
		},
		{
			source:   " \t ",
			expected: nil,
		},
		{
			source: "5",
			expected: []Token{
				NumberToken{rangeToken{0, 1}, 5},
			},
		},
		{
			source: "12+345",
			expected: []Token{
				NumberToken{rangeToken{0, 2}, 12},
				OperatorToken{rangeToken{2, 3}, Add},
				NumberToken{rangeToken{3, 6}, 345},
			},
		},
		{
			source: "(1 - 2) * 3 / 4",
			expected: []Token{
				LParenToken{rangeToken{0, 1}},
				NumberToken{rangeToken{1, 2}, 1},
				OperatorToken{rangeToken{3, 4}, Sub},
				NumberToken{rangeToken{5, 6}, 2},
				RParenToken{rangeToken{6, 7}},
				OperatorToken{rangeToken{8, 9}, Mul},
				NumberToken{rangeToken{10, 11}, 3},
				OperatorToken{rangeToken{12, 13}, Div},
				NumberToken{rangeToken{14, 15}, 4},
			},
		},
		{
			source: "0042",
			expected: []Token{
				NumberToken{rangeToken{0, 4}, 42},
			},
		},
		{
			source: "foo bar",
			expected: []Token{
				IdentifierToken{rangeToken{0, 3}, "foo"},
				IdentifierToken{rangeToken{4, 7}, "bar"},
			},
		},
		{
			// an identifier only ends at a space
			source: "abc+1 2",
			expected: []Token{
				IdentifierToken{rangeToken{0, 5}, "abc+1"},
				NumberToken{rangeToken{6, 7}, 2},
			},
		},
		{
			source: "x\t(Y)",
			expected: []Token{
				IdentifierToken{rangeToken{0, 5}, "x\t(Y)"},
			},
		},
		{
			source: "1+a  +2",
			expected: []Token{
				NumberToken{rangeToken{0, 1}, 1},
				OperatorToken{rangeToken{1, 2}, Add},
				IdentifierToken{rangeToken{2, 3}, "a"},
				OperatorToken{rangeToken{5, 6}, Add},
				NumberToken{rangeToken{6, 7}, 2},
			},
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			tokens, err := Scan(tt.source)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.expected, tokens, cmp.AllowUnexported(rangeToken{}, NumberToken{}, IdentifierToken{}, OperatorToken{}, LParenToken{}, RParenToken{})); diff != "" {
				t.Errorf("unexpected tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanInvalidCharacter(t *testing.T) {
	t.Parallel()

	for _, source := range []string{
		"A",
		"1 + B",
		"1.5",
		"1 % 2",
		"1\n+ 2",
		"{1}",
		"1 ＋ 2",
		"99999999999999999999",
	} {
		source := source
		t.Run(source, func(t *testing.T) {
			t.Parallel()

			tokens, err := Scan(source)
			if err == nil {
				t.Fatalf("should be lex error: %v", tokens)
			}
			if !types.HasTag(err, types.LexErrorTag) {
				t.Errorf("expect %s but got %v", types.LexErrorTag, err)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	tokens, err := Scan("(12 + x) - 3 * 4 / 5")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, tok := range tokens {
		got = append(got, tok.String())
	}
	expected := []string{"(", "12", "+", "x)", "-", "3", "*", "4", "/", "5"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("unexpected token strings (-want +got):\n%s", diff)
	}
}

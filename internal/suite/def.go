package suite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/karupanerura/pratt-calc/internal/expression"
	"github.com/karupanerura/pratt-calc/internal/types"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var knownErrorTags = []types.ErrorTag{
	types.LexErrorTag,
	types.ParseErrorTag,
	types.OverflowErrorTag,
	types.ZeroDivisionErrorTag,
}

type suiteDef struct {
	Strict      bool             `json:"strict"`
	Concurrency int              `json:"concurrency"`
	Expressions []map[string]any `json:"expressions"`
}

func (d *suiteDef) compile() (*Suite, error) {
	if len(d.Expressions) == 0 {
		return nil, fmt.Errorf("empty expressions")
	}
	if d.Concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative: %d", d.Concurrency)
	}

	s := &Suite{
		Strict:      d.Strict,
		Concurrency: d.Concurrency,
		Cases:       make([]*Case, len(d.Expressions)),
	}
	seen := map[string]bool{}
	for i, raw := range d.Expressions {
		var def caseDef
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &def,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("expressions[%d]: %w", i, err)
		}

		c, err := def.compile()
		if err != nil {
			return nil, fmt.Errorf("expressions[%d]: %w", i, err)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("expressions[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
		s.Cases[i] = c
	}

	return s, nil
}

type caseDef struct {
	Name     string `mapstructure:"name"`
	Source   string `mapstructure:"source"`
	Expected any    `mapstructure:"expected"`
	Error    string `mapstructure:"error"`
}

func (d *caseDef) compile() (*Case, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(d.Source) == "" {
		return nil, fmt.Errorf("%s: source is required", d.Name)
	}
	if d.Expected != nil && d.Error != "" {
		return nil, fmt.Errorf("%s: expected and error are exclusive", d.Name)
	}

	c := &Case{
		Name:   d.Name,
		Source: d.Source,
	}
	if d.Expected != nil {
		n, err := decodeNumber(d.Expected)
		if err != nil {
			return nil, fmt.Errorf("%s: expected: %w", d.Name, err)
		}
		c.Expected = &n
	}
	if d.Error != "" {
		tag := types.ErrorTag(d.Error)
		if !lo.Contains(knownErrorTags, tag) {
			return nil, fmt.Errorf("%s: unknown error %q", d.Name, d.Error)
		}
		c.ExpectedError = tag
	}

	return c, nil
}

func decodeNumber(v any) (expression.Number, error) {
	switch vv := v.(type) {
	case json.Number:
		if i := strings.IndexByte(vv.String(), '.'); i == -1 {
			if n, err := vv.Int64(); errors.Is(err, strconv.ErrSyntax) {
				// retry parse as float64
			} else if err == nil {
				return expression.Int(n), nil
			}
		}
		f, err := vv.Float64()
		if err != nil {
			return expression.Number{}, err
		}
		return expression.Float(f), nil

	case string:
		return decodeNumber(json.Number(vv))

	case int:
		return expression.Int(int64(vv)), nil

	case int64:
		return expression.Int(vv), nil

	case float64:
		return expression.Float(vv), nil

	default:
		return expression.Number{}, fmt.Errorf("not a number: %v", v)
	}
}

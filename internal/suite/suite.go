// Package suite evaluates batches of named expressions loaded from YAML or
// JSON files and checks them against expected values or errors.
package suite

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/karupanerura/pratt-calc/internal/expression"
	"github.com/karupanerura/pratt-calc/internal/types"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const floatTolerance = 1e-9

type Suite struct {
	Strict      bool
	Concurrency int // 0 means unbounded
	Cases       []*Case
}

type Case struct {
	Name          string
	Source        string
	Expected      *expression.Number
	ExpectedError types.ErrorTag
}

type Result struct {
	Name   string             `json:"name"`
	Source string             `json:"source"`
	AST    string             `json:"ast,omitempty"`
	Value  *expression.Number `json:"value,omitempty"`
	Error  any                `json:"error,omitempty"`
	Passed bool               `json:"passed"`
	Reason string             `json:"reason,omitempty"`

	Err error `json:"-"`
}

type Report struct {
	Results []*Result `json:"results"`
	Passed  int       `json:"passed"`
	Failed  int       `json:"failed"`
}

func (r *Report) FailedResults() []*Result {
	return lo.Filter(r.Results, func(res *Result, _ int) bool {
		return !res.Passed
	})
}

// Run evaluates every case concurrently and returns the results in the
// order of s.Cases. It fails only when ctx is done first.
func (s *Suite) Run(ctx context.Context) (*Report, error) {
	parse := expression.Parse
	if s.Strict {
		parse = expression.ParseStrict
	}

	results := make([]*Result, len(s.Cases))
	eg, ctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		eg.SetLimit(s.Concurrency)
	}
	for i, c := range s.Cases {
		i := i
		c := c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.run(parse)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Results: results}
	report.Failed = len(report.FailedResults())
	report.Passed = len(results) - report.Failed
	return report, nil
}

func (c *Case) run(parse func(string) (*expression.Expr, error)) *Result {
	r := &Result{
		Name:   c.Name,
		Source: c.Source,
	}

	expr, err := parse(c.Source)
	if err == nil {
		r.AST = expr.Root.String()

		var v expression.Number
		v, err = expr.Evaluate()
		if err == nil {
			r.Value = &v
		}
	}
	if err != nil {
		r.Err = err
		var exception types.Exception
		if errors.As(err, &exception) {
			r.Error = exception.Exception()
		} else {
			r.Error = err.Error()
		}
	}

	r.Passed, r.Reason = c.check(r)
	return r
}

func (c *Case) check(r *Result) (bool, string) {
	switch {
	case c.ExpectedError != "":
		if r.Err == nil {
			return false, fmt.Sprintf("expected %s but got %s", c.ExpectedError, r.Value)
		}
		if !types.HasTag(r.Err, c.ExpectedError) {
			return false, fmt.Sprintf("expected %s but got %v", c.ExpectedError, r.Err)
		}
		return true, ""

	case c.Expected != nil:
		if r.Err != nil {
			return false, fmt.Sprintf("expected %s but got %v", c.Expected, r.Err)
		}
		if !matches(*r.Value, *c.Expected) {
			return false, fmt.Sprintf("expected %s but got %s", c.Expected, r.Value)
		}
		return true, ""

	default:
		if r.Err != nil {
			return false, r.Err.Error()
		}
		return true, ""
	}
}

// matches compares integers exactly and allows floatTolerance only when
// either side is real.
func matches(got, expected expression.Number) bool {
	if got.IsInteger() && expected.IsInteger() {
		return got.Equal(expected)
	}
	return math.Abs(got.Float64()-expected.Float64()) <= floatTolerance
}

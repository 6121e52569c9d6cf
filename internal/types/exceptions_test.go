package types_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/pratt-calc/internal/types"
)

var errBase = errors.New("mismatched parentheses")

func TestErrorException(t *testing.T) {
	t.Parallel()

	inner := &types.Error{
		Tag: types.ParseErrorTag,
		Err: fmt.Errorf("%w: ( at 1", errBase),
		Extra: map[string]any{
			"position": 1,
		},
	}
	err := fmt.Errorf("left of operator %q: %w", "+", inner)

	if got, expected := inner.Error(), "ParseError: mismatched parentheses: ( at 1"; got != expected {
		t.Errorf("expect %q but got %q", expected, got)
	}
	if !errors.Is(err, errBase) {
		t.Error("the wrapped reason should be reachable with errors.Is")
	}
	if !types.HasTag(err, types.ParseErrorTag) {
		t.Error("the tag should be found through wrapping")
	}
	if types.HasTag(err, types.LexErrorTag) {
		t.Error("an unrelated tag should not be found")
	}
	if tag, ok := types.TagOf(err); !ok || tag != types.ParseErrorTag {
		t.Errorf("expect (%s, true) but got (%s, %v)", types.ParseErrorTag, tag, ok)
	}
	if _, ok := types.TagOf(errBase); ok {
		t.Error("a plain error has no tag")
	}

	expected := map[string]any{
		"tags":     []any{types.ParseErrorTag},
		"message":  "mismatched parentheses: ( at 1",
		"position": 1,
	}
	if diff := cmp.Diff(expected, inner.Exception()); diff != "" {
		t.Errorf("unexpected exception (-want +got):\n%s", diff)
	}
}

func TestNestedErrorTags(t *testing.T) {
	t.Parallel()

	err := &types.Error{
		Tag: types.OverflowErrorTag,
		Err: &types.Error{Tag: types.ZeroDivisionErrorTag},
	}

	expected := map[string]any{
		"tags":    []any{types.OverflowErrorTag, types.ZeroDivisionErrorTag},
		"message": "ZeroDivisionError",
	}
	if diff := cmp.Diff(expected, err.Exception()); diff != "" {
		t.Errorf("unexpected exception (-want +got):\n%s", diff)
	}
	if got := (&types.Error{Tag: types.LexErrorTag}).Error(); got != "LexError" {
		t.Errorf("expect LexError but got %s", got)
	}
}

func TestExceptionKeepsReservedKeys(t *testing.T) {
	t.Parallel()

	err := &types.Error{
		Tag: types.LexErrorTag,
		Err: errBase,
		Extra: map[string]any{
			"tags":     "overridden",
			"message":  "overridden",
			"position": 3,
		},
	}

	expected := map[string]any{
		"tags":     []any{types.LexErrorTag},
		"message":  "mismatched parentheses",
		"position": 3,
	}
	if diff := cmp.Diff(expected, err.Exception()); diff != "" {
		t.Errorf("unexpected exception (-want +got):\n%s", diff)
	}
	if err.Extra["tags"] != "overridden" {
		t.Error("Extra must not be modified")
	}
}

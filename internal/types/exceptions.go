package types

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

type ErrorTag string

const (
	LexErrorTag          ErrorTag = "LexError"
	ParseErrorTag        ErrorTag = "ParseError"
	OverflowErrorTag     ErrorTag = "OverflowError"
	ZeroDivisionErrorTag ErrorTag = "ZeroDivisionError"
)

type Exception interface {
	error
	Exception() any
}

type Error struct {
	Tag   ErrorTag
	Err   error
	Extra map[string]any
}

var _ Exception = (*Error)(nil)

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Tag)
	}

	var b strings.Builder
	b.WriteString(string(e.Tag))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Exception() any {
	tags := []any{e.Tag}
	for err := errors.Unwrap(error(e)); err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok {
			tags = append(tags, e.Tag)
		}
	}

	// tags and message are reserved; Extra never overrides them
	o := lo.Assign(e.Extra, map[string]any{
		"tags": tags,
	})
	if e.Err != nil {
		o["message"] = e.Err.Error()
	} else {
		delete(o, "message")
	}
	return o
}

// HasTag reports whether any *Error in err's chain carries tag.
func HasTag(err error, tag ErrorTag) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if e, ok := err.(*Error); ok && e.Tag == tag {
			return true
		}
	}
	return false
}

// TagOf returns the tag of the outermost *Error in err's chain.
func TagOf(err error) (ErrorTag, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Tag, true
	}
	return "", false
}

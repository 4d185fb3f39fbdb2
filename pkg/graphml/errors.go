package graphml

import (
	"fmt"

	"github.com/matzehuels/graphkit/pkg/errors"
)

// ParseError is the single error kind returned by Read and Probe. It records
// the input position where parsing stopped and wraps a coded *errors.Error
// describing the cause (malformed XML, unknown attribute type, invalid value,
// unresolved node reference, ...).
type ParseError struct {
	Line   int // 1-based line of the offending token, 0 if unknown
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: line %d: %s", e.Line, errors.UserMessage(e.Err))
	}
	return "parse error: " + errors.UserMessage(e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Code returns the error code of the wrapped cause.
func (e *ParseError) Code() errors.Code { return errors.GetCode(e.Err) }

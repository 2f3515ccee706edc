package content

import (
	"errors"
	"fmt"
)

// Kind classifies a content generation failure. Every failure a Generator
// returns is one of these; raw parser and network errors never escape.
type Kind int

const (
	// KindInvalidInput means a caller-side precondition was violated
	// (an input string was empty after trimming).
	KindInvalidInput Kind = iota
	// KindUpstream means the external generation call itself failed.
	KindUpstream
	// KindEmptyResponse means the model returned no text.
	KindEmptyResponse
	// KindMalformed means text was returned but could not be interpreted
	// as the expected structured shape.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream_failure"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformed:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error is the uniform failure signal returned by every generate operation.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "quest"
	Err  error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error returned by this package.
// ok is false for nil and foreign errors.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func invalidInput(op, field string) error {
	return &Error{Kind: KindInvalidInput, Op: op, Err: fmt.Errorf("%s must not be empty", field)}
}

func upstream(op string, err error) error {
	return &Error{Kind: KindUpstream, Op: op, Err: err}
}

func emptyResponse(op string) error {
	return &Error{Kind: KindEmptyResponse, Op: op}
}

func malformed(op string, err error) error {
	return &Error{Kind: KindMalformed, Op: op, Err: err}
}

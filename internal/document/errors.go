package document

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkflow is returned for any document that cannot be imported.
var ErrInvalidWorkflow = errors.New("invalid workflow")

// ParseError describes why an import was rejected.
// Wraps ErrInvalidWorkflow for errors.Is() compatibility.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrInvalidWorkflow.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidWorkflow.Error(), e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrInvalidWorkflow }

// Cause is the underlying decoder or schema error, if any.
func (e *ParseError) Cause() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func invalid(msg string, err error) error {
	return &ParseError{Msg: msg, Err: err}
}

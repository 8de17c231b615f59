package parser

import (
	"errors"
	"fmt"

	"github.com/metaphox/pratt/ast"
)

// Sentinel errors for each failure kind. A [*ParseError] unwraps to exactly
// one of them, so callers can test with errors.Is.
var (
	// ErrUnexpectedToken: a token with no meaning where it was found — a bare
	// closing bracket in primary position, a symbol that is not a prefix
	// operator, or an operator that is neither infix nor postfix.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrMismatchedDelimiter: a required ')', mixfix closer or ':' is missing
	// or replaced by something else.
	ErrMismatchedDelimiter = errors.New("mismatched delimiter")
	// ErrTrailingInput: tokens remain after a complete top-level expression.
	ErrTrailingInput = errors.New("trailing input")
	// ErrInputTooLong: the input exceeds Options.MaxInputLength.
	ErrInputTooLong = errors.New("input too long")
)

// ErrorKind classifies a [ParseError].
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota + 1
	MismatchedDelimiter
	TrailingInput
	InputTooLong
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case MismatchedDelimiter:
		return ErrMismatchedDelimiter
	case TrailingInput:
		return ErrTrailingInput
	case InputTooLong:
		return ErrInputTooLong
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is the first failure met during a parse. No tree is returned
// alongside it.
type ParseError struct {
	Kind  ErrorKind
	Token ast.Token // the offending token; EOF when input ran out
	Want  rune      // the expected delimiter, set for MismatchedDelimiter
	Msg   string    // optional detail
}

func (e *ParseError) Error() string {
	switch {
	case e.Kind == MismatchedDelimiter:
		return fmt.Sprintf("%s: expected %q, got %s", e.Kind, e.Want, describe(e.Token))
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, describe(e.Token))
}

// Unwrap returns the sentinel matching e.Kind.
func (e *ParseError) Unwrap() error { return e.Kind.sentinel() }

func describe(tok ast.Token) string {
	if tok.Type == ast.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Symbol)
}

func unexpected(tok ast.Token, msg string) *ParseError {
	return &ParseError{Kind: UnexpectedToken, Token: tok, Msg: fmt.Sprintf("%s %s", describe(tok), msg)}
}

func mismatched(tok ast.Token, want rune) *ParseError {
	return &ParseError{Kind: MismatchedDelimiter, Token: tok, Want: want}
}

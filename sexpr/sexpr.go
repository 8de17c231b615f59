// Package sexpr reads the rendered form of an expression tree back into
// nodes.
//
// The input is what [ast.Node.String] produces: a bare atom such as "x", or
// "(op a b …)" where op is a single operator symbol and each operand is
// itself rendered. Reading a rendering and rendering the result yields the
// same text.
//
// Forms are not part of the rendering, so [Read] recovers them from the
// table. This is exact unless a symbol is both a prefix and a plain postfix
// operator: "(~ a)" is then read as prefix even if it came from "a~".
package sexpr

import (
	"errors"
	"fmt"

	"github.com/metaphox/pratt/ast"
	"github.com/metaphox/pratt/lexer"
	"github.com/metaphox/pratt/power"
)

// ErrMalformed is wrapped by every error returned from [Read].
var ErrMalformed = errors.New("malformed s-expression")

// Read parses a rendered tree. The table is used to recover each
// Application's form from its operator and operand count; nil means
// [power.Default].
func Read(text string, table *power.Table) (ast.Node, error) {
	if table == nil {
		table = power.Default()
	}
	r := reader{lex: lexer.New(text), table: table}
	n, err := r.node()
	if err != nil {
		return nil, err
	}
	if tok := r.lex.Peek(); tok.Type != ast.EOF {
		return nil, r.errorf(tok, "trailing input")
	}
	return n, nil
}

type reader struct {
	lex   *lexer.Lexer
	table *power.Table
}

func (r *reader) errorf(tok ast.Token, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %s", ErrMalformed, fmt.Sprintf(format, args...), tok)
}

func (r *reader) node() (ast.Node, error) {
	tok := r.lex.Advance()
	switch {
	case tok.Type == ast.ATOM:
		return &ast.Leaf{Symbol: tok.Symbol}, nil
	case tok.Is(power.GroupOpen):
		return r.application()
	}
	return nil, r.errorf(tok, "expected atom or '('")
}

func (r *reader) application() (ast.Node, error) {
	head := r.lex.Advance()
	if head.Type != ast.OP || head.Is(power.GroupOpen) || head.Is(power.GroupClose) {
		return nil, r.errorf(head, "expected operator")
	}

	var args []ast.Node
	for !r.lex.Peek().Is(power.GroupClose) {
		if r.lex.Peek().Type == ast.EOF {
			return nil, r.errorf(ast.EOFToken, "unclosed application")
		}
		arg, err := r.node()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	r.lex.Advance() // ')'

	form, err := r.formOf(head, len(args))
	if err != nil {
		return nil, err
	}
	return &ast.Application{Op: head.Symbol, Form: form, Args: args}, nil
}

func (r *reader) formOf(head ast.Token, n int) (ast.Form, error) {
	op := head.Symbol
	_, isPrefix := r.table.Prefix(op)
	_, isPostfix := r.table.Postfix(op)
	_, _, isInfix := r.table.Infix(op)
	_, isMixfix := r.table.Closer(op)

	switch {
	// A one-operand node of a symbol that is both prefix and postfix is
	// read as prefix.
	case n == 1 && isPrefix:
		return ast.Prefix, nil
	case n == 1 && isPostfix && !isMixfix:
		return ast.Postfix, nil
	case n == 2 && isPostfix && isMixfix:
		return ast.Index, nil
	case n == 2 && isInfix && !isMixfix:
		return ast.Infix, nil
	case n == 3 && isInfix && isMixfix:
		return ast.Ternary, nil
	}
	return 0, r.errorf(head, "operator takes no form with %d operand(s)", n)
}

// Package ast defines the token model and the expression tree used by the
// Pratt lexer and parser.
//
// A token is one of three things: an atom (a single operand character), an
// operator (a single punctuation character acting as an operator or bracket),
// or the end-of-input sentinel. Tokens carry no precedence; binding powers
// are looked up by symbol in package power.
package ast

import "fmt"

// TokenType identifies the category of a scanned token.
// The zero value (0) is reserved and not a valid token.
type TokenType int

const (
	// ILLEGAL is the zero value. The lexer never produces it.
	ILLEGAL TokenType = iota
	// EOF marks the end of the token stream. Advancing past it yields EOF again.
	EOF
	// ATOM is a single operand character: a letter or a digit.
	ATOM
	// OP is any other non-whitespace character, including brackets.
	OP
)

var tokenTypeNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	ATOM:    "ATOM",
	OP:      "OP",
}

func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenTypeNames) {
		return tokenTypeNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit. Tokens are small values and are compared
// with ==.
type Token struct {
	Type   TokenType
	Symbol rune // zero for EOF
}

// EOFToken is the end-of-input sentinel.
var EOFToken = Token{Type: EOF}

// Atom returns an ATOM token for r.
func Atom(r rune) Token { return Token{Type: ATOM, Symbol: r} }

// Op returns an OP token for r.
func Op(r rune) Token { return Token{Type: OP, Symbol: r} }

// Is reports whether t is the operator token for r.
func (t Token) Is(r rune) bool { return t.Type == OP && t.Symbol == r }

// String returns the token's symbol, or "EOF" for the sentinel. It is meant
// for error messages and debugging.
func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return string(t.Symbol)
}

// GoString shows the token category alongside its symbol, e.g. Op('+').
func (t Token) GoString() string {
	switch t.Type {
	case ATOM:
		return fmt.Sprintf("Atom(%q)", t.Symbol)
	case OP:
		return fmt.Sprintf("Op(%q)", t.Symbol)
	case EOF:
		return "EOF"
	}
	return "ILLEGAL"
}

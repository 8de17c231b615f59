package ast

import "strings"

// The tree produced by the parser is an S-expression:
//
//	Node (interface)
//	  Leaf         — an atomic operand, renders as its symbol
//	  Application  — an operator applied to its operands, renders as (op a b …)
//
// Grouping parentheses never produce a node. Trees are built bottom-up and
// are not mutated afterwards; every node has exactly one parent.

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element of the expression tree.
type Node interface {
	// String renders the node in fully parenthesised prefix form.
	String() string
	node()
}

// ── Forms ─────────────────────────────────────────────────────────────────────

// Form is the syntactic shape an operator was used in. It fixes the number of
// operands of an Application.
type Form int

const (
	// Prefix is a unary operator before its operand: -x
	Prefix Form = iota + 1
	// Postfix is a unary operator after its operand: x!
	Postfix
	// Index is a bracketed postfix operator: x[i]
	Index
	// Infix is a binary operator between its operands: a + b
	Infix
	// Ternary is a bracketed infix operator: c ? a : b
	Ternary
)

// Arity returns the number of operands an Application of this form holds,
// or 0 for an unknown form.
func (f Form) Arity() int {
	switch f {
	case Prefix, Postfix:
		return 1
	case Index, Infix:
		return 2
	case Ternary:
		return 3
	}
	return 0
}

func (f Form) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	case Index:
		return "index"
	case Infix:
		return "infix"
	case Ternary:
		return "ternary"
	}
	return "unknown"
}

// ── Nodes ─────────────────────────────────────────────────────────────────────

// Leaf is an atomic operand.
type Leaf struct {
	Symbol rune
}

func (l *Leaf) node()          {}
func (l *Leaf) String() string { return string(l.Symbol) }

// Application is an operator applied to an ordered list of operands.
// len(Args) equals Form.Arity() for every Application built by the parser.
type Application struct {
	Op   rune
	Form Form
	Args []Node
}

func (a *Application) node() {}

// String renders (op a1 a2 …) with single spaces.
func (a *Application) String() string {
	var sb strings.Builder
	a.render(&sb)
	return sb.String()
}

func (a *Application) render(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteRune(a.Op)
	for _, arg := range a.Args {
		sb.WriteByte(' ')
		if app, ok := arg.(*Application); ok {
			app.render(sb)
		} else {
			sb.WriteString(arg.String())
		}
	}
	sb.WriteByte(')')
}

// NewApplication builds an Application and copies args so that the caller's
// slice can be reused.
func NewApplication(op rune, form Form, args ...Node) *Application {
	return &Application{Op: op, Form: form, Args: append([]Node(nil), args...)}
}

// ── Traversal ─────────────────────────────────────────────────────────────────

// Walk visits n and its descendants depth-first in pre-order. If fn returns
// false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if app, ok := n.(*Application); ok {
		for _, arg := range app.Args {
			Walk(arg, fn)
		}
	}
}

// Depth returns the height of the tree rooted at n. A Leaf has depth 1.
func Depth(n Node) int {
	app, ok := n.(*Application)
	if !ok {
		if n == nil {
			return 0
		}
		return 1
	}
	deepest := 0
	for _, arg := range app.Args {
		if d := Depth(arg); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// CheckArity returns the first Application whose operand count does not match
// its form, or nil if the whole tree is well-formed.
func CheckArity(n Node) *Application {
	var bad *Application
	Walk(n, func(n Node) bool {
		if bad != nil {
			return false
		}
		if app, ok := n.(*Application); ok && len(app.Args) != app.Form.Arity() {
			bad = app
			return false
		}
		return true
	})
	return bad
}

// Package power holds the binding-power tables that drive the Pratt parser.
//
// A table answers three questions about an operator symbol: how tightly it
// binds as a prefix operator, as an infix operator, and as a postfix
// operator. It also records the closing symbol of mixfix operators such as
// indexing (x[i]) and the conditional (c ? a : b). The tables are the only
// place precedence and associativity live: adding an operator is adding an
// [Entry], never new parsing code.
//
// Associativity is encoded in the gap between an infix operator's left and
// right power, which always differ by exactly one:
//
//	left-associative   (p, p+1)   e.g. + = (5, 6)
//	right-associative  (p+1, p)   e.g. = = (2, 1)
package power

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidEntry is wrapped by every validation error returned from [New].
var ErrInvalidEntry = errors.New("invalid operator entry")

// Grouping symbols are handled by the parser itself and cannot be operators.
const (
	GroupOpen  = '('
	GroupClose = ')'
)

// Role is the position an operator takes relative to its operands.
type Role string

const (
	RolePrefix  Role = "prefix"
	RoleInfix   Role = "infix"
	RolePostfix Role = "postfix"
)

func (r Role) rank() int {
	switch r {
	case RolePrefix:
		return 0
	case RoleInfix:
		return 1
	case RolePostfix:
		return 2
	}
	return 3
}

// Entry is one row of an operator table, in the shape used by table files.
//
// Prefix entries set only Right, postfix entries only Left, infix entries
// both. Close names the closing symbol of a mixfix operator: the ']' of an
// index or the ':' of a conditional.
type Entry struct {
	Symbol string `toml:"symbol" yaml:"symbol"`
	Role   Role   `toml:"role" yaml:"role"`
	Left   uint8  `toml:"left,omitempty" yaml:"left,omitempty"`
	Right  uint8  `toml:"right,omitempty" yaml:"right,omitempty"`
	Close  string `toml:"close,omitempty" yaml:"close,omitempty"`
}

type infixPower struct{ left, right uint8 }

// Table is an immutable set of operator binding powers. The zero value is
// an empty table; build populated tables with [New] or [Default].
type Table struct {
	prefix  map[rune]uint8
	infix   map[rune]infixPower
	postfix map[rune]uint8
	closers map[rune]rune // mixfix opener -> closing symbol
	closing map[rune]bool // every symbol that ends a bracketed context
}

// defaultEntries is the reference operator set.
var defaultEntries = []Entry{
	{Symbol: "+", Role: RolePrefix, Right: 9},
	{Symbol: "-", Role: RolePrefix, Right: 9},

	{Symbol: "=", Role: RoleInfix, Left: 2, Right: 1},
	{Symbol: "?", Role: RoleInfix, Left: 4, Right: 3, Close: ":"},
	{Symbol: "+", Role: RoleInfix, Left: 5, Right: 6},
	{Symbol: "-", Role: RoleInfix, Left: 5, Right: 6},
	{Symbol: "*", Role: RoleInfix, Left: 7, Right: 8},
	{Symbol: "/", Role: RoleInfix, Left: 7, Right: 8},
	{Symbol: ".", Role: RoleInfix, Left: 14, Right: 13},

	{Symbol: "!", Role: RolePostfix, Left: 11},
	{Symbol: "[", Role: RolePostfix, Left: 11, Close: "]"},
}

var defaultTable = mustNew(defaultEntries)

// Default returns the reference table:
//
//	prefix   + -        9
//	infix    =          (2, 1)   right-associative
//	         ? … :      (4, 3)   right-associative, mixfix
//	         + -        (5, 6)
//	         * /        (7, 8)
//	         .          (14, 13) right-associative
//	postfix  !          11
//	         [ … ]      11       mixfix
func Default() *Table { return defaultTable }

// DefaultEntries returns a copy of the entries behind [Default].
func DefaultEntries() []Entry {
	return append([]Entry(nil), defaultEntries...)
}

func mustNew(entries []Entry) *Table {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// New builds a table from entries and validates it. The returned error wraps
// [ErrInvalidEntry] and names the offending entry.
func New(entries []Entry) (*Table, error) {
	t := &Table{
		prefix:  make(map[rune]uint8),
		infix:   make(map[rune]infixPower),
		postfix: make(map[rune]uint8),
		closers: make(map[rune]rune),
		closing: map[rune]bool{GroupClose: true},
	}

	for i, e := range entries {
		sym, err := symbolOf(e.Symbol)
		if err != nil {
			return nil, entryError(i, e, err.Error())
		}
		if sym == GroupOpen || sym == GroupClose {
			return nil, entryError(i, e, "grouping parentheses cannot be redefined")
		}

		switch e.Role {
		case RolePrefix:
			if e.Right == 0 || e.Left != 0 {
				return nil, entryError(i, e, "prefix operators take only a non-zero right power")
			}
			if e.Close != "" {
				return nil, entryError(i, e, "prefix operators cannot be mixfix")
			}
			if _, dup := t.prefix[sym]; dup {
				return nil, entryError(i, e, "duplicate prefix operator")
			}
			t.prefix[sym] = e.Right
			continue

		case RoleInfix:
			if e.Left == 0 || e.Right == 0 {
				return nil, entryError(i, e, "infix operators need non-zero left and right powers")
			}
			if diff := int(e.Left) - int(e.Right); diff != 1 && diff != -1 {
				return nil, entryError(i, e, "infix left and right powers must differ by exactly one")
			}
			if _, dup := t.infix[sym]; dup {
				return nil, entryError(i, e, "duplicate infix operator")
			}
			t.infix[sym] = infixPower{left: e.Left, right: e.Right}

		case RolePostfix:
			if e.Left == 0 || e.Right != 0 {
				return nil, entryError(i, e, "postfix operators take only a non-zero left power")
			}
			if _, dup := t.postfix[sym]; dup {
				return nil, entryError(i, e, "duplicate postfix operator")
			}
			t.postfix[sym] = e.Left

		default:
			return nil, entryError(i, e, fmt.Sprintf("unknown role %q", e.Role))
		}

		if e.Close == "" {
			continue
		}
		closeSym, err := symbolOf(e.Close)
		if err != nil {
			return nil, entryError(i, e, "close: "+err.Error())
		}
		if closeSym == sym || closeSym == GroupOpen {
			return nil, entryError(i, e, fmt.Sprintf("%q cannot close %q", closeSym, sym))
		}
		if prev, ok := t.closers[sym]; ok && prev != closeSym {
			return nil, entryError(i, e, fmt.Sprintf("%q already closes with %q", sym, prev))
		}
		t.closers[sym] = closeSym
		t.closing[closeSym] = true
	}

	// A closing symbol must stay unambiguous: it can never start or extend
	// an expression.
	for c := range t.closing {
		if t.isOperator(c) {
			return nil, fmt.Errorf("%w: closing symbol %q is also an operator", ErrInvalidEntry, c)
		}
	}
	return t, nil
}

func symbolOf(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case s == "":
		return 0, errors.New("empty symbol")
	case size != len(s):
		return 0, fmt.Errorf("symbol %q must be a single character", s)
	case r == utf8.RuneError:
		return 0, fmt.Errorf("symbol %q is not valid UTF-8", s)
	case unicode.IsSpace(r):
		return 0, errors.New("symbol cannot be whitespace")
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return 0, fmt.Errorf("symbol %q would scan as an atom", s)
	}
	return r, nil
}

func entryError(i int, e Entry, msg string) error {
	return fmt.Errorf("%w #%d (%s %q): %s", ErrInvalidEntry, i, e.Role, e.Symbol, msg)
}

// ── Lookups ───────────────────────────────────────────────────────────────────

// Prefix returns the right binding power of op as a prefix operator.
func (t *Table) Prefix(op rune) (right uint8, ok bool) {
	right, ok = t.prefix[op]
	return right, ok
}

// Infix returns the left and right binding powers of op as an infix operator.
func (t *Table) Infix(op rune) (left, right uint8, ok bool) {
	p, ok := t.infix[op]
	return p.left, p.right, ok
}

// Postfix returns the left binding power of op as a postfix operator.
func (t *Table) Postfix(op rune) (left uint8, ok bool) {
	left, ok = t.postfix[op]
	return left, ok
}

// Closer returns the closing symbol of a mixfix operator.
func (t *Table) Closer(op rune) (rune, bool) {
	c, ok := t.closers[op]
	return c, ok
}

// IsCloser reports whether r ends a bracketed context: ')' or the closing
// symbol of any mixfix operator.
func (t *Table) IsCloser(r rune) bool { return r == GroupClose || t.closing[r] }

func (t *Table) isOperator(r rune) bool {
	_, pre := t.prefix[r]
	_, in := t.infix[r]
	_, post := t.postfix[r]
	return pre || in || post
}

// Entries returns the table as entries ordered by role, then symbol.
func (t *Table) Entries() []Entry {
	var out []Entry
	closeOf := func(r rune) string {
		if c, ok := t.closers[r]; ok {
			return string(c)
		}
		return ""
	}
	for r, right := range t.prefix {
		out = append(out, Entry{Symbol: string(r), Role: RolePrefix, Right: right})
	}
	for r, p := range t.infix {
		out = append(out, Entry{Symbol: string(r), Role: RoleInfix, Left: p.left, Right: p.right, Close: closeOf(r)})
	}
	for r, left := range t.postfix {
		out = append(out, Entry{Symbol: string(r), Role: RolePostfix, Left: left, Close: closeOf(r)})
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := out[i].Role.rank(), out[j].Role.rank(); a != b {
			return a < b
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

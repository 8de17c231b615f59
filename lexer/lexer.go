// Package lexer implements the tokeniser that feeds the Pratt parser.
//
// The lexer converts a source string into a queue of [ast.Token] values.
// Call [New] to scan the input, then consume it front to back with
// [Lexer.Advance] and look ahead with [Lexer.Peek].
//
// Design notes:
//   - The input is scanned once, up front, into a slice; the cursor is an
//     index into that slice.
//   - Whitespace is skipped. Every letter or digit is its own ATOM token, so
//     "12" is two atoms and "ab" is two atoms. Multi-character atoms are not
//     supported at this layer.
//   - Every other character is an OP token. The lexer does not know which
//     operators exist; unknown symbols are rejected later by the parser.
//   - The lexer never fails.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/metaphox/pratt/ast"
)

// Lexer holds the scanned tokens of a single source string and a read cursor.
// Create one with [New]. A Lexer must not be shared between goroutines.
type Lexer struct {
	tokens []ast.Token
	pos    int // index of the next token to hand out
}

// New scans input and returns a [Lexer] positioned at the first token.
func New(input string) *Lexer {
	s := scanner{input: input}
	s.readChar()
	for {
		s.skipWhitespace()
		if s.pos >= len(s.input) {
			break
		}
		s.tokens = append(s.tokens, classify(s.ch))
		s.readChar()
	}
	return &Lexer{tokens: s.tokens}
}

// Advance removes and returns the next token. Once the input is exhausted it
// returns [ast.EOFToken] on every call.
func (l *Lexer) Advance() ast.Token {
	if l.pos >= len(l.tokens) {
		return ast.EOFToken
	}
	tok := l.tokens[l.pos]
	l.pos++
	return tok
}

// Peek returns the next token without consuming it, or [ast.EOFToken] at the
// end of input.
func (l *Lexer) Peek() ast.Token {
	if l.pos >= len(l.tokens) {
		return ast.EOFToken
	}
	return l.tokens[l.pos]
}

// Remaining reports how many tokens are left before EOF.
func (l *Lexer) Remaining() int { return len(l.tokens) - l.pos }

// Tokens returns a copy of the tokens not yet consumed. EOF is not included.
func (l *Lexer) Tokens() []ast.Token {
	return append([]ast.Token(nil), l.tokens[l.pos:]...)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// scanner walks the input one rune at a time.
type scanner struct {
	input   string
	pos     int  // byte offset of ch
	readPos int  // byte offset of the rune after ch
	ch      rune // current rune; utf8.RuneError past the end
	tokens  []ast.Token
}

// readChar advances by one rune. Past the end of input ch is set to
// utf8.RuneError and pos to len(input).
func (s *scanner) readChar() {
	if s.readPos >= len(s.input) {
		s.pos = len(s.input)
		s.ch = utf8.RuneError
		return
	}
	r, size := utf8.DecodeRuneInString(s.input[s.readPos:])
	s.pos = s.readPos
	s.readPos += size
	s.ch = r
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.input) && unicode.IsSpace(s.ch) {
		s.readChar()
	}
}

// classify maps a single non-space rune to its token.
func classify(r rune) ast.Token {
	if IsAtom(r) {
		return ast.Atom(r)
	}
	return ast.Op(r)
}

// IsAtom reports whether r lexes as an ATOM: a Unicode letter or digit.
func IsAtom(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Package parser implements a precedence-climbing (Pratt) expression parser.
//
// The parser reads tokens from a [lexer.Lexer] and builds a fully
// parenthesised [ast.Node] tree. Precedence and associativity come entirely
// from a [power.Table]; the parsing code has no per-level grammar rules.
//
// Usage:
//
//	tree, err := parser.Parse("a = 0 ? b : c = d")
//	if err != nil { ... }
//	fmt.Println(tree) // (= a (= (? 0 b c) d))
//
// The first failure aborts the parse and is returned as a [*ParseError];
// there is no recovery and no partial tree.
//
// Recursion depth equals the nesting depth of the input and is bounded only
// by the goroutine stack.
package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/metaphox/pratt/ast"
	"github.com/metaphox/pratt/lexer"
	"github.com/metaphox/pratt/power"
)

// Options configures a [Parser].
type Options struct {
	// Table supplies binding powers. Nil means [power.Default].
	Table *power.Table
	// Logger receives a debug trace of every parsing decision and a warning
	// for every failed parse. Nil discards all output.
	Logger *slog.Logger
	// MaxInputLength caps the input size in bytes. Zero or a negative
	// value means no limit.
	MaxInputLength int
}

// Parser turns source text into an expression tree. Create one with [New].
// A Parser may be reused for many inputs but must not be used by two
// goroutines at once.
type Parser struct {
	lex    *lexer.Lexer
	table  *power.Table
	logger *slog.Logger
	maxLen int
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	if opts.Table == nil {
		opts.Table = power.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		table:  opts.Table,
		logger: opts.Logger.With("component", "pratt-parser"),
		maxLen: opts.MaxInputLength,
	}
}

// Parse parses text with the default operator table.
func Parse(text string) (ast.Node, error) {
	return New(Options{}).Parse(text)
}

// Parse parses a single expression. The whole input must be consumed:
// anything left after a complete expression is a TrailingInput error.
func (p *Parser) Parse(input string) (ast.Node, error) {
	if p.maxLen > 0 && len(input) > p.maxLen {
		return nil, &ParseError{
			Kind:  InputTooLong,
			Token: ast.EOFToken,
			Msg:   fmt.Sprintf("%d bytes exceeds the limit of %d", len(input), p.maxLen),
		}
	}

	p.lex = lexer.New(input)
	p.logger.Debug("starting parse", "input", input, "tokens", p.lex.Remaining())

	tree, err := p.parseExpr(0)
	if err == nil {
		if tok := p.lex.Peek(); tok.Type != ast.EOF {
			err = &ParseError{Kind: TrailingInput, Token: tok, Msg: fmt.Sprintf("%s after complete expression", describe(tok))}
		}
	}
	if err != nil {
		p.logger.Warn("parse failed", "input", input, "error", err)
		return nil, err
	}

	p.logger.Debug("parse completed", "input", input, "tree", tree)
	return tree, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// expect consumes the next token and fails unless it is the operator want.
func (p *Parser) expect(want rune) error {
	if tok := p.lex.Advance(); !tok.Is(want) {
		return mismatched(tok, want)
	}
	return nil
}

func (p *Parser) tracef(msg string, args ...any) {
	if p.logger.Enabled(context.Background(), slog.LevelDebug) {
		p.logger.Debug(msg, args...)
	}
}

// ── Expression parsing (Pratt) ────────────────────────────────────────────────

// parseExpr parses an expression whose operators all bind with a left power
// of at least minBP. An operator with a lower left power ends the expression
// and is left for an enclosing call to consume.
func (p *Parser) parseExpr(minBP uint8) (ast.Node, error) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.lex.Peek()

		// End of input, a closing delimiter or a stray atom ends this
		// expression; the caller decides whether that is an error.
		if tok.Type != ast.OP || p.table.IsCloser(tok.Symbol) {
			p.tracef("yield", "lhs", lhs, "next", tok, "min_bp", minBP)
			return lhs, nil
		}
		op := tok.Symbol

		if left, ok := p.table.Postfix(op); ok {
			if left < minBP {
				p.tracef("yield", "op", tok, "l_bp", left, "min_bp", minBP)
				return lhs, nil
			}
			p.lex.Advance()

			if closer, mixfix := p.table.Closer(op); mixfix {
				body, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				if err := p.expect(closer); err != nil {
					return nil, err
				}
				lhs = ast.NewApplication(op, ast.Index, lhs, body)
			} else {
				lhs = ast.NewApplication(op, ast.Postfix, lhs)
			}
			p.tracef("postfix", "op", tok, "l_bp", left, "min_bp", minBP, "lhs", lhs)
			continue
		}

		if left, right, ok := p.table.Infix(op); ok {
			if left < minBP {
				p.tracef("yield", "op", tok, "l_bp", left, "min_bp", minBP)
				return lhs, nil
			}
			p.lex.Advance()

			if closer, mixfix := p.table.Closer(op); mixfix {
				mid, err := p.parseExpr(0)
				if err != nil {
					return nil, err
				}
				if err := p.expect(closer); err != nil {
					return nil, err
				}
				rhs, err := p.parseExpr(right)
				if err != nil {
					return nil, err
				}
				lhs = ast.NewApplication(op, ast.Ternary, lhs, mid, rhs)
			} else {
				rhs, err := p.parseExpr(right)
				if err != nil {
					return nil, err
				}
				lhs = ast.NewApplication(op, ast.Infix, lhs, rhs)
			}
			p.tracef("infix", "op", tok, "l_bp", left, "r_bp", right, "min_bp", minBP, "lhs", lhs)
			continue
		}

		return nil, unexpected(tok, "is not an infix or postfix operator")
	}
}

// parsePrimary consumes the token that starts an expression: an atom, a
// parenthesised group, or a prefix operator with its operand.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.lex.Advance()

	switch {
	case tok.Type == ast.ATOM:
		p.tracef("atom", "symbol", tok)
		return &ast.Leaf{Symbol: tok.Symbol}, nil

	case tok.Is(power.GroupOpen):
		// Grouping contributes no node of its own.
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if err := p.expect(power.GroupClose); err != nil {
			return nil, err
		}
		return inner, nil

	case tok.Type == ast.OP:
		right, ok := p.table.Prefix(tok.Symbol)
		if !ok {
			return nil, unexpected(tok, "cannot start an expression")
		}
		p.tracef("prefix", "op", tok, "r_bp", right)
		rhs, err := p.parseExpr(right)
		if err != nil {
			return nil, err
		}
		return ast.NewApplication(tok.Symbol, ast.Prefix, rhs), nil
	}

	return nil, unexpected(tok, "where an expression was expected")
}

package ast_test

import (
	"testing"

	"github.com/metaphox/pratt/ast"
)

func leaf(r rune) ast.Node { return &ast.Leaf{Symbol: r} }

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"leaf", leaf('x'), "x"},
		{"prefix", ast.NewApplication('-', ast.Prefix, leaf('1')), "(- 1)"},
		{"infix", ast.NewApplication('+', ast.Infix, leaf('1'), leaf('2')), "(+ 1 2)"},
		{
			"nested",
			ast.NewApplication('+', ast.Infix,
				leaf('1'),
				ast.NewApplication('*', ast.Infix, leaf('2'), leaf('3'))),
			"(+ 1 (* 2 3))",
		},
		{
			"ternary",
			ast.NewApplication('?', ast.Ternary, leaf('a'), leaf('b'), leaf('c')),
			"(? a b c)",
		},
		{
			"index of index",
			ast.NewApplication('[', ast.Index,
				ast.NewApplication('[', ast.Index, leaf('x'), leaf('0')),
				leaf('1')),
			"([ ([ x 0) 1)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormArity(t *testing.T) {
	tests := []struct {
		form ast.Form
		want int
	}{
		{ast.Prefix, 1},
		{ast.Postfix, 1},
		{ast.Index, 2},
		{ast.Infix, 2},
		{ast.Ternary, 3},
		{ast.Form(0), 0},
	}
	for _, tt := range tests {
		if got := tt.form.Arity(); got != tt.want {
			t.Errorf("%v.Arity() = %d, want %d", tt.form, got, tt.want)
		}
	}
}

func TestNewApplicationCopiesArgs(t *testing.T) {
	args := []ast.Node{leaf('a'), leaf('b')}
	app := ast.NewApplication('+', ast.Infix, args...)
	args[0] = leaf('z')
	if got := app.String(); got != "(+ a b)" {
		t.Errorf("String() = %q after caller mutation, want %q", got, "(+ a b)")
	}
}

func TestWalkAndDepth(t *testing.T) {
	tree := ast.NewApplication('=', ast.Infix,
		leaf('a'),
		ast.NewApplication('-', ast.Prefix, leaf('1')))

	var seen []string
	ast.Walk(tree, func(n ast.Node) bool {
		seen = append(seen, n.String())
		return true
	})
	want := []string{"(= a (- 1))", "a", "(- 1)", "1"}
	if len(seen) != len(want) {
		t.Fatalf("Walk visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, seen[i], want[i])
		}
	}

	if d := ast.Depth(tree); d != 3 {
		t.Errorf("Depth = %d, want 3", d)
	}
	if d := ast.Depth(leaf('x')); d != 1 {
		t.Errorf("Depth(leaf) = %d, want 1", d)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := ast.NewApplication('+', ast.Infix, leaf('a'), leaf('b'))
	count := 0
	ast.Walk(tree, func(ast.Node) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("Walk visited %d nodes, want 1", count)
	}
}

func TestCheckArity(t *testing.T) {
	good := ast.NewApplication('?', ast.Ternary, leaf('a'), leaf('b'), leaf('c'))
	if bad := ast.CheckArity(good); bad != nil {
		t.Errorf("CheckArity(%s) = %s, want nil", good, bad)
	}

	broken := &ast.Application{Op: '+', Form: ast.Infix, Args: []ast.Node{leaf('a')}}
	tree := ast.NewApplication('-', ast.Prefix, broken)
	if bad := ast.CheckArity(tree); bad != broken {
		t.Errorf("CheckArity = %v, want the one-operand infix node", bad)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok    ast.Token
		str    string
		goStr  string
		isPlus bool
	}{
		{ast.Atom('a'), "a", "Atom('a')", false},
		{ast.Op('+'), "+", "Op('+')", true},
		{ast.EOFToken, "EOF", "EOF", false},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.tok.GoString(); got != tt.goStr {
			t.Errorf("GoString() = %q, want %q", got, tt.goStr)
		}
		if got := tt.tok.Is('+'); got != tt.isPlus {
			t.Errorf("%s.Is('+') = %v, want %v", tt.str, got, tt.isPlus)
		}
	}
	if ast.Atom('x') != ast.Atom('x') || ast.Atom('x') == ast.Op('x') {
		t.Error("tokens must compare by type and symbol")
	}
}

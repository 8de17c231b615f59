package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphox/pratt/ast"
	"github.com/metaphox/pratt/lexer"
	"github.com/metaphox/pratt/parser"
)

var (
	inputFile  string
	showTokens bool
	checkArity bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [expression...]",
	Short: "Parse expressions and print their S-expression form",
	Long: `Parse each argument as an expression. Without arguments, every
non-blank line of --file (or stdin) is parsed as one expression.

Every character is its own operand: "12" is two atoms, not a number.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read expressions from file, one per line")
	parseCmd.Flags().BoolVar(&showTokens, "tokens", false, "print the token stream before each tree")
	parseCmd.Flags().BoolVar(&checkArity, "check", false, "verify every operator node has the operand count of its form")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	table, err := loadTable()
	if err != nil {
		return fmt.Errorf("loading operator table: %w", err)
	}

	inputs := args
	if len(inputs) == 0 {
		inputs, err = readInputs(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	p := parser.New(parser.Options{Table: table, Logger: newLogger(errOut)})

	failed := 0
	for _, in := range inputs {
		if showTokens {
			fmt.Fprintln(out, formatTokens(lexer.New(in).Tokens()))
		}
		tree, err := p.Parse(in)
		if err != nil {
			failed++
			fmt.Fprintf(errOut, "error: %s: %v\n", strings.TrimSpace(in), err)
			continue
		}
		if checkArity {
			if bad := ast.CheckArity(tree); bad != nil {
				failed++
				fmt.Fprintf(errOut, "error: %s: %s node %s has %d operand(s)\n", strings.TrimSpace(in), bad.Form, bad, len(bad.Args))
				continue
			}
		}
		fmt.Fprintln(out, tree)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d expression(s) failed to parse", failed, len(inputs))
	}
	return nil
}

// readInputs returns the non-blank lines of --file, or of stdin.
func readInputs(stdin io.Reader) ([]string, error) {
	r := stdin
	if inputFile != "" {
		f, err := os.Open(os.ExpandEnv(inputFile))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

func formatTokens(toks []ast.Token) string {
	parts := make([]string, 0, len(toks)+1)
	for _, t := range toks {
		parts = append(parts, t.GoString())
	}
	parts = append(parts, ast.EOFToken.GoString())
	return "[" + strings.Join(parts, " ") + "]"
}

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/metaphox/pratt/power"
)

var (
	tableFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "pratt",
	Short: "Operator-precedence expression parser",
	Long: `pratt parses single-character expressions into fully parenthesised
S-expressions using binding-power tables.

  pratt parse "a = 0 ? b : c = d"    # (= a (= (? 0 b c) d))

Operator tables can be replaced with a TOML or YAML file via --table or
the PRATT_TABLE environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports a failure once on the command's
// stderr.
func Execute() error {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		printError(c, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tableFile, "table", "", "operator table file (.toml, .yaml); default: $"+power.EnvTable)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace parsing decisions on stderr")
}

// loadTable resolves the active operator table: --table, then $PRATT_TABLE,
// then the built-in default.
func loadTable() (*power.Table, error) {
	if tableFile != "" {
		return power.Load(tableFile)
	}
	return power.LoadFromEnv()
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
}

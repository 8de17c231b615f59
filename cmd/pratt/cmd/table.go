package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/pratt/power"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the active operator table",
	Long: `Print the operator table in effect (--table, $PRATT_TABLE or the
built-in default). The output is a valid table file and can be edited and
passed back with --table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := power.ParseFormat(tableFormat)
		if err != nil {
			return err
		}
		table, err := loadTable()
		if err != nil {
			return fmt.Errorf("loading operator table: %w", err)
		}
		return power.Encode(cmd.OutOrStdout(), table, format)
	},
}

func init() {
	tableCmd.Flags().StringVar(&tableFormat, "format", string(power.FormatTOML), "output format: toml or yaml")
	rootCmd.AddCommand(tableCmd)
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dedzsinator/go-matrix/pkg/matrix"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Matrix Language file and dump the AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, _, err := readInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	program, err := matrix.ParseOnly(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	fmt.Println(program.String())
	return nil
}

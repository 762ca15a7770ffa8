package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dedzsinator/go-matrix/pkg/matrix"
	"github.com/dedzsinator/go-matrix/pkg/printer"
)

var writeInPlace bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Print a Matrix Language file in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  fmtScript,
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write the result back to the file instead of stdout")
}

func fmtScript(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		err = fmt.Errorf("failed to read file %s: %w", args[0], err)
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	program, err := matrix.ParseOnly(string(content))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	formatted := printer.Print(program)
	if writeInPlace {
		if err := os.WriteFile(args[0], []byte(formatted), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		return nil
	}
	fmt.Print(formatted)
	return nil
}

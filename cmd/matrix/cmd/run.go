package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dedzsinator/go-matrix/internal/interp"
	"github.com/dedzsinator/go-matrix/pkg/matrix"
)

var (
	evalExpr  string
	typeCheck bool
	dumpAST   bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Matrix Language file or expression",
	Long: `Execute a Matrix Language program from a file or inline expression.

Examples:
  # Run a script file
  matrix run script.mat

  # Evaluate an inline expression
  matrix run -e "2 + 3 * 4"

  # Run without the type checking phase
  matrix run --type-check=false script.mat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&typeCheck, "type-check", true, "perform type checking before execution")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before running (for debugging)")
}

// readInput resolves the source text for commands taking [file] or -e.
func readInput(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func runScript(_ *cobra.Command, args []string) error {
	source, _, err := readInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	m := matrix.New(matrix.WithTypeCheck(typeCheck))

	if dumpAST {
		program, err := matrix.ParseOnly(source)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		fmt.Println("AST:")
		fmt.Println(program.String())
	}

	result, err := m.Execute(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	// Print the program result unless it is unit.
	if _, isUnit := result.(*interp.UnitValue); !isUnit {
		fmt.Println(result.String())
	}
	return nil
}

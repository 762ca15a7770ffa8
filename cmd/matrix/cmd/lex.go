package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dedzsinator/go-matrix/internal/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Matrix Language file and dump the token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(_ *cobra.Command, args []string) error {
	source, _, err := readInput(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexical error: %v\n", err)
		return err
	}
	for _, tok := range tokens {
		fmt.Printf("%4d:%-3d %-18s %q\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Literal)
	}
	return nil
}

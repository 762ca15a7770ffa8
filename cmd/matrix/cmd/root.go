package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Matrix Language interpreter",
	Long: `go-matrix is a Go implementation of Matrix Language, a small
statically-typed expression-oriented language for mathematical and
physics-adjacent scripting.

The pipeline runs source text through a lexer, a Pratt parser, a
bidirectional type checker and a tree-walking evaluator. @sim and @plot
directive blocks hand their results to the bundled visualizer bridge.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "soyc",
	Short: "soyc runs the core semantic pass pipeline over a template fileset",
	Long: `soyc is a thin driver over the pass pipeline: it loads one or more
JSON AST fixtures (the front end's lexer/parser is out of scope here), runs
the configured passes, and reports diagnostics.`,
}

func main() {
	rootCmd.Version = buildVersion

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-pass timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Scaffold a new soyc project manifest",
	Long: `Initialize a soyc project by writing a soyc.toml manifest with every
recognized option at its default value. If [path] is omitted, initializes
the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if target != "." {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}
	}

	manifestPath := filepath.Join(target, "soyc.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest), 0o600); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized soyc project\n  - %s\n", manifestPath)
	return nil
}

const defaultManifest = `# soyc project manifest

disable_all_type_checking = false
allow_unknown_globals = false
allow_v1_expression = false
desugar_html_nodes = true
optimize = true
autoescaper_enabled = true
add_html_attributes_for_debugging = true
strict_autoescaping_required = false
allow_external_calls = false
experimental_features = []
concurrency = false

[pass_continuation_rules]

[globals]
`

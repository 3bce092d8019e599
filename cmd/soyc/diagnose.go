package main

import (
	"github.com/spf13/cobra"
)

var diagnoseManifestPath string

func init() {
	diagnoseCmd.Flags().StringVar(&diagnoseManifestPath, "manifest", "", "path to soyc.toml (defaults to config.Defaults())")
	diagnoseCmd.Flags().Bool("watch", false, "show a live progress view while the pipeline runs")
}

// diagnoseCmd is compile under a name that says what most callers actually
// want from it: run the pipeline and see what it reports, without caring
// whether the run would also be suitable for a downstream codegen step.
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <fixture.json>...",
	Short: "Run the pass pipeline and report diagnostics (alias for compile)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(diagnoseManifestPath)
		if err != nil {
			return err
		}
		return runCompile(cmd, args, opts)
	},
}

package main

import (
	"github.com/spf13/cobra"
)

var fixManifestPath string

func init() {
	fixCmd.Flags().StringVar(&fixManifestPath, "manifest", "", "path to soyc.toml (defaults to config.Defaults())")
}

// fixCmd is compile with the optimizer forced off, for callers who want the
// pre-optimization tree's diagnostics and shape (e.g. to inspect what the
// optimizer would have folded away) without editing their manifest.
var fixCmd = &cobra.Command{
	Use:   "fix <fixture.json>...",
	Short: "Run the pipeline with the optimizer disabled",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := resolveOptions(fixManifestPath)
		if err != nil {
			return err
		}
		disabled := false
		opts.Optimize = &disabled
		return runCompile(cmd, args, opts)
	},
}

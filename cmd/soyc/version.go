package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const buildVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the soyc version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "soyc %s\n", buildVersion)
		return nil
	},
}

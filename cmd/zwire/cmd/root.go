package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zwire",
	Short: "zwire - schema-driven binary payload tool",
	Long: `zwire packs values into compact binary payloads and unpacks them
again, driven by YAML schema definition files. Payloads carry no schema
information, so decoding always needs the schema they were encoded with.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/zwire"
	"github.com/rawbytedev/zwire/pkg/schemafile"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Re-encode a payload from one schema to another",
	Long: `Migrate decodes a payload under its old schema and re-encodes it
under a new one. Fields the new schema adds must be optional, since no
transform can be supplied on the command line; dropped fields are simply
not re-encoded.

Example:
  zwire migrate --old v1.schema.yaml --new v2.schema.yaml -i save.bin -o save2.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPath, _ := cmd.Flags().GetString("old")
		newPath, _ := cmd.Flags().GetString("new")
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")

		oldSchema, err := schemafile.Load(oldPath)
		if err != nil {
			return fmt.Errorf("loading old schema: %w", err)
		}
		newSchema, err := schemafile.Load(newPath)
		if err != nil {
			return fmt.Errorf("loading new schema: %w", err)
		}
		payload, err := readInput(inPath)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}

		migrated, err := zwire.Migrate(oldSchema, newSchema, payload, nil)
		if err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
		if outPath == "-" {
			_, err = os.Stdout.Write(migrated)
			return err
		}
		return os.WriteFile(outPath, migrated, 0644)
	},
}

func init() {
	migrateCmd.Flags().String("old", "", "Schema the payload was encoded with")
	migrateCmd.Flags().String("new", "", "Schema to re-encode under")
	migrateCmd.Flags().StringP("in", "i", "-", "Payload file, - for stdin")
	migrateCmd.Flags().StringP("out", "o", "-", "Output payload file, - for stdout")
	_ = migrateCmd.MarkFlagRequired("old")
	_ = migrateCmd.MarkFlagRequired("new")
	rootCmd.AddCommand(migrateCmd)
}

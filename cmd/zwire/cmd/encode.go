package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zwire"
	"github.com/rawbytedev/zwire/pkg/schemafile"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a YAML value into a binary payload",
	Long: `Encode reads a YAML value document and packs it against a schema.

Example:
  zwire encode -s player.schema.yaml -i player.yaml -o player.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")
		truncate, _ := cmd.Flags().GetBool("truncate-strings")

		schema, err := schemafile.Load(schemaPath)
		if err != nil {
			return fmt.Errorf("loading schema: %w", err)
		}
		raw, err := os.ReadFile(inPath)
		if err != nil {
			return fmt.Errorf("reading value: %w", err)
		}
		var value any
		if err := yaml.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("parsing value: %w", err)
		}

		zwire.SetStringTruncation(truncate)
		payload, err := zwire.Ser(schema, value)
		if err != nil {
			return fmt.Errorf("encoding: %w", err)
		}
		if outPath == "-" {
			_, err = os.Stdout.Write(payload)
			return err
		}
		return os.WriteFile(outPath, payload, 0644)
	},
}

func init() {
	encodeCmd.Flags().StringP("schema", "s", "", "Schema definition file (YAML)")
	encodeCmd.Flags().StringP("in", "i", "", "Value document (YAML)")
	encodeCmd.Flags().StringP("out", "o", "-", "Output payload file, - for stdout")
	encodeCmd.Flags().Bool("truncate-strings", false, "Clip oversized strings instead of failing")
	_ = encodeCmd.MarkFlagRequired("schema")
	_ = encodeCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(encodeCmd)
}

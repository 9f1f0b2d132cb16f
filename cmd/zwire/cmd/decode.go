package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/zwire"
	"github.com/rawbytedev/zwire/pkg/schemafile"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a binary payload back into YAML",
	Long: `Decode unpacks a payload against a schema and prints the value as
YAML. With --tolerant a truncated payload yields whatever prefix of the
value could be read instead of an error.

Example:
  zwire decode -s player.schema.yaml -i player.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		inPath, _ := cmd.Flags().GetString("in")
		tolerant, _ := cmd.Flags().GetBool("tolerant")

		schema, err := schemafile.Load(schemaPath)
		if err != nil {
			return fmt.Errorf("loading schema: %w", err)
		}
		payload, err := readInput(inPath)
		if err != nil {
			return fmt.Errorf("reading payload: %w", err)
		}

		mode := zwire.Strict
		if tolerant {
			mode = zwire.Tolerant
		}
		value, _, err := zwire.DesAt(schema, payload, 0, mode)
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		out, err := yaml.Marshal(value)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	decodeCmd.Flags().StringP("schema", "s", "", "Schema definition file (YAML)")
	decodeCmd.Flags().StringP("in", "i", "-", "Payload file, - for stdin")
	decodeCmd.Flags().Bool("tolerant", false, "Return a partial value for truncated payloads")
	_ = decodeCmd.MarkFlagRequired("schema")
	rootCmd.AddCommand(decodeCmd)
}

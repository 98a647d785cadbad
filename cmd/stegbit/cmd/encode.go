package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/chunk"
	"github.com/stegbit/stegbit/pkg/png"
)

var encodeOutput string

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <file> <chunk-type> <message>",
	Short: "Hide a message in a PNG file",
	Long: `Hide a message in a PNG file by inserting a chunk with the given type.

Pick an ancillary, safe-to-copy type (like "ruSt") so image viewers skip
the chunk and editors carry it along.

Example:
  stegbit encode ./dice.png ruSt "This is a secret message!" -o ./out.png`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		output := encodeOutput
		if output == "" {
			output = args[0]
		}

		if err := encodeMessage(args[0], output, args[1], args[2]); err != nil {
			fmt.Printf("Error encoding message: %v\n", err)
			return
		}

		fmt.Printf("Successfully hid %d bytes in %s chunk of '%s'\n", len(args[2]), args[1], output)
	},
}

// encodeMessage inserts a chunk carrying message into the PNG at inPath and
// writes the result to outPath.
func encodeMessage(inPath, outPath, chunkType, message string) error {
	ct, err := chunk.ChunkTypeFromString(chunkType)
	if err != nil {
		return err
	}

	p, err := png.ReadFile(inPath)
	if err != nil {
		return err
	}

	p.AppendChunk(chunk.New(ct, []byte(message)))
	return png.WriteFile(outPath, p)
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Write the result to this path instead of overwriting the input")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/png"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file> <chunk-type>",
	Short: "Recover a hidden message from a PNG file",
	Long: `Recover the message hidden in the first chunk with the given type.

Example:
  stegbit decode ./dice.png ruSt`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		message, err := decodeMessage(args[0], args[1])
		if err != nil {
			fmt.Printf("Error decoding message: %v\n", err)
			return
		}

		fmt.Printf("%s\n", message)
	},
}

// decodeMessage returns the text payload of the first chunk with the given
// type in the PNG at path.
func decodeMessage(path, chunkType string) (string, error) {
	p, err := png.ReadFile(path)
	if err != nil {
		return "", err
	}

	c := p.ChunkByType(chunkType)
	if c == nil {
		return "", png.ErrChunkNotFound
	}

	return c.DataAsString()
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

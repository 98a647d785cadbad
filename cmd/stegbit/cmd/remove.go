package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/png"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove <file> <chunk-type>",
	Short: "Remove a hidden chunk from a PNG file",
	Long: `Remove the first chunk with the given type and rewrite the file.

Example:
  stegbit remove ./dice.png ruSt`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := removeChunk(args[0], args[1]); err != nil {
			fmt.Printf("Error removing chunk: %v\n", err)
			return
		}

		fmt.Printf("Successfully removed %s chunk from '%s'\n", args[1], args[0])
	},
}

// removeChunk strips the first chunk with the given type from the PNG at
// path and rewrites it in place.
func removeChunk(path, chunkType string) error {
	p, err := png.ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := p.RemoveFirstChunk(chunkType); err != nil {
		return err
	}

	return png.WriteFile(path, p)
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

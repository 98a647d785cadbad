package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/chunk"
	"github.com/stegbit/stegbit/pkg/png"
)

// printCmd represents the print command
var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "List every chunk of a PNG file",
	Long: `List each chunk of a PNG file with its length, checksum, and the
properties encoded in its type tag.

Example:
  stegbit print ./dice.png`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := png.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			return
		}

		fmt.Printf("%s: %d chunks\n", args[0], len(p.Chunks()))
		for i, c := range p.Chunks() {
			fmt.Printf("  %3d  %s  length=%-8d checksum=%-10d %s\n",
				i, c.Type(), c.Length(), c.Checksum(), describeType(c.Type()))
		}
	},
}

func describeType(t chunk.ChunkType) string {
	criticality := "ancillary"
	if t.IsCritical() {
		criticality = "critical"
	}
	scope := "private"
	if t.IsPublic() {
		scope = "public"
	}
	copying := "unsafe-to-copy"
	if t.IsSafeToCopy() {
		copying = "safe-to-copy"
	}
	if !t.IsReservedBitValid() {
		return fmt.Sprintf("[%s, %s, %s, reserved bit invalid]", criticality, scope, copying)
	}
	return fmt.Sprintf("[%s, %s, %s]", criticality, scope, copying)
}

func init() {
	rootCmd.AddCommand(printCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/chunk"
	"github.com/stegbit/stegbit/pkg/png"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "List chunks that could be carrying a hidden message",
	Long: `List the ancillary, private chunks of a PNG file - the kind encode
produces - and show their payload when it is readable text.

Example:
  stegbit scan ./dice.png`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := png.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading file: %v\n", err)
			return
		}

		found := 0
		for _, c := range p.Chunks() {
			if !isCandidate(c.Type()) {
				continue
			}
			found++

			if text, err := c.DataAsString(); err == nil {
				fmt.Printf("  %s  %d bytes: %q\n", c.Type(), c.Length(), text)
			} else {
				fmt.Printf("  %s  %d bytes: (binary)\n", c.Type(), c.Length())
			}
		}

		if found == 0 {
			fmt.Println("No candidate chunks found")
		}
	},
}

// isCandidate reports whether a chunk type looks like a message carrier:
// ancillary so viewers skip it, private so it is not a registered type.
func isCandidate(t chunk.ChunkType) bool {
	return !t.IsCritical() && !t.IsPublic()
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stegbit",
	Short: "stegbit - hide and recover messages in PNG chunks",
	Long: `stegbit hides text messages inside PNG files by inserting extra
chunks, and recovers or removes them later. It can also serve the same
operations over a REST API backed by an image vault.

Examples:
  stegbit encode ./dice.png ruSt "This is a secret message!"
  stegbit decode ./dice.png ruSt
  stegbit remove ./dice.png ruSt
  stegbit print ./dice.png`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

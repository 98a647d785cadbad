package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the stegbit configuration",
	Long: `Create the stegbit configuration file with a freshly generated API key.

Run this once before 'stegbit serve' so the server and its clients share a
key.

Examples:
  stegbit init
  stegbit init --data-dir=./data --force`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s (use --force to overwrite)\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			fmt.Printf("Error creating configuration: %v\n", err)
			return
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("Data directory: %s\n", cfg.DataDir)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", config.GetDefaultConfigPath(), "Path to write the configuration file")
	initCmd.Flags().String("data-dir", "./data", "Directory for the image vault")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

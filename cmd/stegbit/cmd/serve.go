package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stegbit/stegbit/pkg/api"
	"github.com/stegbit/stegbit/pkg/config"
	"github.com/stegbit/stegbit/pkg/vault"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the stegbit REST API server.

The server stores uploaded PNG images in a local vault and exposes the
encode/decode/remove operations over HTTP, protected by an API key.

Examples:
  stegbit serve --api-key=mysecretkey --port=8080
  stegbit serve --config=~/.config/stegbit/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		serverConfig, err := resolveServeConfig(cmd)
		if err != nil {
			fmt.Printf("Error resolving configuration: %v\n", err)
			return
		}

		if serverConfig.APIKey == "" {
			cmd.Println("Error: --api-key is required (or run 'stegbit init' first)")
			return
		}

		v, err := vault.Open(serverConfig.DataDir)
		if err != nil {
			fmt.Printf("Error opening vault: %v\n", err)
			return
		}
		defer v.Close()

		if err := api.StartServer(v, serverConfig); err != nil {
			fmt.Printf("Server error: %v\n", err)
		}
	},
}

// resolveServeConfig merges the config file (when present) with flags;
// explicitly set flags win.
func resolveServeConfig(cmd *cobra.Command) (api.ServerConfig, error) {
	configPath, _ := cmd.Flags().GetString("config")

	serverConfig := api.ServerConfig{
		Port:    8080,
		Bind:    "127.0.0.1",
		DataDir: "./data",
	}

	if config.ConfigExists(configPath) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return api.ServerConfig{}, err
		}
		serverConfig.Port = cfg.Port
		serverConfig.Bind = cfg.Bind
		serverConfig.DataDir = cfg.DataDir
		serverConfig.APIKey = cfg.Security.APIKey
	}

	if cmd.Flags().Changed("port") {
		serverConfig.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		serverConfig.Bind, _ = cmd.Flags().GetString("bind")
	}
	if cmd.Flags().Changed("data-dir") {
		serverConfig.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("api-key") {
		serverConfig.APIKey, _ = cmd.Flags().GetString("api-key")
	}

	return serverConfig, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", config.GetDefaultConfigPath(), "Path to the configuration file")
	serveCmd.Flags().Int("port", 8080, "Port for the API server")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind the API server to")
	serveCmd.Flags().String("data-dir", "./data", "Directory for the image vault")
	serveCmd.Flags().String("api-key", "", "API key required by clients")
}

package main

import (
	"fmt"
	"os"

	"github.com/osa911/contactrelay/internal/config"
	"github.com/osa911/contactrelay/internal/logging"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/spf13/cobra"
)

var logger *logging.Logger

func initLogger(cfg *config.Config) {
	logConfig := cfg.LogConfig()
	// The CLI keeps its output on the terminal
	logConfig.File = ""

	if err := logging.InitLogger(logConfig); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logging.GetGlobalLogger()
}

// loadConfig reads configuration and prepares the logger, exiting on failure
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	initLogger(cfg)
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "contactctl - operate the contact form relay",
	Long: `contactctl inspects the contact relay configuration and sends test
submissions through the configured mail transport, exactly as the HTTP
endpoint would.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("contactctl %s\n", version.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sendCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

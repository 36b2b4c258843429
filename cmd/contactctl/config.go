package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/osa911/contactrelay/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration the relay would start with, after .env files and
environment variables are applied. Secrets are masked.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		printConfig(cfg)

		if cfg.RecipientEmail == "" {
			logger.Warn("CONTACT_RECIPIENT_EMAIL is not set, every submission will be rejected")
			os.Exit(2)
		}
	},
}

func printConfig(cfg *config.Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kv := range cfg.Masked() {
		fmt.Fprintf(w, "%s\t%s\n", kv[0], kv[1])
	}
	w.Flush()
}

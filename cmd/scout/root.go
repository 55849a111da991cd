package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
}

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Discover, enrich, and draft outreach for private K-12 school leads",
	Long: "scout keeps a canonical SQLite store of school leads, deduplicates\n" +
		"discovery hits, enriches contact data from school websites, and generates\n" +
		"outreach drafts as markdown for manual review and sending.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "scout.yml", "Path to yaml config")
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(followupCmd)
	rootCmd.AddCommand(briefCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

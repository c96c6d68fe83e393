// annonces scrapes the tunisie-annonce real-estate catalog for listings
// published inside a month window and stores them in a CSV file and a
// relational table.
//
// Usage:
//
//	annonces scrape [--start N] [--end N] [--months 1,2] [--year 2025] [--out file.csv] [--no-db]
//	annonces list [--source csv|db] [--limit N] [--stats]
//	annonces schema [--driver postgres|sqlite]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "annonces",
	Short: "Scrape tunisie-annonce real-estate listings into CSV and PostgreSQL",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

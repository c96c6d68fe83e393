package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunisie-annonce/config"
	"tunisie-annonce/storage"
)

var schemaFlags struct {
	driver string
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the annonces table DDL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		driver := schemaFlags.driver
		if driver == "" {
			driver = config.Load().DBDriver
		}
		if driver != storage.DriverPostgres && driver != storage.DriverSQLite {
			return fmt.Errorf("unknown driver %q", driver)
		}
		fmt.Fprintln(cmd.OutOrStdout(), storage.Schema(driver))
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFlags.driver, "driver", "", "postgres|sqlite (env DB_DRIVER)")
}

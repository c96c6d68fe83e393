package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"tunisie-annonce/config"
	"tunisie-annonce/models"
	"tunisie-annonce/services"
	"tunisie-annonce/storage"
	"tunisie-annonce/utils"
)

var listFlags struct {
	source string
	file   string
	limit  int
	stats  bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the listings stored by the last scrape",
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listFlags.source, "source", "csv", "Where to read from: csv|db")
	f.StringVarP(&listFlags.file, "file", "f", "", "CSV file to read (env CSV_OUTPUT_PATH)")
	f.IntVarP(&listFlags.limit, "limit", "n", 0, "Print at most N listings (0 = all)")
	f.BoolVar(&listFlags.stats, "stats", false, "Print the insight report instead of the table")
}

func loadListings(cmd *cobra.Command, cfg *config.Config, logger *utils.Logger) ([]models.Listing, error) {
	switch listFlags.source {
	case "csv":
		path := cfg.CSVOutputPath
		if listFlags.file != "" {
			path = listFlags.file
		}
		return storage.ReadCSV(path)
	case "db":
		rows, err := storage.NewSQLWriter(cfg.DBDriver, cfg.DSN(), logger).FetchAll(cmd.Context())
		if err != nil {
			return nil, err
		}
		listings := make([]models.Listing, len(rows))
		for i, r := range rows {
			listings[i] = r.Listing
		}
		return listings, nil
	default:
		return nil, fmt.Errorf("--source must be csv or db, got %q", listFlags.source)
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	logger := utils.NewLogger()
	cfg := config.Load()

	listings, err := loadListings(cmd, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if listFlags.stats {
		insights := services.NewInsightService(logger)
		insights.Print(out, insights.Generate(listings))
		return nil
	}

	if listFlags.limit > 0 && len(listings) > listFlags.limit {
		listings = listings[:listFlags.limit]
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Price", "Type", "Location", "Published", "Link"})
	for i, l := range listings {
		t.AppendRow(table.Row{i + 1, l.Title, l.RawPrice, l.PropertyType, l.Location, l.PublicationDate, l.Link})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d listings", len(listings))})
	t.Render()
	return nil
}

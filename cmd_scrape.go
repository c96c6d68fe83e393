package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tunisie-annonce/config"
	"tunisie-annonce/pipeline"
	"tunisie-annonce/scraper/tunisieannonce"
	"tunisie-annonce/services"
	"tunisie-annonce/storage"
	"tunisie-annonce/utils"
)

var scrapeFlags struct {
	start  int
	end    int
	months string
	year   int
	out    string
	layout string
	engine string
	noDB   bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the catalog and rewrite the CSV file and annonces table",
	RunE:  runScrape,
}

func init() {
	f := scrapeCmd.Flags()
	f.IntVar(&scrapeFlags.start, "start", 0, "First page to scrape (env START_PAGE)")
	f.IntVar(&scrapeFlags.end, "end", 0, "Last page to scrape, inclusive (env END_PAGE)")
	f.StringVar(&scrapeFlags.months, "months", "", "Comma-separated publication months, e.g. 1,2 (env WINDOW_MONTHS)")
	f.IntVar(&scrapeFlags.year, "year", 0, "Publication year (env WINDOW_YEAR)")
	f.StringVarP(&scrapeFlags.out, "out", "o", "", "CSV output path (env CSV_OUTPUT_PATH)")
	f.StringVar(&scrapeFlags.layout, "layout", "", "YAML column layout file (env LAYOUT_FILE)")
	f.StringVar(&scrapeFlags.engine, "engine", "", "Fetch engine: http|browser (env FETCH_ENGINE)")
	f.BoolVar(&scrapeFlags.noDB, "no-db", false, "Skip the relational sink (env DB_DISABLED)")
}

// applyScrapeFlags overrides cfg with the flags given on the command line.
func applyScrapeFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("start") {
		cfg.StartPage = scrapeFlags.start
	}
	if f.Changed("end") {
		cfg.EndPage = scrapeFlags.end
	}
	if f.Changed("months") {
		months, err := config.ParseMonths(scrapeFlags.months)
		if err != nil {
			return fmt.Errorf("--months: %w", err)
		}
		cfg.WindowMonths = months
	}
	if f.Changed("year") {
		cfg.WindowYear = scrapeFlags.year
	}
	if f.Changed("out") {
		cfg.CSVOutputPath = scrapeFlags.out
	}
	if f.Changed("layout") {
		cfg.LayoutFile = scrapeFlags.layout
	}
	if f.Changed("engine") {
		cfg.FetchEngine = scrapeFlags.engine
	}
	if f.Changed("no-db") {
		cfg.DBDisabled = scrapeFlags.noDB
	}
	return nil
}

func newFetcher(cfg *config.Config) (tunisieannonce.PageFetcher, func(), error) {
	if cfg.FetchEngine == config.EngineBrowser {
		b, err := tunisieannonce.NewBrowserFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.FetchTimeout)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { _ = b.Close() }, nil
	}
	return tunisieannonce.NewHTTPFetcher(cfg.FetchTimeout, cfg.UserAgent), func() {}, nil
}

func runScrape(cmd *cobra.Command, _ []string) error {
	logger := utils.NewLogger()
	cfg := config.Load()
	if err := applyScrapeFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	layout, err := tunisieannonce.LoadLayout(cfg.LayoutFile)
	if err != nil {
		return err
	}

	logger.Info("=== Tunisie Annonce scraper starting ===")
	logger.Info("Config — pages: %d..%d | engine: %s | csv: %s | db: %s",
		cfg.StartPage, cfg.EndPage, cfg.FetchEngine, cfg.CSVOutputPath, dbLabel(cfg))

	fetcher, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	defer closeFetcher()

	scraper := tunisieannonce.New(fetcher, tunisieannonce.Options{
		BaseURL:   cfg.BaseURL,
		PageParam: cfg.PageParam,
		Layout:    layout,
		Window:    services.NewWindow(cfg.WindowYear, cfg.WindowMonths...),
	}, logger)

	var db storage.ListingWriter
	if !cfg.DBDisabled {
		db = storage.NewSQLWriter(cfg.DBDriver, cfg.DSN(), logger)
	}

	p := &pipeline.Pipeline{
		Scraper:  scraper,
		File:     storage.NewCSVWriter(cfg.CSVOutputPath),
		DB:       db,
		Logger:   logger,
		FilePath: cfg.CSVOutputPath,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := p.Run(ctx, cfg.StartPage, cfg.EndPage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n  Run %s — %d listings from %d pages in %s\n",
		report.RunID, report.Accepted, report.PagesVisited, report.Duration.Round(time.Millisecond))
	switch {
	case report.RelationalSkipped:
		fmt.Fprintf(out, "  Relational sink: skipped\n")
	case report.RelationalErr != nil:
		fmt.Fprintf(out, "  Relational sink: FAILED (%v)\n", report.RelationalErr)
	default:
		fmt.Fprintf(out, "  Relational sink: ok (table annonces)\n")
	}
	fmt.Fprintf(out, "  CSV → %s\n", report.FilePath)

	if report.Accepted > 0 {
		insights := services.NewInsightService(logger)
		insights.Print(out, insights.Generate(report.Listings))
	}
	return nil
}

func dbLabel(cfg *config.Config) string {
	if cfg.DBDisabled {
		return "disabled"
	}
	return cfg.DBDriver
}

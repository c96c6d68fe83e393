package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tunisie-annonce/storage"
)

func TestParseMonths(t *testing.T) {
	got, err := ParseMonths(" 1, 2 ,12")
	if err != nil {
		t.Fatalf("ParseMonths: %v", err)
	}
	want := []time.Month{time.January, time.February, time.December}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseMonths mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"", "0", "13", "jan", " , "} {
		if _, err := ParseMonths(bad); err == nil {
			t.Errorf("ParseMonths(%q): expected error", bad)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"START_PAGE", "END_PAGE", "WINDOW_MONTHS", "WINDOW_YEAR", "POSTGRES_PASSWORD", "DB_DRIVER"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.StartPage != 489 || cfg.EndPage != 855 {
		t.Errorf("page range: got [%d, %d], want [489, 855]", cfg.StartPage, cfg.EndPage)
	}
	if cfg.WindowYear != 2025 {
		t.Errorf("WindowYear: got %d, want 2025", cfg.WindowYear)
	}
	if diff := cmp.Diff([]time.Month{time.January, time.February}, cfg.WindowMonths); diff != "" {
		t.Errorf("WindowMonths mismatch (-want +got):\n%s", diff)
	}
	if cfg.PostgresPassword != "" {
		t.Errorf("PostgresPassword should default to empty, got %q", cfg.PostgresPassword)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("START_PAGE", "3")
	t.Setenv("END_PAGE", "7")
	t.Setenv("WINDOW_MONTHS", "6")
	t.Setenv("WINDOW_YEAR", "2024")
	t.Setenv("DB_DISABLED", "true")
	t.Setenv("FETCH_TIMEOUT_SEC", "5")

	cfg := Load()
	if cfg.StartPage != 3 || cfg.EndPage != 7 {
		t.Errorf("page range: got [%d, %d], want [3, 7]", cfg.StartPage, cfg.EndPage)
	}
	if len(cfg.WindowMonths) != 1 || cfg.WindowMonths[0] != time.June {
		t.Errorf("WindowMonths: got %v, want [June]", cfg.WindowMonths)
	}
	if !cfg.DBDisabled {
		t.Error("DBDisabled should be true")
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("FetchTimeout: got %v, want 5s", cfg.FetchTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		t.Setenv("DB_DRIVER", "")
		return Load()
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.BaseURL = "not a url" }},
		{"empty page param", func(c *Config) { c.PageParam = "" }},
		{"reversed range", func(c *Config) { c.StartPage, c.EndPage = 5, 1 }},
		{"zero start", func(c *Config) { c.StartPage = 0 }},
		{"no months", func(c *Config) { c.WindowMonths = nil }},
		{"unknown engine", func(c *Config) { c.FetchEngine = "curl" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"no csv path", func(c *Config) { c.CSVOutputPath = "" }},
	}

	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBDriver:         storage.DriverPostgres,
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "scraper",
		PostgresPassword: "it's secret",
		PostgresDB:       "tunisie_annonce",
		PostgresSSLMode:  "disable",
	}
	want := `host='db' port='5432' user='scraper' password='it\'s secret' dbname='tunisie_annonce' sslmode='disable'`
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q; want %q", got, want)
	}

	cfg.DBDriver = storage.DriverSQLite
	cfg.SQLitePath = "/tmp/annonces.db"
	if got := cfg.DSN(); got != "/tmp/annonces.db" {
		t.Errorf("sqlite DSN() = %q", got)
	}
}

package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tunisie-annonce/storage"
)

const defaultBaseURL = "http://www.tunisie-annonce.com/AnnoncesImmobilier.asp?rech_cod_cat=1&rech_cod_rub=&rech_cod_typ=&rech_cod_sou_typ=&rech_cod_pay=TN&rech_cod_reg=&rech_cod_vil=&rech_cod_loc=&rech_prix_min=&rech_prix_max=&rech_surf_min=&rech_surf_max=&rech_age=&rech_photo=&rech_typ_cli=&rech_order_by=31"

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetch engines.
const (
	EngineHTTP    = "http"
	EngineBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL   string
	PageParam string
	StartPage int
	EndPage   int

	WindowMonths []time.Month
	WindowYear   int

	LayoutFile   string
	FetchEngine  string
	FetchTimeout time.Duration
	UserAgent    string
	ChromeBin    string

	DBDriver         string
	DBDisabled       bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	SQLitePath       string

	CSVOutputPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	months, err := ParseMonths(getEnv("WINDOW_MONTHS", "1,2"))
	if err != nil {
		log.Printf("[config] Invalid WINDOW_MONTHS (%v), using 1,2", err)
		months = []time.Month{time.January, time.February}
	}

	return &Config{
		BaseURL:   getEnv("CATALOG_BASE_URL", defaultBaseURL),
		PageParam: getEnv("PAGE_PARAM", "rech_page_num"),
		StartPage: getEnvInt("START_PAGE", 489),
		EndPage:   getEnvInt("END_PAGE", 855),

		WindowMonths: months,
		WindowYear:   getEnvInt("WINDOW_YEAR", 2025),

		LayoutFile:   getEnv("LAYOUT_FILE", ""),
		FetchEngine:  getEnv("FETCH_ENGINE", EngineHTTP),
		FetchTimeout: time.Duration(getEnvInt("FETCH_TIMEOUT_SEC", 30)) * time.Second,
		UserAgent:    getEnv("USER_AGENT", defaultUserAgent),
		ChromeBin:    getEnv("CHROME_BIN", ""),

		DBDriver:         getEnv("DB_DRIVER", storage.DriverPostgres),
		DBDisabled:       getEnvBool("DB_DISABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "tunisie_annonce"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		SQLitePath:       getEnv("SQLITE_PATH", "./tunisie_annonce.db"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./tunisie_annonce_listings.csv"),
	}
}

// Validate reports the first configuration problem that would make a run
// meaningless.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: invalid base url %q", c.BaseURL)
	}
	if c.PageParam == "" {
		return errors.New("config: page parameter must not be empty")
	}
	if c.StartPage < 1 || c.EndPage < c.StartPage {
		return fmt.Errorf("config: invalid page range [%d, %d]", c.StartPage, c.EndPage)
	}
	if len(c.WindowMonths) == 0 {
		return errors.New("config: window needs at least one month")
	}
	if c.WindowYear <= 0 {
		return fmt.Errorf("config: invalid window year %d", c.WindowYear)
	}
	switch c.FetchEngine {
	case EngineHTTP, EngineBrowser:
	default:
		return fmt.Errorf("config: unknown fetch engine %q", c.FetchEngine)
	}
	switch c.DBDriver {
	case storage.DriverPostgres, storage.DriverSQLite:
	default:
		return fmt.Errorf("config: unknown db driver %q", c.DBDriver)
	}
	if c.CSVOutputPath == "" {
		return errors.New("config: csv output path must not be empty")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == storage.DriverSQLite {
		return c.SQLitePath
	}
	return "host=" + quoteDSN(c.PostgresHost) +
		" port=" + quoteDSN(c.PostgresPort) +
		" user=" + quoteDSN(c.PostgresUser) +
		" password=" + quoteDSN(c.PostgresPassword) +
		" dbname=" + quoteDSN(c.PostgresDB) +
		" sslmode=" + quoteDSN(c.PostgresSSLMode)
}

// quoteDSN quotes a libpq keyword value so spaces and quotes in credentials
// survive.
func quoteDSN(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ParseMonths parses a comma-separated list of month numbers such as "1,2".
func ParseMonths(s string) ([]time.Month, error) {
	var months []time.Month
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > 12 {
			return nil, fmt.Errorf("invalid month %q", part)
		}
		months = append(months, time.Month(n))
	}
	if len(months) == 0 {
		return nil, errors.New("no months given")
	}
	return months, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

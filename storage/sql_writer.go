package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"tunisie-annonce/models"
	"tunisie-annonce/services"
	"tunisie-annonce/utils"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS annonces (
	id               SERIAL PRIMARY KEY,
	title            TEXT,
	price            BIGINT,
	property_type    TEXT,
	location         TEXT,
	publication_date TEXT,
	link             TEXT
);`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS annonces (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT,
	price            INTEGER,
	property_type    TEXT,
	location         TEXT,
	publication_date TEXT,
	link             TEXT
);`

// Schema returns the annonces table DDL for driver. The writer never runs it.
func Schema(driver string) string {
	if driver == DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}

// SQLWriter persists listings to the annonces table. Each operation opens its
// own handle and closes it before returning.
type SQLWriter struct {
	driver string
	dsn    string
	logger *utils.Logger
}

// NewSQLWriter returns a writer for a database/sql driver ("postgres" or
// "sqlite") and its DSN.
func NewSQLWriter(driver, dsn string, logger *utils.Logger) *SQLWriter {
	return &SQLWriter{driver: driver, dsn: dsn, logger: logger}
}

func (w *SQLWriter) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(w.driver, w.dsn)
	if err != nil {
		return nil, fmt.Errorf("sql: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql: ping: %w", err)
	}
	return db, nil
}

func (w *SQLWriter) insertQuery() string {
	if w.driver == DriverPostgres {
		return `INSERT INTO annonces (title, price, property_type, location, publication_date, link)
			VALUES ($1, $2, $3, $4, $5, $6)`
	}
	return `INSERT INTO annonces (title, price, property_type, location, publication_date, link)
			VALUES (?, ?, ?, ?, ?, ?)`
}

// Write replaces the table contents with listings in one transaction. On any
// error the transaction is rolled back and the previous rows are kept.
func (w *SQLWriter) Write(ctx context.Context, listings []models.Listing) (err error) {
	db, err := w.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sql: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM annonces"); err != nil {
		return fmt.Errorf("sql: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, w.insertQuery())
	if err != nil {
		return fmt.Errorf("sql: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, n := range services.Normalize(listings) {
		if _, err := stmt.ExecContext(ctx,
			n.Title, nullableInt(n.Price), n.PropertyType, n.Location, n.PublicationDate, n.Link,
		); err != nil {
			return fmt.Errorf("sql: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sql: commit: %w", err)
	}
	w.logger.Debug("[sql] Committed %d rows to annonces", len(listings))
	return nil
}

// FetchAll retrieves all stored listings in insertion order. The table keeps
// no displayed price, so RawPrice is rebuilt from the integer price.
func (w *SQLWriter) FetchAll(ctx context.Context) ([]models.NormalizedListing, error) {
	db, err := w.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT title, price, property_type, location, publication_date, link
		FROM annonces
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("sql: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []models.NormalizedListing
	for rows.Next() {
		var (
			n     models.NormalizedListing
			price sql.NullInt64
			text  [5]sql.NullString
		)
		if err := rows.Scan(&text[0], &price, &text[1], &text[2], &text[3], &text[4]); err != nil {
			return nil, fmt.Errorf("sql: scan row: %w", err)
		}
		n.Title = text[0].String
		n.PropertyType = text[1].String
		n.Location = text[2].String
		n.PublicationDate = text[3].String
		n.Link = text[4].String
		n.RawPrice = models.NotAvailable
		if price.Valid {
			p := price.Int64
			n.Price = &p
			n.RawPrice = strconv.FormatInt(p, 10)
		}
		listings = append(listings, n)
	}
	return listings, rows.Err()
}

func nullableInt(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

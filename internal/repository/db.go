// Package repository persists processed invoice rows to an embedded SQLite
// database so batch runs and exports can operate over previously computed
// results.
package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	gstin          TEXT NOT NULL DEFAULT '',
	invoice_date   TEXT NOT NULL DEFAULT '',
	total_amount   REAL NOT NULL DEFAULT 0,
	valid_gstin    INTEGER NOT NULL DEFAULT 0,
	state          TEXT NOT NULL DEFAULT '',
	taxable_value  TEXT NOT NULL DEFAULT '0',
	cgst           TEXT NOT NULL DEFAULT '0',
	sgst           TEXT NOT NULL DEFAULT '0',
	igst           TEXT NOT NULL DEFAULT '0',
	raw_text       TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices(created_at);
`

// Open opens (or creates) the SQLite store at path and ensures the schema.
// Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("opening invoice store", "path", path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open invoice store", "error", err)
		return nil, err
	}
	// modernc sqlite is single-writer; keep the pool at one connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	"github.com/etnz/risk"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists report runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode lets readers query past runs while a report is being recorded.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                    TEXT PRIMARY KEY,
			timestamp             INTEGER NOT NULL,
			source                TEXT,
			confidence            REAL NOT NULL,
			trading_days_per_year INTEGER NOT NULL,
			warnings              INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS metrics (
			run_id                TEXT NOT NULL REFERENCES runs(id),
			ticker                TEXT NOT NULL,
			sample_size           INTEGER NOT NULL,
			annualised_volatility REAL,
			var_confidence        REAL NOT NULL,
			historical_var        REAL,
			PRIMARY KEY (run_id, ticker)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_metrics_ticker ON metrics(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", head(s), err)
		}
	}
	return nil
}

// head returns the beginning of a statement, for error messages.
func head(stmt string) string {
	return stmt[:min(len(stmt), 40)]
}

// RecordRun stores a run and its rows in a single transaction. Undefined metrics are stored as NULL.
func (r *SQLiteRecorder) RecordRun(ctx context.Context, run Run, rows []risk.RiskMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs
		(id, timestamp, source, confidence, trading_days_per_year, warnings)
		VALUES (?,?,?,?,?,?)`,
		run.ID.String(), run.At.Unix(), run.Source, run.Confidence, run.TradingDaysPerYear, run.Warnings,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO metrics
		(run_id, ticker, sample_size, annualised_volatility, var_confidence, historical_var)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare metrics: %w", err)
	}
	defer stmt.Close()
	for _, m := range rows {
		if _, err := stmt.ExecContext(ctx, run.ID.String(), m.Ticker, m.SampleSize,
			m.AnnualisedVolatility, m.VaRConfidence, m.HistoricalVaR); err != nil {
			return fmt.Errorf("insert metrics for %q: %w", m.Ticker, err)
		}
	}
	return tx.Commit()
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// SQLiteRecorder persists analysis runs and their rows to a SQLite database.
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

	// WAL mode so dashboards can read while the analyzer writes.
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
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id         TEXT PRIMARY KEY,
			symbol     TEXT NOT NULL,
			market     TEXT NOT NULL,
			timeframe  TEXT NOT NULL,
			bar_count  INTEGER NOT NULL,
			bullish    INTEGER NOT NULL,
			bearish    INTEGER NOT NULL,
			neutral    INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON analysis_runs(created_at)`,

		`CREATE TABLE IF NOT EXISTS analysis_rows (
			run_id      TEXT NOT NULL,
			bar_index   INTEGER NOT NULL,
			timestamp   INTEGER NOT NULL,
			open        REAL NOT NULL,
			high        REAL NOT NULL,
			low         REAL NOT NULL,
			close       REAL NOT NULL,
			volume      REAL NOT NULL,
			sma20       REAL,
			sma50       REAL,
			ema20       REAL,
			rsi14       REAL,
			macd        REAL,
			macd_signal REAL,
			macd_hist   REAL,
			trend       TEXT NOT NULL,
			PRIMARY KEY (run_id, bar_index)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rows_ts ON analysis_rows(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary and all its rows in one transaction.
func (r *SQLiteRecorder) RecordRun(sum *RunSummary, rows []model.AnalysisRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO analysis_runs
		(id, symbol, market, timeframe, bar_count, bullish, bearish, neutral, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		sum.ID, sum.Symbol, sum.Market, sum.Timeframe,
		sum.Bars, sum.Bullish, sum.Bearish, sum.Neutral, sum.CreatedAt.Unix(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO analysis_rows
		(run_id, bar_index, timestamp, open, high, low, close, volume,
		 sma20, sma50, ema20, rsi14, macd, macd_signal, macd_hist, trend)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare rows insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.Exec(
			sum.ID, i, row.Bar.Time.Unix(),
			row.Bar.Open, row.Bar.High, row.Bar.Low, row.Bar.Close, row.Bar.Volume,
			nullable(row.SMA20), nullable(row.SMA50), nullable(row.EMA20), nullable(row.RSI14),
			nullable(row.MACD), nullable(row.Signal), nullable(row.Histogram),
			string(row.Trend),
		); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// nullable maps undefined (warm-up) values to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

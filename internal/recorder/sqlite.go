package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis history to a SQLite database.
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

	// WAL mode so external dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			macro_score INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS analysis_results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES analysis_runs(id),
			ticker      TEXT NOT NULL,
			signal      TEXT,
			error       TEXT,
			price       REAL,
			change_pct  REAL,
			entry_low   REAL,
			entry_high  REAL,
			stop_loss   REAL,
			target1     REAL,
			target2     REAL,
			k           REAL,
			weekly_hist REAL,
			atr         REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run ON analysis_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS macro_indicators (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id  INTEGER NOT NULL REFERENCES analysis_runs(id),
			name    TEXT NOT NULL,
			raw     REAL,
			verdict INTEGER,
			known   INTEGER,
			detail  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_indicators_run ON macro_indicators(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one analysis run with its per-ticker results and the
// macro snapshot behind them.
func (r *SQLiteRecorder) RecordRun(run *AnalysisRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO analysis_runs (timestamp, macro_score) VALUES (?,?)`,
		run.At.Unix(), run.MacroScore)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, item := range run.Items {
		if item.Result == nil {
			if _, err := tx.Exec(`INSERT INTO analysis_results (run_id, ticker, error) VALUES (?,?,?)`,
				runID, item.Ticker, item.Err); err != nil {
				return fmt.Errorf("insert result: %w", err)
			}
			continue
		}
		tr := item.Result
		if _, err := tx.Exec(`INSERT INTO analysis_results
			(run_id, ticker, signal, price, change_pct, entry_low, entry_high,
			 stop_loss, target1, target2, k, weekly_hist, atr)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, item.Ticker, string(tr.Signal), tr.Price, tr.ChangePct,
			tr.EntryLow, tr.EntryHigh, tr.StopLoss, tr.Target1, tr.Target2,
			tr.K, tr.WeeklyHist, tr.ATR); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
	}

	for _, ind := range run.Indicators {
		if _, err := tx.Exec(`INSERT INTO macro_indicators (run_id, name, raw, verdict, known, detail)
			VALUES (?,?,?,?,?,?)`,
			runID, ind.Name, ind.Raw, ind.Verdict, ind.Known, ind.Detail); err != nil {
			return fmt.Errorf("insert indicator: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists analysis snapshots to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *zap.SugaredLogger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *zap.SugaredLogger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block server writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			price          REAL,
			change_percent REAL,
			rsi            REAL,
			macd           REAL,
			score          REAL,
			label          TEXT,
			source         TEXT,
			demo_mode      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_symbol_ts ON analysis_snapshots(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	demo := 0
	if snap.DemoMode {
		demo = 1
	}

	_, err := r.db.Exec(`INSERT INTO analysis_snapshots
		(timestamp, symbol, price, change_percent, rsi, macd, score, label, source, demo_mode)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		ts.Unix(), snap.Symbol, snap.Price, snap.ChangePercent,
		snap.RSI, snap.MACD, snap.Score, snap.Label, snap.Source, demo,
	)
	return err
}

func (r *SQLiteRecorder) RecentSnapshots(symbol string, limit int) ([]AnalysisSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, price, change_percent, rsi, macd, score, label, source, demo_mode
		FROM analysis_snapshots WHERE symbol = ? ORDER BY timestamp DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnalysisSnapshot
	for rows.Next() {
		var snap AnalysisSnapshot
		var ts int64
		var demo int
		if err := rows.Scan(&ts, &snap.Symbol, &snap.Price, &snap.ChangePercent,
			&snap.RSI, &snap.MACD, &snap.Score, &snap.Label, &snap.Source, &demo); err != nil {
			return nil, err
		}
		snap.Timestamp = time.Unix(ts, 0)
		snap.DemoMode = demo == 1
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) TrimBefore(t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`DELETE FROM analysis_snapshots WHERE timestamp < ?`, t.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS quotes (
  symbol TEXT PRIMARY KEY,
  bid REAL NOT NULL,
  ask REAL NOT NULL,
  last_price REAL NOT NULL,
  ts_ms INTEGER NOT NULL,
  source TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_ts ON quotes(ts_ms);

CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts_ms INTEGER NOT NULL,
  payload TEXT NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_ms);
`)
	return err
}

func (r *Repo) UpsertQuote(ctx context.Context, q domain.Quote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quotes(symbol, bid, ask, last_price, ts_ms, source, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET
		  bid=excluded.bid, ask=excluded.ask, last_price=excluded.last_price,
		  ts_ms=excluded.ts_ms, source=excluded.source, updated_at=excluded.updated_at
	`, q.Symbol, q.Bid, q.Ask, q.LastPrice, q.Ts, string(q.Source), time.Now().UnixMilli())
	return err
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots(ts_ms, payload, created_at) VALUES(?, ?, ?)
	`, ts, payload, time.Now().UnixMilli())
	return err
}

var _ port.Recorder = (*Repo)(nil)

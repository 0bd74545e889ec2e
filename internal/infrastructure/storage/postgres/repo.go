package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

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
  bid DOUBLE PRECISION NOT NULL,
  ask DOUBLE PRECISION NOT NULL,
  last_price DOUBLE PRECISION NOT NULL,
  ts_ms BIGINT NOT NULL,
  source TEXT NOT NULL,
  updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
  id BIGSERIAL PRIMARY KEY,
  ts_ms BIGINT NOT NULL,
  payload TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(ts_ms);
`)
	return err
}

func (r *Repo) UpsertQuote(ctx context.Context, q domain.Quote) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quotes(symbol, bid, ask, last_price, ts_ms, source, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT(symbol) DO UPDATE SET
		  bid=excluded.bid, ask=excluded.ask, last_price=excluded.last_price,
		  ts_ms=excluded.ts_ms, source=excluded.source, updated_at=excluded.updated_at
	`, q.Symbol, q.Bid, q.Ask, q.LastPrice, q.Ts, string(q.Source), time.Now().UnixMilli())
	return err
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots(ts_ms, payload, created_at) VALUES($1, $2, $3)
	`, ts, payload, time.Now().UnixMilli())
	return err
}

var _ port.Recorder = (*Repo)(nil)

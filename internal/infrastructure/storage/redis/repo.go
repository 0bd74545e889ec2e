package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

type Repo struct {
	rdb       *redis.Client
	prefix    string
	ttl       time.Duration
	keyQuotes string // prefix + ":quotes"
	tickChan  string // prefix + ":ticks"
}

func New(rdb *redis.Client, prefix string, ttl time.Duration) *Repo {
	return &Repo{
		rdb:       rdb,
		prefix:    prefix,
		ttl:       ttl,
		keyQuotes: prefix + ":quotes",
		tickChan:  prefix + ":ticks",
	}
}

// UpsertQuote mirrors the quote into the shared hash and publishes it for
// out-of-process consumers.
func (r *Repo) UpsertQuote(ctx context.Context, q domain.Quote) error {
	b, _ := json.Marshal(q)

	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyQuotes, q.Symbol, string(b))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyQuotes, r.ttl)
	}
	pipe.Publish(ctx, r.tickChan, string(b))
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Repo) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	key := r.prefix + ":snapshot"
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, key, "ts_ms", ts, "payload", payload)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Repo) Close() error { return r.rdb.Close() }

var _ port.Recorder = (*Repo)(nil)

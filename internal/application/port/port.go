package port

import (
	"context"

	"github.com/suimfx/suimfx-official/internal/domain"
)

// Feed is a long-lived upstream price source. Run blocks until ctx is
// cancelled, owning its connection lifecycle (reconnects included).
type Feed interface {
	Name() string
	Run(ctx context.Context) error
}

// Broadcaster receives accepted quote updates for fan-out to subscribers.
// Implementations must never block the calling feed on subscriber I/O.
type Broadcaster interface {
	BroadcastTick(q domain.Quote)
}

// Fetcher is the on-demand REST backfill used by the query facade when a
// symbol is missing from the cache.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (domain.Quote, error)
	FetchQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error)
}

// Recorder mirrors accepted quotes and periodic snapshots into external
// storage. Writes are best-effort: a failing recorder never stops ingestion.
type Recorder interface {
	UpsertQuote(ctx context.Context, q domain.Quote) error
	InsertSnapshot(ctx context.Context, ts int64, payload string) error
	Close() error
}

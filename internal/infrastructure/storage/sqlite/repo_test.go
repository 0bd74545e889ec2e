package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/suimfx/suimfx-official/internal/domain"
)

func TestUpsertQuoteReplaces(t *testing.T) {
	repo, err := New(filepath.Join(t.TempDir(), "quotes.db"))
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	q := domain.Quote{Symbol: "EURUSD", Bid: 1.1000, Ask: 1.1002, Ts: 1000, Source: domain.SourceDepth}
	if err := repo.UpsertQuote(ctx, q); err != nil {
		t.Fatalf("UpsertQuote failed: %v", err)
	}

	q.Bid, q.Ask, q.Ts = 1.1005, 1.1007, 2000
	if err := repo.UpsertQuote(ctx, q); err != nil {
		t.Fatalf("second UpsertQuote failed: %v", err)
	}

	var count int
	var bid float64
	row := repo.db.QueryRowContext(ctx, `SELECT COUNT(*), MAX(bid) FROM quotes WHERE symbol = ?`, "EURUSD")
	if err := row.Scan(&count, &bid); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if count != 1 || bid != 1.1005 {
		t.Errorf("count=%d bid=%v, want one replaced row", count, bid)
	}
}

func TestInsertSnapshot(t *testing.T) {
	repo, err := New(filepath.Join(t.TempDir(), "quotes.db"))
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.InsertSnapshot(ctx, 1000, `{"EURUSD":{"bid":1.1}}`); err != nil {
		t.Fatalf("InsertSnapshot failed: %v", err)
	}
	if err := repo.InsertSnapshot(ctx, 2000, `{"EURUSD":{"bid":1.2}}`); err != nil {
		t.Fatalf("second InsertSnapshot failed: %v", err)
	}

	var count int
	row := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`)
	if err := row.Scan(&count); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d", count)
	}
}

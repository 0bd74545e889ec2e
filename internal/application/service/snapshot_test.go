package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/suimfx/suimfx-official/internal/domain"
)

type stubRecorder struct {
	snapshots []string
	err       error
}

func (r *stubRecorder) UpsertQuote(ctx context.Context, q domain.Quote) error { return r.err }

func (r *stubRecorder) InsertSnapshot(ctx context.Context, ts int64, payload string) error {
	if r.err != nil {
		return r.err
	}
	r.snapshots = append(r.snapshots, payload)
	return nil
}

func (r *stubRecorder) Close() error { return nil }

func TestSnapshotterPersistsCache(t *testing.T) {
	cache := domain.NewPriceCache()
	cache.Upsert(quote("EURUSD", 1.1000, 1.1002, 1000))
	cache.Upsert(quote("BTCUSD", 65000, 65001, 1000))

	rec := &stubRecorder{}
	s := NewSnapshotter(cache, rec, time.Minute)
	if err := s.persist(context.Background()); err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if len(rec.snapshots) != 1 {
		t.Fatalf("snapshots = %d", len(rec.snapshots))
	}

	var decoded map[string]domain.Quote
	if err := json.Unmarshal([]byte(rec.snapshots[0]), &decoded); err != nil {
		t.Fatalf("payload not valid json: %v", err)
	}
	if len(decoded) != 2 || decoded["EURUSD"].Bid != 1.1000 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestSnapshotterSkipsEmptyCache(t *testing.T) {
	rec := &stubRecorder{}
	s := NewSnapshotter(domain.NewPriceCache(), rec, time.Minute)
	if err := s.persist(context.Background()); err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if len(rec.snapshots) != 0 {
		t.Errorf("snapshots = %d, want none for empty cache", len(rec.snapshots))
	}
}

func TestSnapshotterSurfacesRecorderError(t *testing.T) {
	cache := domain.NewPriceCache()
	cache.Upsert(quote("EURUSD", 1.1000, 1.1002, 1000))
	s := NewSnapshotter(cache, &stubRecorder{err: errors.New("db down")}, time.Minute)
	if err := s.persist(context.Background()); err == nil {
		t.Fatal("expected recorder error")
	}
}

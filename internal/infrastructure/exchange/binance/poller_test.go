package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/suimfx/suimfx-official/internal/domain"
)

type countingBroadcaster struct {
	ticks []domain.Quote
}

func (b *countingBroadcaster) BroadcastTick(q domain.Quote) {
	b.ticks = append(b.ticks, q)
}

func TestPollUpdatesCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/ticker/bookTicker" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","bidPrice":"65000.00","askPrice":"65000.50"},
			{"symbol":"ETHUSDT","bidPrice":"3500.10","askPrice":"3500.20"},
			{"symbol":"UNRELATED","bidPrice":"1","askPrice":"2"},
			{"symbol":"SOLUSDT","bidPrice":"bad","askPrice":"150.0"}
		]`))
	}))
	defer srv.Close()

	cache := domain.NewPriceCache()
	hub := &countingBroadcaster{}
	p := NewPoller(PollerConfig{APIBase: srv.URL}, cache, hub, nil)

	if err := p.poll(context.Background()); err != nil {
		t.Fatalf("poll failed: %v", err)
	}

	btc, ok := cache.Get("BTCUSD")
	if !ok {
		t.Fatal("BTCUSD missing from cache")
	}
	if btc.Bid != 65000.00 || btc.Ask != 65000.50 {
		t.Errorf("BTCUSD = %+v", btc)
	}
	if btc.Source != domain.SourceDepth {
		t.Errorf("source = %v", btc.Source)
	}
	if _, ok := cache.Get("ETHUSD"); !ok {
		t.Error("ETHUSD missing from cache")
	}
	// Unmapped vendor symbols and unparseable prices never reach the cache.
	if _, ok := cache.Get("UNRELATED"); ok {
		t.Error("unmapped symbol cached")
	}
	if _, ok := cache.Get("SOLUSD"); ok {
		t.Error("unparseable ticker cached")
	}
	if len(hub.ticks) != 2 {
		t.Errorf("broadcast ticks = %d", len(hub.ticks))
	}
}

func TestPollErrorPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cache := domain.NewPriceCache()
	p := NewPoller(PollerConfig{APIBase: srv.URL}, cache, &countingBroadcaster{}, nil)

	if err := p.poll(context.Background()); err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if cache.Size() != 0 {
		t.Errorf("cache size = %d", cache.Size())
	}
}

func TestSymbolMapSpellings(t *testing.T) {
	for canonical, vendor := range SymbolMap {
		if canonical == "" || vendor == "" {
			t.Fatalf("empty entry %q -> %q", canonical, vendor)
		}
		if canonical[len(canonical)-3:] != "USD" {
			t.Errorf("canonical %q does not end in USD", canonical)
		}
		if vendor[len(vendor)-4:] != "USDT" {
			t.Errorf("vendor %q does not end in USDT", vendor)
		}
	}
}

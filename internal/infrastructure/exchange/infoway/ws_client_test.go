package infoway

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/symbols"
)

func TestReconnectDelayMonotonic(t *testing.T) {
	p := BackoffPolicy{Initial: time.Second, Multiplier: 1.5, Max: 30 * time.Second}

	prev := time.Duration(0)
	for attempts := 1; attempts <= 20; attempts++ {
		d := reconnectDelay(p, attempts)
		if d < prev {
			t.Fatalf("delay decreased at attempt %d: %v < %v", attempts, d, prev)
		}
		if d > p.Max {
			t.Fatalf("delay exceeded max at attempt %d: %v", attempts, d)
		}
		prev = d
	}

	if got := reconnectDelay(p, 50); got != p.Max {
		t.Errorf("delay after many attempts = %v, want max %v", got, p.Max)
	}
}

func TestDefaultJitterBound(t *testing.T) {
	reg := symbols.NewRegistry(nil, nil)
	c := NewConn(ConnConfig{Business: BusinessCommon}, NewNormalizer(reg), domain.NewPriceCache(), nopBroadcaster{}, nil)

	// The scheduled delay is reconnectDelay + jitter, jitter in [0, 1s).
	for i := 0; i < 1000; i++ {
		if j := c.jitter(); j < 0 || j >= maxJitter {
			t.Fatalf("jitter %v outside [0, %v)", j, maxJitter)
		}
	}
}

func TestRunRefusesMissingAPIKey(t *testing.T) {
	cache := domain.NewPriceCache()
	reg := symbols.NewRegistry(nil, nil)
	c := NewConn(ConnConfig{
		Business:  BusinessCommon,
		WsURL:     "wss://example.invalid/ws",
		Heartbeat: 30 * time.Second,
		Backoff:   BackoffPolicy{Initial: time.Second, Multiplier: 1.5, Max: 30 * time.Second},
	}, NewNormalizer(reg), cache, nopBroadcaster{}, nil)

	if err := c.Run(context.Background()); err != ErrMissingAPIKey {
		t.Fatalf("Run = %v, want ErrMissingAPIKey", err)
	}
	if st := c.State(); st.Status != StatusDisconnected && st.Status != StatusShuttingDown {
		t.Errorf("state after refused run = %+v", st)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cache := domain.NewPriceCache()
	reg := symbols.NewRegistry(nil, nil)
	c := NewConn(ConnConfig{
		Business:  BusinessCrypto,
		WsURL:     "ws://127.0.0.1:1/ws", // nothing listens here
		APIKey:    "k",
		Codes:     []string{"BTCUSDT"},
		Heartbeat: 30 * time.Second,
		Backoff:   BackoffPolicy{Initial: 10 * time.Millisecond, Multiplier: 1.5, Max: 50 * time.Millisecond},
	}, NewNormalizer(reg), cache, nopBroadcaster{}, nil)
	c.jitter = func() time.Duration { return 0 }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	// Let it cycle through a few failed dials, then shut down.
	time.Sleep(100 * time.Millisecond)
	st := c.State()
	if st.ReconnectAttempts == 0 {
		t.Error("expected reconnect attempts against a dead endpoint")
	}
	if st.LastError == "" {
		t.Error("expected dial error recorded")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	if st := c.State(); st.Status != StatusShuttingDown {
		t.Errorf("terminal status = %q, want shutting_down", st.Status)
	}
}

func TestRunRejectsDoubleStart(t *testing.T) {
	cache := domain.NewPriceCache()
	reg := symbols.NewRegistry(nil, nil)
	c := NewConn(ConnConfig{
		Business:  BusinessCommon,
		WsURL:     "ws://127.0.0.1:1/ws",
		APIKey:    "k",
		Heartbeat: 30 * time.Second,
		Backoff:   BackoffPolicy{Initial: 10 * time.Millisecond, Multiplier: 1.5, Max: 50 * time.Millisecond},
	}, NewNormalizer(reg), cache, nopBroadcaster{}, nil)
	c.jitter = func() time.Duration { return 0 }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = c.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)

	if err := c.Run(ctx); err == nil {
		t.Fatal("second Run on the same partition succeeded")
	}
}

func TestBuildPartitionsCap(t *testing.T) {
	lister := &bigLister{forex: 620}
	reg := symbols.NewRegistry(lister, nil)
	if err := reg.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}

	parts := BuildPartitions(reg, 600)
	if len(parts) != 2 {
		t.Fatalf("partitions = %d, want 2", len(parts))
	}
	common := parts[0]
	if common.Business != BusinessCommon {
		t.Errorf("first partition business = %q", common.Business)
	}
	if len(common.Codes) != 600 {
		t.Errorf("common partition has %d symbols, want cap 600", len(common.Codes))
	}
	if parts[1].Business != BusinessCrypto {
		t.Errorf("second partition business = %q", parts[1].Business)
	}
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastTick(domain.Quote) {}

// bigLister yields a large synthetic forex list and errors elsewhere so the
// metals/energy fallbacks stay small and deterministic.
type bigLister struct {
	forex int
}

func (l *bigLister) ListSymbols(_ context.Context, class domain.AssetClass) ([]symbols.Item, error) {
	if class != domain.AssetForex {
		return nil, nil
	}
	items := make([]symbols.Item, 0, l.forex)
	for i := 0; i < l.forex; i++ {
		items = append(items, symbols.Item{Symbol: fmt.Sprintf("FX%04dUSD", i)})
	}
	return items, nil
}

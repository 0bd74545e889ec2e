package service

import (
	"testing"
	"time"

	"github.com/suimfx/suimfx-official/internal/domain"
)

func newTestHub(buffer int) (*Hub, *domain.PriceCache) {
	cache := domain.NewPriceCache()
	return NewHub(HubConfig{BroadcastEvery: 500 * time.Millisecond, Buffer: buffer}, cache), cache
}

func quote(symbol string, bid, ask float64, ts int64) domain.Quote {
	return domain.Quote{
		Symbol: symbol,
		Bid:    bid,
		Ask:    ask,
		Mid:    (bid + ask) / 2,
		Spread: ask - bid,
		Ts:     ts,
		Source: domain.SourceDepth,
	}
}

func TestBroadcastTickDelivered(t *testing.T) {
	h, _ := newTestHub(8)
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	q := quote("EURUSD", 1.1000, 1.1002, 1000)
	h.BroadcastTick(q)

	select {
	case msg := <-sub.C:
		if msg.Type != MessagePriceUpdate {
			t.Errorf("type = %s", msg.Type)
		}
		if msg.Symbol != "EURUSD" || msg.Price == nil || msg.Price.Bid != 1.1000 {
			t.Errorf("msg = %+v", msg)
		}
	default:
		t.Fatal("no message delivered")
	}
}

func TestBroadcastTickNoSubscribers(t *testing.T) {
	h, _ := newTestHub(8)
	// Must not block or panic with nobody listening.
	h.BroadcastTick(quote("EURUSD", 1.1000, 1.1002, 1000))
	if h.Delivered() != 0 {
		t.Errorf("delivered = %d", h.Delivered())
	}
}

func TestBroadcastDropOldest(t *testing.T) {
	h, _ := newTestHub(1)
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.BroadcastTick(quote("EURUSD", 1.0, 1.1, 1))
	h.BroadcastTick(quote("EURUSD", 2.0, 2.1, 2))
	h.BroadcastTick(quote("EURUSD", 3.0, 3.1, 3))

	// The buffer holds exactly one message and it is the newest.
	msg := <-sub.C
	if msg.Price.Bid != 3.0 {
		t.Errorf("bid = %v, want newest", msg.Price.Bid)
	}
	select {
	case extra := <-sub.C:
		t.Errorf("unexpected extra message %+v", extra)
	default:
	}
	if h.Dropped() == 0 {
		t.Error("dropped counter not incremented")
	}
}

func TestSnapshotCarriesCacheAndUpdated(t *testing.T) {
	h, cache := newTestHub(8)

	cache.Upsert(quote("EURUSD", 1.1000, 1.1002, 1000))
	cache.Upsert(quote("BTCUSD", 65000, 65001, 1000))
	h.BroadcastTick(quote("EURUSD", 1.1001, 1.1003, 2000))

	msg := h.Snapshot()
	if msg.Type != MessagePriceStream {
		t.Errorf("type = %s", msg.Type)
	}
	if len(msg.Prices) != 2 {
		t.Errorf("prices = %d", len(msg.Prices))
	}
	if len(msg.Updated) != 1 || msg.Updated[0] != "EURUSD" {
		t.Errorf("updated = %v", msg.Updated)
	}

	// The updated set resets once reported.
	if again := h.Snapshot(); len(again.Updated) != 0 {
		t.Errorf("updated after reset = %v", again.Updated)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	h, _ := newTestHub(8)
	sub := h.Subscribe()
	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	if h.SubscriberCount() != 0 {
		t.Errorf("count = %d", h.SubscriberCount())
	}

	// A closed subscriber channel reads the zero message.
	if _, ok := <-sub.C; ok {
		t.Error("channel not closed")
	}
}

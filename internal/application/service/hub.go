package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/domain"
)

const (
	// MessagePriceUpdate carries a single changed quote.
	MessagePriceUpdate = "priceUpdate"
	// MessagePriceStream carries the full cache plus the symbols changed
	// since the previous snapshot.
	MessagePriceStream = "priceStream"
)

// StreamMessage is the wire unit of the push stream. Exactly one of the
// per-update or snapshot fields is populated, keyed by Type.
type StreamMessage struct {
	Type      string                  `json:"type"`
	Symbol    string                  `json:"symbol,omitempty"`
	Price     *domain.Quote           `json:"price,omitempty"`
	Prices    map[string]domain.Quote `json:"prices,omitempty"`
	Updated   []string                `json:"updated,omitempty"`
	Timestamp int64                   `json:"timestamp,omitempty"`
}

// Subscriber is one stream client. C delivers messages in order; under
// backpressure the oldest pending message is dropped so the client always
// converges on fresh data.
type Subscriber struct {
	id int64
	C  chan StreamMessage
}

type HubConfig struct {
	BroadcastEvery time.Duration // snapshot cadence
	Buffer         int           // per-subscriber channel depth
}

// Hub fans accepted ticks out to stream subscribers and pushes a periodic
// full snapshot. When nobody is subscribed, ticks cost one mutex hold and
// no allocation.
type Hub struct {
	cfg   HubConfig
	cache *domain.PriceCache

	mu      sync.Mutex
	subs    map[int64]*Subscriber
	nextID  int64
	updated map[string]struct{} // symbols changed since the last snapshot

	delivered atomic.Int64
	dropped   atomic.Int64
}

func NewHub(cfg HubConfig, cache *domain.PriceCache) *Hub {
	return &Hub{
		cfg:     cfg,
		cache:   cache,
		subs:    make(map[int64]*Subscriber),
		updated: make(map[string]struct{}),
	}
}

// Subscribe registers a new stream client and returns its subscription.
func (h *Hub) Subscribe() *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscriber{
		id: h.nextID,
		C:  make(chan StreamMessage, h.cfg.Buffer),
	}
	h.subs[sub.id] = sub
	log.Debug().Int64("subscriber", sub.id).Int("total", len(h.subs)).Msg("stream subscribed")
	return sub
}

// Unsubscribe removes the subscription and closes its channel. Safe to call
// twice.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.id]; !ok {
		return
	}
	delete(h.subs, sub.id)
	close(sub.C)
	log.Debug().Int64("subscriber", sub.id).Int("total", len(h.subs)).Msg("stream unsubscribed")
}

// SubscriberCount returns the number of live subscriptions.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Delivered and Dropped are cumulative delivery counters for the status
// endpoint.
func (h *Hub) Delivered() int64 { return h.delivered.Load() }
func (h *Hub) Dropped() int64   { return h.dropped.Load() }

// BroadcastTick publishes one changed quote to every subscriber. It never
// blocks the calling feed: a full subscriber buffer sheds its oldest
// message to make room.
func (h *Hub) BroadcastTick(q domain.Quote) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.updated[q.Symbol] = struct{}{}
	if len(h.subs) == 0 {
		return
	}

	quote := q
	msg := StreamMessage{
		Type:      MessagePriceUpdate,
		Symbol:    q.Symbol,
		Price:     &quote,
		Timestamp: q.Ts,
	}
	for _, sub := range h.subs {
		h.send(sub, msg)
	}
}

// Snapshot builds the full-cache stream message handed to a subscriber on
// connect and pushed on the broadcast cadence.
func (h *Hub) Snapshot() StreamMessage {
	prices := h.cache.GetAll()

	h.mu.Lock()
	updated := make([]string, 0, len(h.updated))
	for s := range h.updated {
		updated = append(updated, s)
	}
	h.updated = make(map[string]struct{})
	h.mu.Unlock()

	return StreamMessage{
		Type:      MessagePriceStream,
		Prices:    prices,
		Updated:   updated,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Run pushes the periodic snapshot until ctx is cancelled. Ticks with no
// subscribers only reset the updated set.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.cfg.BroadcastEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return ctx.Err()
		case <-ticker.C:
			h.mu.Lock()
			idle := len(h.subs) == 0
			if idle {
				h.updated = make(map[string]struct{})
			}
			h.mu.Unlock()
			if idle {
				continue
			}

			msg := h.Snapshot()
			h.mu.Lock()
			for _, sub := range h.subs {
				h.send(sub, msg)
			}
			h.mu.Unlock()
		}
	}
}

// send delivers under h.mu. Drop-oldest keeps the channel draining toward
// the newest state.
func (h *Hub) send(sub *Subscriber, msg StreamMessage) {
	select {
	case sub.C <- msg:
		h.delivered.Add(1)
		return
	default:
	}

	select {
	case <-sub.C:
		h.dropped.Add(1)
	default:
	}
	select {
	case sub.C <- msg:
		h.delivered.Add(1)
	default:
		h.dropped.Add(1)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.C)
	}
}

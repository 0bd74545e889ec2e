package domain

import "sync"

// PriceCache holds the latest quote per canonical symbol. It is the only
// piece of state written by more than one goroutine (every feed connection
// writes into it) and provides its own synchronization; callers never lock.
type PriceCache struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

func NewPriceCache() *PriceCache {
	return &PriceCache{quotes: make(map[string]Quote)}
}

// Upsert stores a whole-quote replacement for the symbol.
//
// Precedence rule: a trade-sourced quote never overwrites the bid/ask of an
// existing depth-sourced quote. In that case only the last-trade fields are
// refreshed, since depth data is the more accurate top of book.
func (c *PriceCache) Upsert(q Quote) {
	if !q.Valid() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if q.Source == SourceTrade {
		if prev, ok := c.quotes[q.Symbol]; ok && prev.Source == SourceDepth {
			prev.LastPrice = q.LastPrice
			prev.LastVolume = q.LastVolume
			prev.LastDirection = q.LastDirection
			prev.Ts = q.Ts
			c.quotes[q.Symbol] = prev
			return
		}
	}

	c.quotes[q.Symbol] = q
}

func (c *PriceCache) Get(symbol string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[symbol]
	return q, ok
}

// GetAll returns a point-in-time copy of the cache, never a live view.
func (c *PriceCache) GetAll() map[string]Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Quote, len(c.quotes))
	for sym, q := range c.quotes {
		out[sym] = q
	}
	return out
}

// Symbols returns the canonical symbols currently cached.
func (c *PriceCache) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.quotes))
	for sym := range c.quotes {
		out = append(out, sym)
	}
	return out
}

func (c *PriceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.quotes)
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

// ErrPriceUnavailable means neither the cache nor the backfill path has a
// quote for the symbol.
var ErrPriceUnavailable = errors.New("price not available")

// PriceFacade answers point-in-time price queries: cache first, then one
// best-effort REST backfill for misses. Backfilled quotes are written back
// so the next query hits the cache.
type PriceFacade struct {
	cache   *domain.PriceCache
	fetcher port.Fetcher
}

func NewPriceFacade(cache *domain.PriceCache, fetcher port.Fetcher) *PriceFacade {
	return &PriceFacade{cache: cache, fetcher: fetcher}
}

func (f *PriceFacade) GetPrice(ctx context.Context, symbol string) (domain.Quote, error) {
	if q, ok := f.cache.Get(symbol); ok {
		return q, nil
	}
	if f.fetcher == nil {
		return domain.Quote{}, ErrPriceUnavailable
	}

	q, err := f.fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		log.Debug().Str("symbol", symbol).Err(err).Msg("backfill fetch failed")
		return domain.Quote{}, ErrPriceUnavailable
	}
	q.Symbol = symbol
	if !q.Valid() {
		return domain.Quote{}, ErrPriceUnavailable
	}

	f.cache.Upsert(q)
	return q, nil
}

// GetBatchPrices resolves many symbols at once: cache hits are free, misses
// go out in a single batched fetch. Symbols that still have no quote are
// simply absent from the result.
func (f *PriceFacade) GetBatchPrices(ctx context.Context, symbols []string) map[string]domain.Quote {
	out := make(map[string]domain.Quote, len(symbols))
	var misses []string
	for _, s := range symbols {
		if q, ok := f.cache.Get(s); ok {
			out[s] = q
		} else {
			misses = append(misses, s)
		}
	}
	if len(misses) == 0 || f.fetcher == nil {
		return out
	}

	fetched, err := f.fetcher.FetchQuotes(ctx, misses)
	if err != nil {
		log.Debug().Int("misses", len(misses)).Err(err).Msg("batch backfill failed")
		return out
	}
	for s, q := range fetched {
		if !q.Valid() {
			continue
		}
		f.cache.Upsert(q)
		out[s] = q
	}
	return out
}

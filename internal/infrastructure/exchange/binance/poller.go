package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

type PollerConfig struct {
	APIBase  string
	Interval time.Duration
}

// Poller keeps the crypto majors fresh by polling the Binance spot book
// ticker. One request per tick covers every mapped pair. Poll failures are
// logged and skipped; the next tick retries.
type Poller struct {
	cfg      PollerConfig
	cache    *domain.PriceCache
	hub      port.Broadcaster
	recorder port.Recorder
	client   *http.Client

	failStreak int
}

func NewPoller(cfg PollerConfig, cache *domain.PriceCache, hub port.Broadcaster, recorder port.Recorder) *Poller {
	return &Poller{
		cfg:      cfg,
		cache:    cache,
		hub:      hub,
		recorder: recorder,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (p *Poller) Name() string { return "binance:spot" }

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	log.Info().Str("feed", p.Name()).Dur("interval", p.cfg.Interval).Int("symbols", len(SymbolMap)).Msg("poller started")

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := p.poll(ctx); err != nil {
				p.failStreak++
				// Warn once per outage, then keep quiet until it recovers.
				if p.failStreak == 1 {
					log.Warn().Str("feed", p.Name()).Err(err).Msg("poll failed")
				} else {
					log.Debug().Str("feed", p.Name()).Err(err).Int("streak", p.failStreak).Msg("poll failed")
				}
				continue
			}
			if p.failStreak > 0 {
				log.Info().Str("feed", p.Name()).Int("streak", p.failStreak).Msg("poll recovered")
				p.failStreak = 0
			}
		}
	}
}

type bookTicker struct {
	Symbol string `json:"symbol"`
	Bid    string `json:"bidPrice"`
	Ask    string `json:"askPrice"`
}

func (p *Poller) poll(ctx context.Context) error {
	endpoint := strings.TrimRight(p.cfg.APIBase, "/") + "/api/v3/ticker/bookTicker"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("book ticker status %d", resp.StatusCode)
	}

	var tickers []bookTicker
	if err := json.Unmarshal(body, &tickers); err != nil {
		return err
	}

	byVendor := make(map[string]bookTicker, len(tickers))
	for _, t := range tickers {
		byVendor[t.Symbol] = t
	}

	now := time.Now().UnixMilli()
	for canonical, vendorSym := range SymbolMap {
		t, ok := byVendor[vendorSym]
		if !ok {
			continue
		}
		bid, err1 := strconv.ParseFloat(t.Bid, 64)
		ask, err2 := strconv.ParseFloat(t.Ask, 64)
		if err1 != nil || err2 != nil {
			continue
		}

		q := domain.Quote{
			Symbol: canonical,
			Bid:    bid,
			Ask:    ask,
			Mid:    (bid + ask) / 2,
			Spread: ask - bid,
			Ts:     now,
			Source: domain.SourceDepth,
		}
		if !q.Valid() {
			continue
		}

		p.cache.Upsert(q)
		p.hub.BroadcastTick(q)
		if p.recorder != nil {
			if err := p.recorder.UpsertQuote(ctx, q); err != nil {
				log.Debug().Str("feed", p.Name()).Err(err).Msg("recorder upsert failed")
			}
		}
	}
	return nil
}

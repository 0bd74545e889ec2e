package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

// Snapshotter persists the whole price cache as one JSON document on a
// fixed interval. Failures are logged and the next interval retries; the
// mirror is an audit trail, not a dependency of the hot path.
type Snapshotter struct {
	cache    *domain.PriceCache
	recorder port.Recorder
	every    time.Duration
}

func NewSnapshotter(cache *domain.PriceCache, recorder port.Recorder, every time.Duration) *Snapshotter {
	return &Snapshotter{cache: cache, recorder: recorder, every: every}
}

func (s *Snapshotter) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.persist(ctx); err != nil {
				log.Warn().Err(err).Msg("cache snapshot failed")
			}
		}
	}
}

func (s *Snapshotter) persist(ctx context.Context) error {
	prices := s.cache.GetAll()
	if len(prices) == 0 {
		return nil
	}

	payload, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	ts := time.Now().UnixMilli()
	if err := s.recorder.InsertSnapshot(ctx, ts, string(payload)); err != nil {
		return err
	}
	log.Debug().Int("symbols", len(prices)).Msg("cache snapshot persisted")
	return nil
}

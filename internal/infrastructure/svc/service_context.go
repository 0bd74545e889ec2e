package svc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/application/service"
	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/config"
	"github.com/suimfx/suimfx-official/internal/infrastructure/exchange/binance"
	"github.com/suimfx/suimfx-official/internal/infrastructure/exchange/infoway"
	"github.com/suimfx/suimfx-official/internal/infrastructure/storage"
	compositerepo "github.com/suimfx/suimfx-official/internal/infrastructure/storage/composite"
	postgresrepo "github.com/suimfx/suimfx-official/internal/infrastructure/storage/postgres"
	redisrepo "github.com/suimfx/suimfx-official/internal/infrastructure/storage/redis"
	sqliterepo "github.com/suimfx/suimfx-official/internal/infrastructure/storage/sqlite"
	"github.com/suimfx/suimfx-official/internal/infrastructure/symbols"
)

// cryptoStartDelay staggers the second websocket dial so both partitions
// do not hit the vendor handshake at the same instant.
const cryptoStartDelay = 3 * time.Second

// Status is the introspection payload for the status endpoint.
type Status struct {
	Connected   bool                `json:"connected"`
	Feeds       []infoway.ConnState `json:"feeds"`
	CacheSize   int                 `json:"cacheSize"`
	Subscribers int                 `json:"subscribers"`
	Delivered   int64               `json:"delivered"`
	Dropped     int64               `json:"dropped"`
}

// ServiceContext wires every component: registry, cache, feeds, hub,
// facade, recorders. It is the single startup entry point; all dependency
// initialization happens here, in order.
type ServiceContext struct {
	Config *config.Config

	Registry *symbols.Registry
	Cache    *domain.PriceCache
	Hub      *service.Hub
	Facade   *service.PriceFacade

	recorder    port.Recorder
	snapshotter *service.Snapshotter
	conns       []*infoway.Conn
	feeds       []port.Feed

	connected   atomic.Bool
	closerChain []func() error
}

func New(ctx context.Context, cfg *config.Config) (*ServiceContext, error) {
	sc := &ServiceContext{
		Config: cfg,
		Cache:  domain.NewPriceCache(),
	}

	rest := infoway.NewRESTClient(cfg.Infoway.APIBase, cfg.Infoway.APIKey)
	sc.Registry = symbols.NewRegistry(rest, map[symbols.Vendor]map[string]string{
		symbols.VendorBinance: binance.SymbolMap,
	})

	// Symbol list fetch is bounded; a slow vendor falls back to the
	// compiled-in lists and startup proceeds.
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sc.Registry.Initialize(initCtx); err != nil {
		log.Warn().Err(err).Msg("symbol registry initialization degraded")
	}

	sc.Hub = service.NewHub(service.HubConfig{
		BroadcastEvery: time.Duration(cfg.Stream.BroadcastMs) * time.Millisecond,
		Buffer:         cfg.Stream.Buffer,
	}, sc.Cache)

	if err := sc.initStorage(ctx); err != nil {
		_ = sc.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageInitFailed, err)
	}

	sc.Facade = service.NewPriceFacade(sc.Cache, infoway.NewQuoteFetcher(rest, sc.Registry))
	sc.snapshotter = service.NewSnapshotter(sc.Cache, sc.recorder,
		time.Duration(cfg.App.SnapshotEveryMin)*time.Minute)

	if err := sc.initFeeds(); err != nil {
		_ = sc.Close()
		return nil, err
	}

	log.Info().Int("feeds", len(sc.feeds)).Msg("all components initialized")
	return sc, nil
}

// initStorage builds the recorder chain from the enabled backends. With
// nothing enabled the hot path writes to a no-op.
func (sc *ServiceContext) initStorage(ctx context.Context) error {
	var recorders []port.Recorder

	if sc.Config.Redis.Enabled {
		rdb := redisclient.NewClient(&redisclient.Options{
			Addr:     sc.Config.Redis.Addr,
			Password: sc.Config.Redis.Password,
			DB:       sc.Config.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return fmt.Errorf("redis ping failed: %w", err)
		}

		ttl := time.Duration(sc.Config.Redis.TTLSeconds) * time.Second
		repo := redisrepo.New(rdb, sc.Config.Redis.Prefix, ttl)
		recorders = append(recorders, repo)
		sc.closerChain = append(sc.closerChain, func() error {
			log.Info().Msg("closing redis connection")
			return repo.Close()
		})
		log.Info().Str("addr", sc.Config.Redis.Addr).Int("db", sc.Config.Redis.DB).Msg("redis initialized")
	}

	if sc.Config.SQLite.Enabled {
		repo, err := sqliterepo.New(sc.Config.SQLite.Path)
		if err != nil {
			return fmt.Errorf("sqlite repo creation failed: %w", err)
		}
		recorders = append(recorders, repo)
		sc.closerChain = append(sc.closerChain, func() error {
			log.Info().Msg("closing sqlite connection")
			return repo.Close()
		})
		log.Info().Str("path", sc.Config.SQLite.Path).Msg("sqlite initialized")
	}

	if sc.Config.Postgres.Enabled {
		repo, err := postgresrepo.New(sc.Config.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("postgres repo creation failed: %w", err)
		}
		recorders = append(recorders, repo)
		sc.closerChain = append(sc.closerChain, func() error {
			log.Info().Msg("closing postgres connection")
			return repo.Close()
		})
		log.Info().Msg("postgres initialized")
	}

	switch len(recorders) {
	case 0:
		sc.recorder = storage.Nop{}
	case 1:
		sc.recorder = recorders[0]
	default:
		sc.recorder = compositerepo.New(recorders...)
	}
	return nil
}

func (sc *ServiceContext) initFeeds() error {
	cfg := sc.Config

	if cfg.Infoway.APIKey == "" {
		log.Warn().Msg("infoway api key missing, websocket feeds disabled")
	} else {
		norm := infoway.NewNormalizer(sc.Registry)
		backoff := infoway.BackoffPolicy{
			Initial:    cfg.Infoway.Backoff.Initial(),
			Multiplier: cfg.Infoway.Backoff.Multiplier,
			Max:        cfg.Infoway.Backoff.Max(),
		}

		for _, p := range infoway.BuildPartitions(sc.Registry, cfg.Infoway.SymbolsPerConn) {
			if len(p.Codes) == 0 {
				continue
			}
			conn := infoway.NewConn(infoway.ConnConfig{
				Business:  p.Business,
				WsURL:     cfg.Infoway.WsURL,
				APIKey:    cfg.Infoway.APIKey,
				Codes:     p.Codes,
				Heartbeat: time.Duration(cfg.Infoway.HeartbeatSec) * time.Second,
				Backoff:   backoff,
			}, norm, sc.Cache, sc.Hub, sc.recorder)
			sc.conns = append(sc.conns, conn)
			sc.feeds = append(sc.feeds, conn)
		}
	}

	if cfg.Binance.Enabled {
		sc.feeds = append(sc.feeds, binance.NewPoller(binance.PollerConfig{
			APIBase:  cfg.Binance.APIBase,
			Interval: time.Duration(cfg.Binance.PollMs) * time.Millisecond,
		}, sc.Cache, sc.Hub, sc.recorder))
	}

	if len(sc.feeds) == 0 {
		return ErrNoFeedsEnabled
	}
	return nil
}

// Run starts every feed, the stream hub, the snapshot mirror, and the
// connectivity watcher, then blocks until ctx is cancelled.
func (sc *ServiceContext) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, feed := range sc.feeds {
		wg.Add(1)
		go func(f port.Feed) {
			defer wg.Done()
			if f.Name() == "infoway:"+infoway.BusinessCrypto {
				select {
				case <-ctx.Done():
					return
				case <-time.After(cryptoStartDelay):
				}
			}
			if err := f.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error().Str("feed", f.Name()).Err(err).Msg("feed stopped")
			}
		}(feed)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sc.Hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = sc.snapshotter.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sc.watchConnectivity(ctx)
	}()

	wg.Wait()
}

// watchConnectivity logs transitions of the aggregate connected flag.
func (sc *ServiceContext) watchConnectivity(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := sc.anyConnected()
			if sc.connected.CompareAndSwap(!now, now) {
				if now {
					log.Info().Msg("price feeds connected")
				} else {
					log.Warn().Msg("price feeds disconnected")
				}
			}
		}
	}
}

func (sc *ServiceContext) anyConnected() bool {
	for _, conn := range sc.conns {
		if conn.State().Status == infoway.StatusConnected {
			return true
		}
	}
	// The poller has no connection state; with it enabled the service is
	// considered live as long as any feed exists.
	return len(sc.conns) == 0 && len(sc.feeds) > 0
}

// Status aggregates the introspection snapshot served by the REST layer.
func (sc *ServiceContext) Status() Status {
	feeds := make([]infoway.ConnState, 0, len(sc.conns))
	for _, conn := range sc.conns {
		feeds = append(feeds, conn.State())
	}
	return Status{
		Connected:   sc.anyConnected(),
		Feeds:       feeds,
		CacheSize:   sc.Cache.Size(),
		Subscribers: sc.Hub.SubscriberCount(),
		Delivered:   sc.Hub.Delivered(),
		Dropped:     sc.Hub.Dropped(),
	}
}

// Close releases resources in reverse initialization order.
func (sc *ServiceContext) Close() error {
	for i := len(sc.closerChain) - 1; i >= 0; i-- {
		if err := sc.closerChain[i](); err != nil {
			log.Error().Err(err).Msg("error closing resource")
		}
	}
	return nil
}

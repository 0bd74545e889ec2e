package infoway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/port"
	"github.com/suimfx/suimfx-official/internal/domain"
)

// ErrMissingAPIKey means the partition can never connect. The rest of the
// subsystem keeps running in a degraded state.
var ErrMissingAPIKey = errors.New("infoway api key missing")

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusShuttingDown Status = "shutting_down"
)

// ConnState is a snapshot of one partition's connection lifecycle.
type ConnState struct {
	Business          string `json:"business"`
	Status            Status `json:"status"`
	ReconnectAttempts int    `json:"reconnectAttempts"`
	LastError         string `json:"lastError,omitempty"`
}

// BackoffPolicy is the reconnect schedule: delay grows by Multiplier per
// attempt from Initial up to Max, with up to 1s of jitter on top.
type BackoffPolicy struct {
	Initial    time.Duration
	Multiplier float64
	Max        time.Duration
}

// reconnectDelay is the jitter-free part of the schedule, kept pure so the
// policy is testable without timers.
func reconnectDelay(p BackoffPolicy, attempts int) time.Duration {
	d := float64(p.Initial) * math.Pow(p.Multiplier, float64(attempts))
	if d > float64(p.Max) {
		return p.Max
	}
	return time.Duration(d)
}

const (
	dialTimeout   = 10 * time.Second
	readDeadline  = 60 * time.Second
	writeTimeout  = 5 * time.Second
	tradeSubDelay = 2 * time.Second // spaced after the depth sub to respect the rate limit
	maxJitter     = time.Second
)

type ConnConfig struct {
	Business  string // BusinessCommon or BusinessCrypto
	WsURL     string
	APIKey    string
	Codes     []string // vendor symbols assigned to this partition, already capped
	Heartbeat time.Duration
	Backoff   BackoffPolicy
}

// Conn owns one multiplexed websocket to the vendor: dialing, subscribing,
// heartbeats, and reconnecting with backoff, forever, until ctx is
// cancelled. Accepted ticks go cache -> broadcaster -> recorder; nothing in
// here ever blocks on a subscriber.
type Conn struct {
	cfg      ConnConfig
	norm     *Normalizer
	cache    *domain.PriceCache
	hub      port.Broadcaster
	recorder port.Recorder
	jitter   func() time.Duration

	running atomic.Bool

	mu       sync.Mutex
	status   Status
	attempts int
	lastErr  string
}

func NewConn(cfg ConnConfig, norm *Normalizer, cache *domain.PriceCache, hub port.Broadcaster, recorder port.Recorder) *Conn {
	return &Conn{
		cfg:      cfg,
		norm:     norm,
		cache:    cache,
		hub:      hub,
		recorder: recorder,
		jitter:   func() time.Duration { return time.Duration(rand.Int63n(int64(maxJitter))) },
		status:   StatusDisconnected,
	}
}

func (c *Conn) Name() string { return "infoway:" + c.cfg.Business }

func (c *Conn) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConnState{
		Business:          c.cfg.Business,
		Status:            c.status,
		ReconnectAttempts: c.attempts,
		LastError:         c.lastErr,
	}
}

func (c *Conn) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Conn) noteError(err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
}

// Run drives the partition until ctx is cancelled: connect, subscribe,
// pump messages, reconnect on failure. The single loop goroutine owns the
// whole lifecycle, so no second connection or reconnect timer can ever be
// pending for the same partition.
func (c *Conn) Run(ctx context.Context) error {
	if c.cfg.APIKey == "" {
		log.Error().Str("feed", c.Name()).Msg("cannot connect: missing api key")
		return ErrMissingAPIKey
	}
	if !c.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%s already running", c.Name())
	}
	defer c.running.Store(false)
	defer c.setStatus(StatusShuttingDown)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.setStatus(StatusConnecting)
		log.Info().Str("feed", c.Name()).Int("symbols", len(c.cfg.Codes)).Msg("ws connecting")

		cctx, cancel := context.WithTimeout(ctx, dialTimeout)
		conn, _, err := websocket.DefaultDialer.DialContext(cctx, c.wsURL(), nil)
		cancel()
		if err != nil {
			c.noteError(err)
			log.Error().Str("feed", c.Name()).Err(err).Msg("ws dial failed")
			if !c.waitBackoff(ctx) {
				return ctx.Err()
			}
			continue
		}

		c.mu.Lock()
		c.status = StatusConnected
		c.attempts = 0
		c.mu.Unlock()
		log.Info().Str("feed", c.Name()).Msg("ws connected")

		err = c.session(ctx, conn)
		_ = conn.Close()
		c.setStatus(StatusDisconnected)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.noteError(err)
		log.Warn().Str("feed", c.Name()).Err(err).Msg("ws disconnected, reconnecting")
		if !c.waitBackoff(ctx) {
			return ctx.Err()
		}
	}
}

func (c *Conn) wsURL() string {
	return fmt.Sprintf("%s?business=%s&apikey=%s", c.cfg.WsURL, c.cfg.Business, url.QueryEscape(c.cfg.APIKey))
}

// waitBackoff sleeps for the next reconnect delay. Returns false if ctx was
// cancelled while waiting.
func (c *Conn) waitBackoff(ctx context.Context) bool {
	c.mu.Lock()
	c.attempts++
	attempts := c.attempts
	c.mu.Unlock()

	delay := reconnectDelay(c.cfg.Backoff, attempts) + c.jitter()
	log.Info().Str("feed", c.Name()).Int("attempt", attempts).Dur("delay", delay).Msg("reconnect scheduled")

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// session runs one connected websocket: depth subscription immediately,
// trade subscription shortly after, heartbeats on the vendor interval, and
// the read pump. All frame writes happen on this goroutine.
func (c *Conn) session(ctx context.Context, conn *websocket.Conn) error {
	if err := c.writeFrame(conn, codeSubscribeDepth, &subscribeData{Codes: joinCodes(c.cfg.Codes)}); err != nil {
		return fmt.Errorf("depth subscribe: %w", err)
	}
	log.Info().Str("feed", c.Name()).Int("symbols", len(c.cfg.Codes)).Msg("depth subscription sent")

	heartbeat := time.NewTicker(c.cfg.Heartbeat)
	defer heartbeat.Stop()
	tradeSub := time.NewTimer(tradeSubDelay)
	defer tradeSub.Stop()

	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))

	msgCh := make(chan []byte, 256)
	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
			select {
			case msgCh <- b:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-tradeSub.C:
			if err := c.writeFrame(conn, codeSubscribeTrade, &subscribeData{Codes: joinCodes(c.cfg.Codes)}); err != nil {
				return fmt.Errorf("trade subscribe: %w", err)
			}
			log.Info().Str("feed", c.Name()).Msg("trade subscription sent")
		case <-heartbeat.C:
			if err := c.writeFrame(conn, codeHeartbeat, nil); err != nil {
				return fmt.Errorf("heartbeat: %w", err)
			}
		case b := <-msgCh:
			c.handleMessage(ctx, b)
		}
	}
}

func (c *Conn) writeFrame(conn *websocket.Conn, code int, data any) error {
	frame := struct {
		Code  int    `json:"code"`
		Trace string `json:"trace"`
		Data  any    `json:"data,omitempty"`
	}{Code: code, Trace: uuid.NewString(), Data: data}

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(&frame)
}

func (c *Conn) handleMessage(ctx context.Context, b []byte) {
	// The vendor sends a plain-text welcome line before any JSON framing.
	if len(b) == 0 || b[0] != '{' {
		return
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		log.Debug().Str("feed", c.Name()).Err(err).Msg("message parse error")
		return
	}

	switch env.Code {
	case codeDepthPush, codeTradePush:
		q, ok := c.norm.Normalize(env.Code, env.Data)
		if !ok {
			return
		}
		c.cache.Upsert(q)
		c.hub.BroadcastTick(q)
		if c.recorder != nil {
			if err := c.recorder.UpsertQuote(ctx, q); err != nil {
				log.Debug().Str("feed", c.Name()).Err(err).Msg("recorder upsert failed")
			}
		}

	case codeDepthResponse, codeTradeResponse:
		if env.Msg == "ok" {
			log.Debug().Str("feed", c.Name()).Int("code", env.Code).Msg("subscription confirmed")
		} else {
			log.Warn().Str("feed", c.Name()).Int("code", env.Code).Str("msg", env.Msg).Msg("subscription response")
		}

	case codeHeartbeatResponse:
		// connection healthy

	default:
		log.Debug().Str("feed", c.Name()).Int("code", env.Code).Msg("unknown message code")
	}
}

func joinCodes(codes []string) string {
	return strings.Join(codes, ",")
}

package infoway

import (
	"encoding/json"
	"time"

	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/symbols"
)

// Normalizer turns raw Infoway push payloads into canonical quotes. It is
// pure transformation logic: malformed payloads and unknown symbols are
// rejected with ok=false, never an error that could unwind a read loop.
type Normalizer struct {
	registry *symbols.Registry
}

func NewNormalizer(registry *symbols.Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

// Normalize dispatches on the push code. Non-push codes return ok=false.
func (n *Normalizer) Normalize(code int, data json.RawMessage) (domain.Quote, bool) {
	switch code {
	case codeDepthPush:
		return n.normalizeDepth(data)
	case codeTradePush:
		return n.normalizeTrade(data)
	}
	return domain.Quote{}, false
}

func (n *Normalizer) normalizeDepth(data json.RawMessage) (domain.Quote, bool) {
	var push depthPush
	if err := json.Unmarshal(data, &push); err != nil {
		return domain.Quote{}, false
	}

	bestAsk, askVol := levelPrice(push.Asks)
	bestBid, bidVol := levelPrice(push.Bids)
	if bestAsk <= 0 || bestBid <= 0 || bestAsk < bestBid {
		return domain.Quote{}, false
	}

	// Symbols the vendor pushes but we do not track are expected; drop
	// silently rather than logging every unsolicited instrument.
	canonical, ok := n.registry.ToCanonicalSymbol(push.Symbol, symbols.VendorInfoway)
	if !ok {
		return domain.Quote{}, false
	}

	ts := push.Ts
	if ts <= 0 {
		ts = time.Now().UnixMilli()
	}

	return domain.Quote{
		Symbol:    canonical,
		Bid:       bestBid,
		Ask:       bestAsk,
		Mid:       (bestBid + bestAsk) / 2,
		Spread:    bestAsk - bestBid,
		BidVolume: bidVol,
		AskVolume: askVol,
		Ts:        ts,
		Source:    domain.SourceDepth,
	}, true
}

func (n *Normalizer) normalizeTrade(data json.RawMessage) (domain.Quote, bool) {
	var push tradePush
	if err := json.Unmarshal(data, &push); err != nil {
		return domain.Quote{}, false
	}

	price := asFloat(push.Price)
	if price <= 0 {
		return domain.Quote{}, false
	}

	canonical, ok := n.registry.ToCanonicalSymbol(push.Symbol, symbols.VendorInfoway)
	if !ok {
		return domain.Quote{}, false
	}

	ts := push.Ts
	if ts <= 0 {
		ts = time.Now().UnixMilli()
	}

	// Bid/ask synthesized from the trade price. The cache keeps depth
	// bid/ask when it already has them and only takes the last-trade fields.
	return domain.Quote{
		Symbol:        canonical,
		Bid:           price,
		Ask:           price,
		Mid:           price,
		Spread:        0,
		LastPrice:     price,
		LastVolume:    asFloat(push.Volume),
		LastDirection: push.Direction,
		Ts:            ts,
		Source:        domain.SourceTrade,
	}, true
}

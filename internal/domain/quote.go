package domain

// Source tells where a quote's bid/ask came from. Depth quotes carry a
// real top-of-book spread; trade quotes only know the last executed price.
type Source string

const (
	SourceDepth Source = "depth"
	SourceTrade Source = "trade"
)

// Trade direction codes as sent by the upstream feed.
const (
	DirectionBuy  = 1
	DirectionSell = 2
)

// AssetClass is the coarse instrument category used for feed partitioning.
type AssetClass string

const (
	AssetForex  AssetClass = "Forex"
	AssetMetals AssetClass = "Metals"
	AssetEnergy AssetClass = "Energy"
	AssetCrypto AssetClass = "Crypto"
	AssetStocks AssetClass = "Stocks"
	AssetOther  AssetClass = "Other"
)

// Quote is the normalized price record for one canonical symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Bid           float64 `json:"bid"`
	Ask           float64 `json:"ask"`
	Mid           float64 `json:"mid"`
	Spread        float64 `json:"spread"`
	BidVolume     float64 `json:"bidVolume,omitempty"`
	AskVolume     float64 `json:"askVolume,omitempty"`
	LastPrice     float64 `json:"lastPrice,omitempty"`
	LastVolume    float64 `json:"lastVolume,omitempty"`
	LastDirection int     `json:"lastDirection,omitempty"`
	Ts            int64   `json:"timestamp"` // unix ms, upstream or arrival time
	Source        Source  `json:"source"`
}

// Valid reports whether the quote may enter the cache.
// Invalid quotes are dropped, never stored.
func (q Quote) Valid() bool {
	return q.Symbol != "" && q.Bid > 0 && q.Ask > 0 && q.Ask >= q.Bid
}

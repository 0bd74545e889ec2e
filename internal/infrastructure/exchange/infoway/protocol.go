package infoway

import (
	"encoding/json"
	"strconv"
)

// Protocol codes per the Infoway documentation.
const (
	codeSubscribeTrade    = 10000
	codeTradeResponse     = 10001
	codeTradePush         = 10002
	codeSubscribeDepth    = 10003
	codeDepthResponse     = 10004
	codeDepthPush         = 10005
	codeSubscribeKline    = 10006
	codeKlineResponse     = 10007
	codeKlinePush         = 10008
	codeHeartbeat         = 10010
	codeHeartbeatResponse = 10011
)

// Business types carried in the connection URL. One websocket per partition.
const (
	BusinessCommon = "common" // forex + metals + energy
	BusinessCrypto = "crypto"
	BusinessStock  = "stock"
)

type envelope struct {
	Code  int             `json:"code"`
	Trace string          `json:"trace"`
	Msg   string          `json:"msg,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type subscribeData struct {
	Codes string `json:"codes"` // comma-joined vendor symbols
}

// depthPush carries the top of book: a = ask levels, b = bid levels, both
// sorted best-first as [[price, volume], ...]. Prices arrive as strings or
// numbers depending on the instrument.
type depthPush struct {
	Symbol string  `json:"s"`
	Asks   [][]any `json:"a"`
	Bids   [][]any `json:"b"`
	Ts     int64   `json:"t"`
}

// tradePush carries the last executed trade. td: 1 = buy, 2 = sell.
type tradePush struct {
	Symbol    string `json:"s"`
	Price     any    `json:"p"`
	Volume    any    `json:"v"`
	Ts        int64  `json:"t"`
	Direction int    `json:"td"`
}

// asFloat parses the mixed string/number values the feed uses for prices.
// Returns 0 for anything unparseable; callers validate positivity anyway.
func asFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func levelPrice(levels [][]any) (price, volume float64) {
	if len(levels) == 0 || len(levels[0]) == 0 {
		return 0, 0
	}
	price = asFloat(levels[0][0])
	if len(levels[0]) > 1 {
		volume = asFloat(levels[0][1])
	}
	return price, volume
}

package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suimfx/suimfx-official/internal/domain"
	"github.com/suimfx/suimfx-official/internal/infrastructure/svc"
)

// Instrument is the catalog entry served to trading clients.
type Instrument struct {
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Digits       int     `json:"digits"`
	ContractSize float64 `json:"contractSize"`
	MinVolume    float64 `json:"minVolume"`
	MaxVolume    float64 `json:"maxVolume"`
	VolumeStep   float64 `json:"volumeStep"`
	Popular      bool    `json:"popular"`
}

type Handler struct {
	sc *svc.ServiceContext
}

func NewHandler(sc *svc.ServiceContext) *Handler {
	return &Handler{sc: sc}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)

	prices := r.Group("/api/prices")
	prices.GET("/instruments", h.instruments)
	prices.GET("/status", h.status)
	prices.POST("/batch", h.batchPrices)
	prices.GET("/:symbol", h.price)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// instruments lists every symbol that currently has live price data.
func (h *Handler) instruments(c *gin.Context) {
	symbols := h.sc.Cache.Symbols()

	instruments := make([]Instrument, 0, len(symbols))
	for _, symbol := range symbols {
		class := h.sc.Registry.Categorize(symbol)
		instruments = append(instruments, Instrument{
			Symbol:       symbol,
			Name:         h.sc.Registry.Name(symbol),
			Category:     string(class),
			Digits:       digits(symbol, class),
			ContractSize: contractSize(class),
			MinVolume:    0.01,
			MaxVolume:    100,
			VolumeStep:   0.01,
			Popular:      isPopular(class, symbol),
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "instruments": instruments})
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.sc.Status())
}

func (h *Handler) price(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	q, err := h.sc.Facade.GetPrice(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Price not available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "price": gin.H{"bid": q.Bid, "ask": q.Ask}})
}

type batchRequest struct {
	Symbols []string `json:"symbols"`
}

func (h *Handler) batchPrices(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Symbols == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "symbols array required"})
		return
	}

	for i, s := range req.Symbols {
		req.Symbols[i] = strings.ToUpper(s)
	}

	quotes := h.sc.Facade.GetBatchPrices(c.Request.Context(), req.Symbols)
	prices := make(map[string]gin.H, len(quotes))
	for symbol, q := range quotes {
		prices[symbol] = gin.H{"bid": q.Bid, "ask": q.Ask}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prices": prices})
}

// digits is the quoting precision per instrument: JPY crosses quote in
// thousandths, gold in cents, everything else follows its class default.
func digits(symbol string, class domain.AssetClass) int {
	if strings.Contains(symbol, "JPY") {
		return 3
	}
	switch symbol {
	case "XAUUSD":
		return 2
	case "XAGUSD":
		return 3
	}
	switch class {
	case domain.AssetCrypto, domain.AssetStocks:
		return 2
	}
	return 5
}

func contractSize(class domain.AssetClass) float64 {
	switch class {
	case domain.AssetCrypto:
		return 1
	case domain.AssetMetals:
		return 100
	case domain.AssetEnergy:
		return 1000
	}
	return 100000
}

// popularInstruments drives the default watchlist per category.
var popularInstruments = map[domain.AssetClass][]string{
	domain.AssetForex:  {"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "AUDUSD", "NZDUSD", "USDCAD", "EURGBP", "EURJPY", "GBPJPY", "EURCHF", "EURAUD", "AUDCAD", "AUDJPY", "CADJPY"},
	domain.AssetMetals: {"XAUUSD", "XAGUSD", "XPTUSD", "XPDUSD", "XAUEUR", "XAUAUD", "XAUGBP", "XAUCHF", "XAUJPY", "XAGEUR"},
	domain.AssetEnergy: {"USOIL", "UKOIL", "NGAS", "BRENT", "WTI", "GASOLINE", "HEATING"},
	domain.AssetCrypto: {"BTCUSD", "ETHUSD", "BNBUSD", "SOLUSD", "XRPUSD", "ADAUSD", "DOGEUSD", "DOTUSD", "MATICUSD", "LTCUSD", "AVAXUSD", "LINKUSD", "SHIBUSD", "UNIUSD", "ATOMUSD"},
	domain.AssetStocks: {"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "JPM", "V", "JNJ", "WMT", "PG", "MA", "UNH", "HD"},
}

func isPopular(class domain.AssetClass, symbol string) bool {
	for _, s := range popularInstruments[class] {
		if s == symbol {
			return true
		}
	}
	return false
}

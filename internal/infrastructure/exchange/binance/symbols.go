package binance

// SymbolMap is the fixed canonical -> Binance spot spelling table. Crypto
// majors come from the Binance book ticker because it updates faster than
// the aggregated feed; unlisted crypto pairs stay on the aggregated feed.
var SymbolMap = map[string]string{
	"BTCUSD": "BTCUSDT", "ETHUSD": "ETHUSDT", "BNBUSD": "BNBUSDT", "SOLUSD": "SOLUSDT",
	"XRPUSD": "XRPUSDT", "ADAUSD": "ADAUSDT", "DOGEUSD": "DOGEUSDT", "TRXUSD": "TRXUSDT",
	"LINKUSD": "LINKUSDT", "MATICUSD": "MATICUSDT", "DOTUSD": "DOTUSDT",
	"SHIBUSD": "SHIBUSDT", "LTCUSD": "LTCUSDT", "BCHUSD": "BCHUSDT", "AVAXUSD": "AVAXUSDT",
	"XLMUSD": "XLMUSDT", "UNIUSD": "UNIUSDT", "ATOMUSD": "ATOMUSDT", "ETCUSD": "ETCUSDT",
	"FILUSD": "FILUSDT", "ICPUSD": "ICPUSDT", "VETUSD": "VETUSDT",
	"NEARUSD": "NEARUSDT", "GRTUSD": "GRTUSDT", "AAVEUSD": "AAVEUSDT", "MKRUSD": "MKRUSDT",
	"ALGOUSD": "ALGOUSDT", "FTMUSD": "FTMUSDT", "SANDUSD": "SANDUSDT", "MANAUSD": "MANAUSDT",
	"AXSUSD": "AXSUSDT", "THETAUSD": "THETAUSDT", "FLOWUSD": "FLOWUSDT",
	"SNXUSD": "SNXUSDT", "EOSUSD": "EOSUSDT", "CHZUSD": "CHZUSDT", "ENJUSD": "ENJUSDT",
	"ZILUSD": "ZILUSDT", "BATUSD": "BATUSDT", "CRVUSD": "CRVUSDT", "COMPUSD": "COMPUSDT",
	"PEPEUSD": "PEPEUSDT", "ARBUSD": "ARBUSDT", "OPUSD": "OPUSDT", "SUIUSD": "SUIUSDT",
	"APTUSD": "APTUSDT", "INJUSD": "INJUSDT", "TONUSD": "TONUSDT", "HBARUSD": "HBARUSDT",
}

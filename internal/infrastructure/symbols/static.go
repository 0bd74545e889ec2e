package symbols

// Compiled-in fallback lists, used per asset class when the upstream
// symbol-list call fails. Spellings are the vendor's (crypto with the USDT
// suffix, US stocks with the .US suffix).

var forexFallback = []string{
	"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "AUDUSD", "NZDUSD", "USDCAD",
	"EURGBP", "EURJPY", "GBPJPY", "EURCHF", "EURAUD", "EURCAD", "AUDCAD",
	"AUDJPY", "CADJPY", "CHFJPY", "NZDJPY", "AUDNZD", "CADCHF", "GBPCHF",
	"GBPNZD", "EURNZD", "NZDCAD", "NZDCHF", "AUDCHF", "GBPAUD", "GBPCAD",
	"USDSGD", "USDHKD", "USDZAR", "USDTRY", "USDMXN", "USDPLN", "USDSEK",
	"USDNOK", "USDDKK", "USDCNH", "EURPLN", "EURSEK", "EURNOK", "EURDKK",
	"GBPSEK", "GBPNOK", "CHFSEK", "SEKJPY", "NOKJPY", "SGDJPY", "ZARJPY",
}

var cryptoFallback = []string{
	"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT", "XRPUSDT", "ADAUSDT", "DOGEUSDT",
	"TRXUSDT", "LINKUSDT", "MATICUSDT", "DOTUSDT", "SHIBUSDT", "LTCUSDT", "BCHUSDT",
	"AVAXUSDT", "XLMUSDT", "UNIUSDT", "ATOMUSDT", "ETCUSDT", "FILUSDT", "ICPUSDT",
	"VETUSDT", "NEARUSDT", "GRTUSDT", "AAVEUSDT", "MKRUSDT", "ALGOUSDT", "FTMUSDT",
	"SANDUSDT", "MANAUSDT", "AXSUSDT", "THETAUSDT", "FLOWUSDT", "SNXUSDT", "EOSUSDT",
	"CHZUSDT", "ENJUSDT", "PEPEUSDT", "ARBUSDT", "OPUSDT", "SUIUSDT", "APTUSDT",
	"INJUSDT", "TONUSDT", "HBARUSDT", "NEOUSDT", "FETUSDT", "RNDRUSDT", "WLDUSDT",
	"SEIUSDT", "TIAUSDT", "BLURUSDT", "1INCHUSDT", "BONKUSDT", "FLOKIUSDT", "ORDIUSDT",
}

var stocksFallback = []string{
	"AAPL.US", "MSFT.US", "GOOGL.US", "AMZN.US", "NVDA.US", "META.US", "TSLA.US",
	"BRK-B.US", "JPM.US", "V.US", "JNJ.US", "WMT.US", "PG.US", "MA.US", "UNH.US",
	"HD.US", "DIS.US", "BAC.US", "ADBE.US", "CRM.US", "NFLX.US", "CSCO.US",
	"PFE.US", "TMO.US", "ABT.US", "COST.US", "PEP.US", "AVGO.US", "NKE.US",
	"MRK.US", "ABBV.US", "KO.US", "LLY.US", "CVX.US", "MCD.US", "WFC.US",
	"DHR.US", "ACN.US", "NEE.US", "TXN.US", "PM.US", "BMY.US", "UPS.US",
	"QCOM.US", "RTX.US", "HON.US", "INTC.US", "AMD.US", "PYPL.US", "SBUX.US",
}

var metalsFallback = []string{
	"XAUUSD", "XAGUSD", "XPTUSD", "XPDUSD", "XAUEUR", "XAUAUD", "XAUGBP",
	"XAUCHF", "XAUJPY", "XAGEUR", "XAGAUD", "XAGGBP",
}

var energyFallback = []string{
	"USOIL", "UKOIL", "NGAS", "BRENT", "WTI", "GASOLINE", "HEATING",
}

// builtinNames maps canonical symbols to display names when the upstream
// symbol list did not provide one.
var builtinNames = map[string]string{
	"EURUSD": "EUR/USD", "GBPUSD": "GBP/USD", "USDJPY": "USD/JPY", "USDCHF": "USD/CHF",
	"AUDUSD": "AUD/USD", "NZDUSD": "NZD/USD", "USDCAD": "USD/CAD", "EURGBP": "EUR/GBP",
	"EURJPY": "EUR/JPY", "GBPJPY": "GBP/JPY", "EURCHF": "EUR/CHF", "EURAUD": "EUR/AUD",
	"EURCAD": "EUR/CAD", "GBPAUD": "GBP/AUD", "GBPCAD": "GBP/CAD", "AUDCAD": "AUD/CAD",
	"AUDJPY": "AUD/JPY", "CADJPY": "CAD/JPY", "CHFJPY": "CHF/JPY", "NZDJPY": "NZD/JPY",
	"AUDNZD": "AUD/NZD", "CADCHF": "CAD/CHF", "GBPCHF": "GBP/CHF", "GBPNZD": "GBP/NZD",
	"EURNZD": "EUR/NZD", "NZDCAD": "NZD/CAD", "NZDCHF": "NZD/CHF", "AUDCHF": "AUD/CHF",
	"USDSGD": "USD/SGD", "USDZAR": "USD/ZAR", "USDTRY": "USD/TRY", "USDMXN": "USD/MXN",
	"USDPLN": "USD/PLN", "USDSEK": "USD/SEK", "USDNOK": "USD/NOK", "USDDKK": "USD/DKK",
	"USDCNH": "USD/CNH",

	"XAUUSD": "Gold", "XAGUSD": "Silver", "XPTUSD": "Platinum", "XPDUSD": "Palladium",

	"USOIL": "US Oil", "UKOIL": "UK Oil", "NGAS": "Natural Gas", "BRENT": "Brent Crude",
	"WTI": "WTI Crude", "GASOLINE": "Gasoline", "HEATING": "Heating Oil",

	"BTCUSD": "Bitcoin", "ETHUSD": "Ethereum", "BNBUSD": "BNB", "SOLUSD": "Solana",
	"XRPUSD": "XRP", "ADAUSD": "Cardano", "DOGEUSD": "Dogecoin", "TRXUSD": "TRON",
	"LINKUSD": "Chainlink", "MATICUSD": "Polygon", "DOTUSD": "Polkadot",
	"SHIBUSD": "Shiba Inu", "LTCUSD": "Litecoin", "BCHUSD": "Bitcoin Cash",
	"AVAXUSD": "Avalanche", "XLMUSD": "Stellar", "UNIUSD": "Uniswap", "ATOMUSD": "Cosmos",
	"ETCUSD": "Ethereum Classic", "FILUSD": "Filecoin", "ICPUSD": "Internet Computer",
	"VETUSD": "VeChain", "NEARUSD": "NEAR Protocol", "GRTUSD": "The Graph",
	"AAVEUSD": "Aave", "MKRUSD": "Maker", "ALGOUSD": "Algorand", "FTMUSD": "Fantom",
	"SANDUSD": "The Sandbox", "MANAUSD": "Decentraland", "AXSUSD": "Axie Infinity",
	"THETAUSD": "Theta Network", "FLOWUSD": "Flow", "SNXUSD": "Synthetix",
	"EOSUSD": "EOS", "CHZUSD": "Chiliz", "ENJUSD": "Enjin Coin", "PEPEUSD": "Pepe",
	"ARBUSD": "Arbitrum", "OPUSD": "Optimism", "SUIUSD": "Sui", "APTUSD": "Aptos",
	"INJUSD": "Injective", "TONUSD": "Toncoin", "HBARUSD": "Hedera",

	"AAPL": "Apple Inc", "MSFT": "Microsoft", "GOOGL": "Alphabet", "AMZN": "Amazon",
	"NVDA": "NVIDIA", "META": "Meta Platforms", "TSLA": "Tesla", "JPM": "JPMorgan Chase",
	"V": "Visa Inc", "JNJ": "Johnson & Johnson", "WMT": "Walmart", "PG": "Procter & Gamble",
	"MA": "Mastercard", "UNH": "UnitedHealth", "HD": "Home Depot", "DIS": "Walt Disney",
	"ADBE": "Adobe Inc", "NFLX": "Netflix", "INTC": "Intel", "AMD": "AMD",
}

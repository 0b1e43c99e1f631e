package universe

// Curated strategy lists. Order matters: downstream tie-breaks depend
// on these lists being stable across calls within one provider version.

// broadMarketSymbols is a large-cap cross-sector universe
var broadMarketSymbols = []string{
	// Technology
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "AVGO", "ORCL", "CRM", "ADBE",
	"AMD", "CSCO", "INTC", "IBM", "TXN", "QCOM", "AMAT", "NOW", "INTU", "MU",
	// Financials
	"BRK.B", "JPM", "V", "MA", "BAC", "WFC", "GS", "MS", "BLK", "AXP",
	// Healthcare
	"UNH", "JNJ", "LLY", "PFE", "ABBV", "MRK", "TMO", "ABT", "DHR", "BMY",
	// Consumer
	"WMT", "PG", "KO", "PEP", "COST", "MCD", "NKE", "SBUX", "HD", "LOW",
	// Industrials & Energy
	"CAT", "DE", "UNP", "HON", "UPS", "BA", "GE", "XOM", "CVX", "COP",
	// Communications
	"NFLX", "DIS", "CMCSA", "T", "VZ", "TMUS",
}

// growthSymbols leans into high revenue-growth names
var growthSymbols = []string{
	"NVDA", "TSLA", "AMD", "CRWD", "DDOG", "SNOW", "NET", "PANW", "SHOP", "MDB",
	"ABNB", "UBER", "PLTR", "COIN", "SQ", "MELI", "TTD", "ZS", "NOW", "SMCI",
	"META", "AMZN", "AVGO", "LLY", "ISRG", "VRTX", "REGN", "CDNS", "SNPS", "ANET",
}

// valueSymbols leans into low-multiple, established names
var valueSymbols = []string{
	"BRK.B", "JPM", "BAC", "WFC", "C", "CVX", "XOM", "COP", "VZ", "T",
	"PFE", "BMY", "CVS", "MRK", "GILD", "IBM", "INTC", "F", "GM", "DOW",
	"KO", "PEP", "PG", "MO", "KHC", "USB", "PNC", "TFC", "MET", "PRU",
}

// techSectorSymbols is the sector-focused universe
var techSectorSymbols = []string{
	"AAPL", "MSFT", "NVDA", "AVGO", "ORCL", "CRM", "ADBE", "AMD", "CSCO", "ACN",
	"INTC", "IBM", "TXN", "QCOM", "AMAT", "NOW", "INTU", "MU", "LRCX", "KLAC",
	"SNPS", "CDNS", "ANET", "PANW", "CRWD", "FTNT", "ADI", "MCHP", "NXPI", "ON",
}

// staticUniverses maps strategy names to curated lists
var staticUniverses = map[string][]string{
	"broad-market": broadMarketSymbols,
	"growth":       growthSymbols,
	"value":        valueSymbols,
	"tech-sector":  techSectorSymbols,
}

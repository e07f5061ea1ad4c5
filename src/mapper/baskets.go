package mapper

import "predictiontrader/src/analysis"

// Basket holds the instruments associated with one category+direction pairing.
type Basket struct {
	Bullish []string
	Bearish []string
}

// BasketTable maps category -> direction -> instrument baskets. It is loaded
// once at startup and immutable thereafter.
type BasketTable map[string]map[string]Basket

// DefaultBasketTable returns the static instrument mapping. Crypto and macro
// entries are retained for completeness even though the direction resolver
// currently yields unknown for those categories, which suppresses them.
func DefaultBasketTable() BasketTable {
	return BasketTable{
		analysis.CategoryElection: {
			analysis.DirectionRepublican: {
				Bullish: []string{"RTX", "LMT", "XLE", "XLF"}, // defense, energy, finance
				Bearish: []string{"XLK", "TSLA"},
			},
			analysis.DirectionDemocrat: {
				Bullish: []string{"XLK", "TSLA", "XLV", "PBW"}, // tech, healthcare, clean energy
				Bearish: []string{"XLE", "XME"},
			},
		},
		analysis.CategoryMonetaryPolicy: {
			analysis.DirectionRateCut: {
				Bullish: []string{"VNQ", "XLU", "TLT"}, // rate-sensitive assets
				Bearish: []string{"XLF"},
			},
			analysis.DirectionRateHike: {
				Bullish: []string{"XLF", "DXY"},
				Bearish: []string{"VNQ", "XLU", "TLT"},
			},
		},
		analysis.CategoryCrypto: {
			"adoption": {
				Bullish: []string{"MSTR", "COIN", "SQ", "TSLA"},
			},
			"regulation": {
				Bullish: []string{"JPM", "BAC"},
				Bearish: []string{"COIN", "MSTR"},
			},
		},
		analysis.CategoryMacro: {
			"recession": {
				Bullish: []string{"TLT", "GLD", "VXX"}, // safe havens
				Bearish: []string{"SPY", "QQQ", "IWM"},
			},
			"growth": {
				Bullish: []string{"QQQ", "XLK", "IWM"},
				Bearish: []string{"TLT", "GLD"},
			},
		},
	}
}

// companyKeywords maps stock symbols to company-name keywords used when no
// literal ticker appears in the text.
var companyKeywords = map[string][]string{
	"AAPL":  {"apple", "iphone"},
	"TSLA":  {"tesla", "elon", "musk"},
	"MSFT":  {"microsoft"},
	"GOOGL": {"google", "alphabet"},
	"AMZN":  {"amazon"},
	"META":  {"meta", "facebook"},
	"NVDA":  {"nvidia", "ai chip"},
	"RTX":   {"raytheon", "defense"},
	"LMT":   {"lockheed", "martin"},
	"JPM":   {"jpmorgan", "chase"},
	"BAC":   {"bank of america"},
}

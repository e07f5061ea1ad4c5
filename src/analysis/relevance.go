package analysis

import "strings"

// financeKeywords is the fixed vocabulary used to score textual relevance to
// tradeable financial themes. Matching is case-insensitive substring presence;
// each keyword counts at most once.
var financeKeywords = []string{
	"stock", "market", "nasdaq", "sp500", "s&p", "dow", "fed", "interest rate",
	"inflation", "recession", "gdp", "earnings", "tesla", "apple", "microsoft",
	"nvidia", "bitcoin", "crypto", "oil", "gold", "treasury", "bond",
	"unemployment", "economy", "financial", "bank", "dollar", "euro",
}

// relevanceBoost compensates for the low hit-rate of natural-language text
// against a keyword list.
const relevanceBoost = 3.0

// RelevanceThreshold is the actionability cutoff. Signals scoring below it
// never reach the downstream stages.
const RelevanceThreshold = 0.1

// Relevance scores the relevance of a market's title and description to
// financial themes. The result is in [0,1]: distinct keyword hits, normalized
// by vocabulary size, boosted, then clamped.
func Relevance(title, description string) float64 {
	text := strings.ToLower(title + " " + description)

	hits := 0
	for _, kw := range financeKeywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}

	score := float64(hits) / float64(len(financeKeywords)) * relevanceBoost
	if score > 1.0 {
		score = 1.0
	}
	return score
}

package analysis

import "strings"

// Signal categories. A closed set; Classify never returns anything else.
const (
	CategoryElection       = "election"
	CategoryMonetaryPolicy = "monetary_policy"
	CategoryEarnings       = "earnings"
	CategoryCrypto         = "crypto"
	CategoryMacro          = "macro"
	CategoryOther          = "other"
)

type keywordGroup struct {
	category string
	keywords []string
}

// categoryGroups is tested in order; the first group with any matching
// substring wins. The order is part of the contract: text mentioning both
// "earnings" and "fed" is monetary policy because that group is checked first.
var categoryGroups = []keywordGroup{
	{CategoryElection, []string{"election", "republican", "democrat", "president", "congress"}},
	{CategoryMonetaryPolicy, []string{"fed", "federal reserve", "interest rate", "rate cut", "rate hike"}},
	{CategoryEarnings, []string{"earnings", "revenue", "profit", "beat", "miss"}},
	{CategoryCrypto, []string{"crypto", "bitcoin", "ethereum", "blockchain"}},
	{CategoryMacro, []string{"recession", "gdp", "unemployment", "inflation"}},
}

// Classify buckets a signal's text into a coarse topic category.
func Classify(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, group := range categoryGroups {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.category
			}
		}
	}
	return CategoryOther
}

package analysis

import "strings"

// Direction labels are scoped to their category's vocabulary; they are not
// comparable across categories. DirectionUnknown suppresses category-based
// trade generation.
const (
	DirectionRepublican = "republican"
	DirectionDemocrat   = "democrat"
	DirectionRateCut    = "rate_cut"
	DirectionRateHike   = "rate_hike"
	DirectionBeat       = "beat"
	DirectionMiss       = "miss"
	DirectionUnknown    = "unknown"
)

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ResolveDirection infers the directional implication of a signal's title
// within its category.
func ResolveDirection(category, title string) string {
	text := strings.ToLower(title)

	switch category {
	case CategoryElection:
		if containsAny(text, "republican", "trump", "gop") {
			return DirectionRepublican
		}
		if containsAny(text, "democrat", "biden", "harris") {
			return DirectionDemocrat
		}

	case CategoryMonetaryPolicy:
		if containsAny(text, "cut", "lower", "reduce") {
			return DirectionRateCut
		}
		if containsAny(text, "hike", "raise", "increase") {
			return DirectionRateHike
		}

	case CategoryEarnings:
		if containsAny(text, "beat", "exceed") {
			return DirectionBeat
		}
		if containsAny(text, "miss", "below") {
			return DirectionMiss
		}
	}

	return DirectionUnknown
}

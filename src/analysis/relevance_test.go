package analysis

import (
	"math"
	"testing"
)

func TestRelevanceZeroForUnrelatedText(t *testing.T) {
	got := Relevance("Will it rain in Paris tomorrow?", "Weather prediction for the city")
	if got != 0 {
		t.Fatalf("expected 0 relevance, got %f", got)
	}
	if got >= RelevanceThreshold {
		t.Fatalf("unrelated text must stay below the actionability threshold")
	}
}

func TestRelevanceCountsDistinctKeywords(t *testing.T) {
	// "stock" and "market" hit; each keyword counts once regardless of repeats.
	got := Relevance("Stock market stock market", "")
	want := 2.0 / float64(len(financeKeywords)) * relevanceBoost

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got < RelevanceThreshold {
		t.Fatalf("two keyword hits should clear the threshold, got %f", got)
	}
}

func TestRelevanceCapsAtOne(t *testing.T) {
	title := "Stock market nasdaq fed inflation recession gdp earnings"
	description := "tesla apple bitcoin gold treasury bond unemployment economy"

	got := Relevance(title, description)
	if got != 1.0 {
		t.Fatalf("expected relevance capped at 1.0, got %f", got)
	}
}

func TestRelevanceCaseInsensitive(t *testing.T) {
	lower := Relevance("bitcoin price above 100k", "")
	upper := Relevance("BITCOIN PRICE ABOVE 100K", "")
	if lower != upper {
		t.Fatalf("case must not matter: %f vs %f", lower, upper)
	}
	if lower == 0 {
		t.Fatalf("expected a keyword hit")
	}
}

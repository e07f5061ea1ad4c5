package mapper

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/analysis"
	"predictiontrader/src/model"
)

const (
	maxBasketCandidates = 3

	// Quantity placeholders scale with strength; they are provisional and get
	// risk-bounded by the position sizer before any order is placed.
	leveragedCallMultiplier = 10
	leveragedPutMultiplier  = 5
	equityBuyMultiplier     = 100
	basketMultiplier        = 50

	leveragedStrengthCutoff = 0.7
	leveragedExpiryGrace    = 7 * 24 * time.Hour
	defaultDurationDays     = 30
)

// Candidate is an unconfirmed trade derived from one signal. Quantity is a
// provisional placeholder until the position sizer bounds it.
type Candidate struct {
	Symbol     string
	Side       string
	OrderKind  string
	Quantity   int64
	Confidence float64
	Duration   int // expected holding duration in days
	Reasoning  string
}

// Mapper converts classified, scored signals into candidate trades. It never
// consults price or account state.
type Mapper struct {
	baskets BasketTable
}

func NewMapper() *Mapper {
	return &Mapper{baskets: DefaultBasketTable()}
}

// NewMapperWithTable allows injecting a custom basket table, mostly for tests.
func NewMapperWithTable(table BasketTable) *Mapper {
	return &Mapper{baskets: table}
}

// tickerPattern matches literal all-caps tokens of common ticker shape.
var tickerPattern = regexp.MustCompile(`\b([A-Z]{1,5})\b`)

// ExtractSymbol pulls a stock symbol out of free text: a literal all-caps
// token first, then a company-name lookup. This is a best-effort classifier
// with a known false-positive rate (all-caps words match), not a correctness
// critical lookup; bad extractions are bounded away by the earnings-only gate
// and the position sizer.
func ExtractSymbol(title, description string) string {
	raw := title + " " + description
	if m := tickerPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}

	text := strings.ToLower(raw)

	symbols := make([]string, 0, len(companyKeywords))
	for sym := range companyKeywords {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols) // deterministic when several companies match

	for _, sym := range symbols {
		for _, kw := range companyKeywords[sym] {
			if strings.Contains(text, kw) {
				return sym
			}
		}
	}
	return ""
}

// Map produces zero or more candidates for a signal given its category,
// direction and strength. Weak signals, unknown directions and unmapped
// categories yield no candidates; that is a policy outcome, not an error.
func (m *Mapper) Map(signal model.PredictionSignal, category, direction string, strength float64) []Candidate {
	if strength < analysis.StrengthThreshold {
		logger.WithFields(map[string]interface{}{
			"signal_id": signal.ID,
			"strength":  strength,
		}).Debug("Signal below strength threshold, no candidates")
		return nil
	}

	// Direct-instrument path: a concrete symbol plus an earnings signal.
	symbol := ExtractSymbol(signal.Title, signal.Description)
	if symbol != "" && category == analysis.CategoryEarnings {
		return m.earningsCandidates(symbol, signal, direction, strength)
	}

	return m.basketCandidates(signal, category, direction, strength)
}

func (m *Mapper) earningsCandidates(symbol string, signal model.PredictionSignal, direction string, strength float64) []Candidate {
	var out []Candidate

	switch {
	case direction == analysis.DirectionBeat && signal.ProbChange24h > 0:
		reasoning := fmt.Sprintf("Beat probability increased by %.1f%%", signal.ProbChange24h)
		if strength > leveragedStrengthCutoff {
			out = append(out, Candidate{
				Symbol:     symbol,
				Side:       model.SideBuy,
				OrderKind:  model.OrderKindLeveragedDirectional,
				Quantity:   int64(strength * leveragedCallMultiplier),
				Confidence: strength,
				Duration:   durationUntil(signal.EndDate.Add(leveragedExpiryGrace)),
				Reasoning:  reasoning,
			})
		} else {
			out = append(out, Candidate{
				Symbol:     symbol,
				Side:       model.SideBuy,
				OrderKind:  model.OrderKindEquity,
				Quantity:   int64(strength * equityBuyMultiplier),
				Confidence: strength,
				Duration:   defaultDurationDays,
				Reasoning:  reasoning,
			})
		}

	case direction == analysis.DirectionMiss && signal.ProbChange24h > 0:
		out = append(out, Candidate{
			Symbol:     symbol,
			Side:       model.SideSell,
			OrderKind:  model.OrderKindLeveragedDirectional,
			Quantity:   int64(strength * leveragedPutMultiplier),
			Confidence: strength,
			Duration:   durationUntil(signal.EndDate.Add(leveragedExpiryGrace)),
			Reasoning:  fmt.Sprintf("Miss probability increased by %.1f%%", signal.ProbChange24h),
		})
	}

	return out
}

func (m *Mapper) basketCandidates(signal model.PredictionSignal, category, direction string, strength float64) []Candidate {
	directions, ok := m.baskets[category]
	if !ok {
		return nil
	}
	basket, ok := directions[direction]
	if !ok {
		return nil
	}

	symbols := basket.Bullish
	side := model.SideBuy
	if signal.ProbChange24h < 0 {
		symbols = basket.Bearish
		side = model.SideSell
	}

	if len(symbols) > maxBasketCandidates {
		symbols = symbols[:maxBasketCandidates]
	}

	out := make([]Candidate, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, Candidate{
			Symbol:     sym,
			Side:       side,
			OrderKind:  model.OrderKindEquity,
			Quantity:   int64(strength * basketMultiplier),
			Confidence: strength,
			Duration:   defaultDurationDays,
			Reasoning:  fmt.Sprintf("%s prediction: %s", category, signal.Title),
		})
	}
	return out
}

func durationUntil(end time.Time) int {
	days := int(time.Until(end).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

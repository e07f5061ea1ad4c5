package analysis

import (
	"time"

	"predictiontrader/src/model"
)

// StrengthThreshold suppresses trade generation for weak signals.
const StrengthThreshold = 0.3

// Factor caps and weights for the conviction score. Weights sum to 1.0 so the
// weighted sum is bounded by construction.
const (
	volumeCap    = 1_000_000.0 // 24h volume above $1M saturates
	liquidityCap = 100_000.0   // liquidity above $100k saturates
	urgencyDays  = 30.0        // resolutions further out carry no urgency

	weightProbability = 0.40
	weightVolume      = 0.25
	weightLiquidity   = 0.15
	weightUrgency     = 0.20
)

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// SignalStrength combines probability movement, volume, liquidity and time to
// resolution into a single conviction score in [0,1].
func SignalStrength(signal model.PredictionSignal, now time.Time) float64 {
	probChange := signal.ProbChange24h
	if probChange < 0 {
		probChange = -probChange
	}
	probScore := capAt(probChange/100, 1)
	volumeScore := capAt(signal.Volume24h/volumeCap, 1)
	liquidityScore := capAt(signal.Liquidity/liquidityCap, 1)

	// Urgency rises linearly as resolution approaches; zero when it is 30 or
	// more days out, never negative once resolution has passed.
	daysToEnd := signal.EndDate.Sub(now).Hours() / 24
	urgencyScore := (urgencyDays - daysToEnd) / urgencyDays
	if urgencyScore < 0 {
		urgencyScore = 0
	}
	if urgencyScore > 1 {
		urgencyScore = 1
	}

	strength := probScore*weightProbability +
		volumeScore*weightVolume +
		liquidityScore*weightLiquidity +
		urgencyScore*weightUrgency

	return capAt(strength, 1)
}

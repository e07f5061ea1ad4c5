package performance

import (
	"predictiontrader/src/model"
)

// Result is a purely derived valuation of a trade at a given price; persisting
// it is the caller's responsibility.
type Result struct {
	CurrentPrice   float64
	UnrealizedPnL  float64
	PerformancePct float64 // fraction, e.g. 0.10 for +10%
	Recommendation string
}

// Recommendation tier boundaries, evaluated on the performance fraction;
// first match wins.
const (
	takeProfitsPct = 0.10
	holdPartialPct = 0.05
	neutralPct     = -0.05
	smallLossPct   = -0.10
)

// Evaluate computes unrealized P&L for a trade with a known executed price.
// Sell-side trades mirror the sign: profit when price falls.
func Evaluate(trade model.ExecutedTrade, currentPrice float64) Result {
	executed := 0.0
	if trade.ExecutedPrice != nil {
		executed = *trade.ExecutedPrice
	}

	var pnl, pct float64
	if executed != 0 {
		if trade.Side == model.SideSell {
			pnl = (executed - currentPrice) * float64(trade.Quantity)
			pct = (executed - currentPrice) / executed
		} else {
			pnl = (currentPrice - executed) * float64(trade.Quantity)
			pct = (currentPrice - executed) / executed
		}
	}

	return Result{
		CurrentPrice:   currentPrice,
		UnrealizedPnL:  pnl,
		PerformancePct: pct,
		Recommendation: Recommend(pct),
	}
}

// Recommend maps a performance fraction onto the tiered recommendation text.
func Recommend(pct float64) string {
	switch {
	case pct > takeProfitsPct:
		return "Strong performance! Consider taking profits."
	case pct > holdPartialPct:
		return "Good performance. Hold or take partial profits."
	case pct > neutralPct:
		return "Neutral performance. Monitor closely."
	case pct > smallLossPct:
		return "Small loss. Consider stop-loss or averaging down."
	default:
		return "Significant loss! Review and consider exiting."
	}
}

package risk

import (
	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"
)

// SizerConfig bounds a single trade's dollar exposure.
type SizerConfig struct {
	// MaxPositionPct is the maximum percentage of account equity a single
	// trade may risk.
	MaxPositionPct decimal.Decimal
}

// DefaultSizerConfig applies the 2% per-trade rule.
func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		MaxPositionPct: decimal.NewFromFloat(2.0),
	}
}

// CalculatePositionSize converts a candidate's provisional quantity into a
// final order quantity under the per-trade risk cap:
//
//	maxDollars = equity * maxPct / 100
//	adjusted   = maxDollars * confidence
//	shares     = floor(adjusted / referencePrice)
//	final      = min(shares, provisionalQty)
//
// A zero result means the position is too small to take, which is a policy
// outcome rather than an error.
func CalculatePositionSize(
	equity decimal.Decimal,
	referencePrice decimal.Decimal,
	confidence float64,
	provisionalQty int64,
	cfg SizerConfig,
) int64 {
	if referencePrice.LessThanOrEqual(decimal.Zero) || provisionalQty <= 0 {
		return 0
	}

	maxDollars := equity.Mul(cfg.MaxPositionPct).Div(decimal.NewFromInt(100))
	adjusted := maxDollars.Mul(decimal.NewFromFloat(confidence))
	shares := adjusted.Div(referencePrice).Floor().IntPart()

	if shares > provisionalQty {
		shares = provisionalQty
	}
	if shares < 0 {
		shares = 0
	}

	logger.WithFields(map[string]interface{}{
		"equity":          equity.String(),
		"reference_price": referencePrice.String(),
		"confidence":      confidence,
		"provisional_qty": provisionalQty,
		"final_qty":       shares,
	}).Debug("Computed position size")

	return shares
}

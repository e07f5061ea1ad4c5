package risk

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculatePositionSizeCapsDollarExposure(t *testing.T) {
	// $100k equity, 2% cap, full confidence: $2000 budget at $50/share = 40.
	got := CalculatePositionSize(
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(50),
		1.0,
		1000,
		DefaultSizerConfig(),
	)
	if got != 40 {
		t.Fatalf("expected 40 shares, got %d", got)
	}
}

func TestCalculatePositionSizeScalesWithConfidence(t *testing.T) {
	got := CalculatePositionSize(
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(50),
		0.5,
		1000,
		DefaultSizerConfig(),
	)
	if got != 20 {
		t.Fatalf("expected 20 shares at half confidence, got %d", got)
	}
}

func TestCalculatePositionSizeNeverExceedsProvisional(t *testing.T) {
	got := CalculatePositionSize(
		decimal.NewFromInt(10_000_000),
		decimal.NewFromInt(10),
		1.0,
		7,
		DefaultSizerConfig(),
	)
	if got != 7 {
		t.Fatalf("expected provisional quantity to bound the size, got %d", got)
	}
}

func TestCalculatePositionSizeFloorsFractions(t *testing.T) {
	// $2000 * 0.9 = $1800 budget at $700/share = 2.57 -> 2.
	got := CalculatePositionSize(
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(700),
		0.9,
		1000,
		DefaultSizerConfig(),
	)
	if got != 2 {
		t.Fatalf("expected fractional shares floored to 2, got %d", got)
	}
}

func TestCalculatePositionSizeZeroCases(t *testing.T) {
	cfg := DefaultSizerConfig()

	cases := []struct {
		name        string
		equity      decimal.Decimal
		price       decimal.Decimal
		confidence  float64
		provisional int64
	}{
		{"zero price", decimal.NewFromInt(100_000), decimal.Zero, 1.0, 100},
		{"negative price", decimal.NewFromInt(100_000), decimal.NewFromInt(-5), 1.0, 100},
		{"zero provisional", decimal.NewFromInt(100_000), decimal.NewFromInt(50), 1.0, 0},
		{"zero equity", decimal.Zero, decimal.NewFromInt(50), 1.0, 100},
		{"tiny budget", decimal.NewFromInt(100), decimal.NewFromInt(500), 1.0, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculatePositionSize(tc.equity, tc.price, tc.confidence, tc.provisional, cfg)
			if got != 0 {
				t.Fatalf("expected 0 shares, got %d", got)
			}
		})
	}
}

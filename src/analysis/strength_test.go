package analysis

import (
	"math"
	"testing"
	"time"

	"predictiontrader/src/model"
)

func TestSignalStrengthWeightedSum(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Volume and liquidity both saturate their caps; probability contributes
	// 0.15 and urgency (30-5)/30.
	signal := model.PredictionSignal{
		ProbChange24h: 15,
		Volume24h:     1_200_000,
		Liquidity:     400_000,
		EndDate:       now.Add(5 * 24 * time.Hour),
	}

	got := SignalStrength(signal, now)
	want := 0.15*weightProbability + 1.0*weightVolume + 1.0*weightLiquidity + (25.0/30.0)*weightUrgency

	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
	if got < StrengthThreshold {
		t.Fatalf("scenario should clear the strength threshold, got %f", got)
	}
}

func TestSignalStrengthUsesAbsoluteProbChange(t *testing.T) {
	now := time.Now().UTC()
	end := now.Add(10 * 24 * time.Hour)

	up := model.PredictionSignal{ProbChange24h: 20, EndDate: end}
	down := model.PredictionSignal{ProbChange24h: -20, EndDate: end}

	if SignalStrength(up, now) != SignalStrength(down, now) {
		t.Fatalf("direction of the probability move must not affect strength")
	}
}

func TestSignalStrengthDistantResolutionHasNoUrgency(t *testing.T) {
	now := time.Now().UTC()
	signal := model.PredictionSignal{
		EndDate: now.Add(90 * 24 * time.Hour),
	}

	if got := SignalStrength(signal, now); got != 0 {
		t.Fatalf("expected 0 strength with no movement and distant resolution, got %f", got)
	}
}

func TestSignalStrengthCapsAtOne(t *testing.T) {
	now := time.Now().UTC()
	signal := model.PredictionSignal{
		ProbChange24h: 250,
		Volume24h:     50_000_000,
		Liquidity:     5_000_000,
		EndDate:       now,
	}

	got := SignalStrength(signal, now)
	if got > 1.0 || math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected strength capped at 1.0, got %f", got)
	}
}

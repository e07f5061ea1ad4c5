package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PredictionSignal is a discovered prediction-market belief. Rows are keyed by
// the market's own identifier; re-discovery overwrites the row (latest
// observation wins) but keeps existing proposals pointing at it.
type PredictionSignal struct {
	ID          string `gorm:"primaryKey;size:100" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	CurrentProb   float64 `gorm:"column:current_prob" json:"current_prob"`       // 0-100
	ProbChange24h float64 `gorm:"column:prob_change_24h" json:"prob_change_24h"` // signed, percentage points
	Volume24h     float64 `gorm:"column:volume_24h" json:"volume_24h"`
	Liquidity     float64 `gorm:"column:liquidity" json:"liquidity"`

	EndDate        time.Time `gorm:"index" json:"end_date"`
	Category       string    `gorm:"size:50;index" json:"category"`
	RelevanceScore float64   `json:"relevance_score"`

	DiscoveredAt time.Time `gorm:"index" json:"discovered_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PredictionSignal) TableName() string {
	return "prediction_signals"
}

// MarketTime handles Polymarket end-date timestamps, which show up as
// "2025-11-06T00:00:00Z" or with fractional seconds depending on the endpoint.
type MarketTime struct {
	time.Time
}

func (t *MarketTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("MarketTime: invalid json string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	}

	var lastErr error
	for _, layout := range layouts {
		tt, e := time.Parse(layout, s)
		if e == nil {
			t.Time = tt
			return nil
		}
		lastErr = e
	}
	return fmt.Errorf("MarketTime: parse %q: %w", s, lastErr)
}

// Market is the raw Polymarket listing record. OutcomePrices arrives as a
// JSON-encoded string of decimal strings, e.g. "[\"0.65\", \"0.35\"]".
type Market struct {
	ID                string      `json:"id"`
	Question          string      `json:"question"`
	Description       string      `json:"description"`
	OutcomePrices     string      `json:"outcomePrices"`
	Outcomes          string      `json:"outcomes"`
	Volume24h         json.Number `json:"volume24hr"`
	Liquidity         json.Number `json:"liquidityNum"`
	OneDayPriceChange json.Number `json:"oneDayPriceChange"`
	EndDate           *MarketTime `json:"endDate"`
	Active            bool        `json:"active"`
	Closed            bool        `json:"closed"`
}

// YesProbability extracts the first outcome price as a 0-100 probability.
// Returns an error when the record is malformed so the caller can skip it.
func (m Market) YesProbability() (float64, error) {
	var prices []string
	if err := json.Unmarshal([]byte(m.OutcomePrices), &prices); err != nil {
		return 0, fmt.Errorf("outcomePrices %q: %w", m.OutcomePrices, err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("outcomePrices %q: empty", m.OutcomePrices)
	}
	p, err := strconv.ParseFloat(prices[0], 64)
	if err != nil {
		return 0, fmt.Errorf("outcomePrices %q: %w", m.OutcomePrices, err)
	}
	return p * 100, nil
}

// NewPredictionSignalFromMarket converts a raw listing record into the stored
// signal. Category and relevance are filled in by the analysis stage.
func NewPredictionSignalFromMarket(m Market) (PredictionSignal, error) {
	if m.ID == "" {
		return PredictionSignal{}, fmt.Errorf("market record has no id")
	}

	prob, err := m.YesProbability()
	if err != nil {
		return PredictionSignal{}, err
	}

	change, _ := m.OneDayPriceChange.Float64()
	volume, _ := m.Volume24h.Float64()
	liquidity, _ := m.Liquidity.Float64()

	var end time.Time
	if m.EndDate != nil {
		end = m.EndDate.UTC()
	}

	return PredictionSignal{
		ID:            m.ID,
		Title:         m.Question,
		Description:   m.Description,
		CurrentProb:   prob,
		ProbChange24h: change * 100, // outcome prices are 0-1, store percentage points
		Volume24h:     volume,
		Liquidity:     liquidity,
		EndDate:       end,
		DiscoveredAt:  time.Now().UTC(),
	}, nil
}

package model

import "time"

// PerformanceSnapshot is a point-in-time valuation of an executed trade. The
// store keeps a single latest row per trade (upsert on trade_id); semantics
// are latest-wins.
type PerformanceSnapshot struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	TradeID uint `gorm:"not null;uniqueIndex" json:"trade_id"`

	CurrentPrice   float64 `gorm:"not null" json:"current_price"`
	UnrealizedPnL  float64 `gorm:"column:unrealized_pnl;not null" json:"unrealized_pnl"`
	PerformancePct float64 `gorm:"not null" json:"performance_pct"`
	Recommendation string  `json:"recommendation"`

	ObservedAt time.Time `gorm:"not null;index" json:"observed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (PerformanceSnapshot) TableName() string {
	return "performance_snapshots"
}

package model

import "time"

const (
	TradeStatusActive = "active"
	TradeStatusClosed = "closed"
)

// ExecutedTrade is the result of approving a proposal: exactly one per
// approved proposal. ExecutedPrice stays nil until a fill is confirmed by the
// brokerage stream; performance snapshots are skipped until then.
type ExecutedTrade struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProposalID uint `gorm:"not null;uniqueIndex" json:"proposal_id"`

	OrderID string `gorm:"size:100;index" json:"order_id"` // brokerage order identifier
	Symbol  string `gorm:"size:20;not null" json:"symbol"`
	Side    string `gorm:"size:10;not null" json:"side"`

	Quantity      int64      `gorm:"not null" json:"quantity"`
	ExecutedPrice *float64   `json:"executed_price,omitempty"`
	ExecutedAt    time.Time  `json:"executed_at"`
	ExpectedEnd   *time.Time `json:"expected_end,omitempty"`

	Status    string    `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Proposal *TradeProposal `gorm:"foreignKey:ProposalID" json:"proposal,omitempty"`

	// Latest performance snapshot; nil until the first price refresh.
	Performance *PerformanceSnapshot `gorm:"foreignKey:TradeID" json:"performance,omitempty"`
}

func (ExecutedTrade) TableName() string {
	return "executed_trades"
}

package model

import "time"

const (
	ProposalStatusPending  = "pending"
	ProposalStatusApproved = "approved"
	ProposalStatusRejected = "rejected"
)

const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Order kinds. LeveragedDirectional encodes the call/put style candidates the
// mapper produces for high-conviction earnings signals. They are persisted for
// the audit trail but never submitted to the brokerage.
const (
	OrderKindEquity               = "equity"
	OrderKindLeveragedDirectional = "leveraged_directional"
)

// TradeProposal is a candidate action derived from exactly one signal. Created
// in pending; the only legal transitions are pending->approved and
// pending->rejected, performed by an external actor.
type TradeProposal struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	SignalID string `gorm:"size:100;not null;index" json:"signal_id"`

	Symbol    string `gorm:"size:20;not null" json:"symbol"`
	Side      string `gorm:"size:10;not null" json:"side"`
	OrderKind string `gorm:"size:30;not null;default:equity" json:"order_kind"`

	Quantity     int64   `gorm:"not null" json:"quantity"`
	Confidence   float64 `gorm:"not null" json:"confidence"` // clamped to [0,1] at creation
	DurationDays int     `gorm:"not null;default:30" json:"duration_days"`
	Reasoning    string  `json:"reasoning"`

	Status    string    `gorm:"size:20;not null;default:pending;index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Signal *PredictionSignal `gorm:"foreignKey:SignalID;constraint:OnDelete:CASCADE" json:"signal,omitempty"`
}

func (TradeProposal) TableName() string {
	return "trade_proposals"
}

// ClampConfidence bounds the confidence score into [0,1].
func (p *TradeProposal) ClampConfidence() {
	if p.Confidence < 0 {
		p.Confidence = 0
	}
	if p.Confidence > 1 {
		p.Confidence = 1
	}
}

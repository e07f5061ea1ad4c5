package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"predictiontrader/src/database"
	"predictiontrader/src/model"
)

// ProposalRepository handles read/write operations for trade proposals and
// their lifecycle transitions.
type ProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new repository instance using the main
// read/write database.
func NewProposalRepository() *ProposalRepository {
	return &ProposalRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *ProposalRepository) WithDB(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create inserts a new pending proposal. Confidence is clamped to [0,1] here;
// the given proposal is updated with the generated ID and timestamps.
func (r *ProposalRepository) Create(ctx context.Context, proposal *model.TradeProposal) error {
	proposal.ClampConfidence()
	proposal.Status = model.ProposalStatusPending

	logger.WithFields(map[string]interface{}{
		"repo":      "ProposalRepository",
		"op":        "Create",
		"signal_id": proposal.SignalID,
		"symbol":    proposal.Symbol,
		"side":      proposal.Side,
		"qty":       proposal.Quantity,
	}).Debug("Creating trade proposal")

	err := r.db.WithContext(ctx).Create(proposal).Error
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ProposalRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade proposal")
		return err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "ProposalRepository",
		"op":          "Create",
		"proposal_id": proposal.ID,
	}).Info("Trade proposal created")

	return nil
}

// FindByID fetches a single proposal with its source signal.
// Returns (nil, nil) if the proposal is not found.
func (r *ProposalRepository) FindByID(ctx context.Context, id uint) (*model.TradeProposal, error) {
	var proposal model.TradeProposal

	err := r.db.WithContext(ctx).
		Preload("Signal").
		First(&proposal, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo": "ProposalRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch proposal")
		return nil, err
	}

	return &proposal, nil
}

// FindPending returns all pending proposals joined with their source signal,
// most-recently-discovered signal first.
func (r *ProposalRepository) FindPending(ctx context.Context) ([]model.TradeProposal, error) {
	var proposals []model.TradeProposal

	err := r.db.WithContext(ctx).
		Preload("Signal").
		Joins("JOIN prediction_signals ON prediction_signals.id = trade_proposals.signal_id").
		Where("trade_proposals.status = ?", model.ProposalStatusPending).
		Order("prediction_signals.discovered_at DESC, trade_proposals.id DESC").
		Find(&proposals).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "ProposalRepository",
			"op":   "FindPending",
		}).WithError(err).Error("Failed to fetch pending proposals")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "ProposalRepository",
		"op":          "FindPending",
		"rows_return": len(proposals),
	}).Debug("Pending proposals fetched")

	return proposals, nil
}

// Reject transitions a pending proposal to rejected. Any other starting state
// yields ErrInvalidTransition and leaves the row untouched.
func (r *ProposalRepository) Reject(ctx context.Context, id uint) error {
	return r.transition(ctx, id, model.ProposalStatusRejected)
}

func (r *ProposalRepository) transition(ctx context.Context, id uint, newStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&model.TradeProposal{}).
		Where("id = ? AND status = ?", id, model.ProposalStatusPending).
		Update("status", newStatus)

	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":        "ProposalRepository",
			"op":          "transition",
			"proposal_id": id,
			"new_status":  newStatus,
		}).WithError(res.Error).Error("Failed to update proposal status")
		return res.Error
	}

	if res.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo":        "ProposalRepository",
			"op":          "transition",
			"proposal_id": id,
			"new_status":  newStatus,
		}).Warn("Proposal not pending, transition refused")
		return ErrInvalidTransition
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "ProposalRepository",
		"op":          "transition",
		"proposal_id": id,
		"new_status":  newStatus,
	}).Info("Proposal status updated")

	return nil
}

// ApproveAndExecute transitions a pending proposal to approved and records
// the resulting executed trade in one transaction. The trade's ProposalID is
// set from the proposal; both writes succeed or neither does.
func (r *ProposalRepository) ApproveAndExecute(
	ctx context.Context,
	proposalID uint,
	trade *model.ExecutedTrade,
) error {

	logger.WithFields(map[string]interface{}{
		"repo":        "ProposalRepository",
		"op":          "ApproveAndExecute",
		"proposal_id": proposalID,
		"order_id":    trade.OrderID,
	}).Info("Approving proposal and recording executed trade")

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.TradeProposal{}).
			Where("id = ? AND status = ?", proposalID, model.ProposalStatusPending).
			Update("status", model.ProposalStatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidTransition
		}

		trade.ProposalID = proposalID
		trade.Status = model.TradeStatusActive
		if trade.ExecutedAt.IsZero() {
			trade.ExecutedAt = time.Now().UTC()
		}

		if err := tx.Create(trade).Error; err != nil {
			logger.WithError(err).Error("Failed to create executed trade inside transaction")
			return err
		}

		return nil
	})
}

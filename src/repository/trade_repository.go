package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"predictiontrader/src/database"
	"predictiontrader/src/model"
)

// TradeRepository handles read/write operations for executed trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a new repository instance using the main
// read/write database.
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// FindByID fetches a single trade. Returns (nil, nil) if not found.
func (r *TradeRepository) FindByID(ctx context.Context, id uint) (*model.ExecutedTrade, error) {
	var trade model.ExecutedTrade

	err := r.db.WithContext(ctx).First(&trade, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch executed trade")
		return nil, err
	}

	return &trade, nil
}

// FindActive returns all active trades with proposal reasoning, signal title
// and the latest performance snapshot. An absent snapshot leaves Performance
// nil; that is expected for unfilled or freshly filled trades.
func (r *TradeRepository) FindActive(ctx context.Context) ([]model.ExecutedTrade, error) {
	var trades []model.ExecutedTrade

	err := r.db.WithContext(ctx).
		Preload("Proposal.Signal").
		Preload("Performance").
		Where("executed_trades.status = ?", model.TradeStatusActive).
		Order("executed_trades.executed_at DESC").
		Find(&trades).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "FindActive",
		}).WithError(err).Error("Failed to fetch active trades")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "TradeRepository",
		"op":          "FindActive",
		"rows_return": len(trades),
	}).Debug("Active trades fetched")

	return trades, nil
}

// SetExecutedPrice backfills the fill price reported by the brokerage stream,
// looked up by brokerage order id.
func (r *TradeRepository) SetExecutedPrice(ctx context.Context, orderID string, price float64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ExecutedTrade{}).
		Where("order_id = ?", orderID).
		Update("executed_price", price)

	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "SetExecutedPrice",
			"order_id": orderID,
		}).WithError(res.Error).Error("Failed to set executed price")
		return res.Error
	}

	if res.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "SetExecutedPrice",
			"order_id": orderID,
		}).Warn("No trade found for order, fill ignored")
		return nil
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "SetExecutedPrice",
		"order_id": orderID,
		"price":    price,
	}).Info("Executed price recorded")

	return nil
}

// Close transitions an active trade to closed. Closing an already-closed
// trade yields ErrInvalidTransition and leaves the row untouched.
func (r *TradeRepository) Close(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.ExecutedTrade{}).
		Where("id = ? AND status = ?", id, model.TradeStatusActive).
		Update("status", model.TradeStatusClosed)

	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Close",
			"trade_id": id,
		}).WithError(res.Error).Error("Failed to close trade")
		return res.Error
	}

	if res.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"repo":     "TradeRepository",
			"op":       "Close",
			"trade_id": id,
		}).Warn("Trade not active, close refused")
		return ErrInvalidTransition
	}

	logger.WithFields(map[string]interface{}{
		"repo":     "TradeRepository",
		"op":       "Close",
		"trade_id": id,
	}).Info("Trade closed")

	return nil
}

package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"predictiontrader/src/database"
	"predictiontrader/src/model"
)

// PerformanceRepository stores point-in-time trade valuations. Physically the
// table keeps one row per trade (upsert on trade_id); semantically the latest
// observation wins.
type PerformanceRepository struct {
	db *gorm.DB
}

// NewPerformanceRepository creates a new repository instance using the main
// read/write database.
func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance.
func (r *PerformanceRepository) WithDB(db *gorm.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// Upsert records a snapshot for a trade, replacing any previous one.
func (r *PerformanceRepository) Upsert(ctx context.Context, snapshot *model.PerformanceSnapshot) error {
	logger.WithFields(map[string]interface{}{
		"repo":     "PerformanceRepository",
		"op":       "Upsert",
		"trade_id": snapshot.TradeID,
		"pnl":      snapshot.UnrealizedPnL,
	}).Debug("Upserting performance snapshot")

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trade_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_price",
				"unrealized_pnl",
				"performance_pct",
				"recommendation",
				"observed_at",
				"updated_at",
			}),
		}).
		Create(snapshot).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":     "PerformanceRepository",
			"op":       "Upsert",
			"trade_id": snapshot.TradeID,
		}).WithError(err).Error("Failed to upsert performance snapshot")
		return err
	}

	return nil
}

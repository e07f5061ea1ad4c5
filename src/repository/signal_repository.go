package repository

import (
	"context"
	"errors"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"predictiontrader/src/database"
	"predictiontrader/src/model"
)

// SignalRepository handles read/write operations for discovered prediction
// signals.
type SignalRepository struct {
	db *gorm.DB
}

// NewSignalRepository creates a new repository instance using the main
// read/write database.
func NewSignalRepository() *SignalRepository {
	return &SignalRepository{db: database.MainDB}
}

// WithDB allows overriding the underlying *gorm.DB instance. Useful for tests
// or when using a specific session/transaction.
func (r *SignalRepository) WithDB(db *gorm.DB) *SignalRepository {
	return &SignalRepository{db: db}
}

// Upsert stores a discovered signal; re-discovery replaces the stored copy by
// identifier (latest observation wins) without touching existing proposals.
func (r *SignalRepository) Upsert(ctx context.Context, signal *model.PredictionSignal) error {
	logger.WithFields(map[string]interface{}{
		"repo":      "SignalRepository",
		"op":        "Upsert",
		"signal_id": signal.ID,
		"category":  signal.Category,
	}).Debug("Upserting prediction signal")

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title",
				"description",
				"current_prob",
				"prob_change_24h",
				"volume_24h",
				"liquidity",
				"end_date",
				"category",
				"relevance_score",
				"discovered_at",
				"updated_at",
			}),
		}).
		Create(signal).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":      "SignalRepository",
			"op":        "Upsert",
			"signal_id": signal.ID,
		}).WithError(err).Error("Failed to upsert prediction signal")
		return err
	}

	return nil
}

// FindByID fetches a single signal by its identifier.
// Returns (nil, nil) if the signal is not found.
func (r *SignalRepository) FindByID(ctx context.Context, id string) (*model.PredictionSignal, error) {
	var signal model.PredictionSignal

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&signal).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo":      "SignalRepository",
			"op":        "FindByID",
			"signal_id": id,
		}).WithError(err).Error("Failed to fetch prediction signal")
		return nil, err
	}

	return &signal, nil
}

// FindRecentRelevant returns the latest actionable discoveries (relevance
// above the threshold), newest first.
func (r *SignalRepository) FindRecentRelevant(ctx context.Context, minRelevance float64, limit int) ([]model.PredictionSignal, error) {
	if limit <= 0 {
		limit = 10
	}

	var signals []model.PredictionSignal

	err := r.db.WithContext(ctx).
		Where("relevance_score > ?", minRelevance).
		Order("discovered_at DESC").
		Limit(limit).
		Find(&signals).Error

	if err != nil {
		logger.WithFields(map[string]interface{}{
			"repo":  "SignalRepository",
			"op":    "FindRecentRelevant",
			"limit": limit,
		}).WithError(err).Error("Failed to fetch recent signals")
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"repo":        "SignalRepository",
		"op":          "FindRecentRelevant",
		"rows_return": len(signals),
	}).Debug("Recent signals fetched")

	return signals, nil
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/analysis"
	"predictiontrader/src/model"
)

const defaultSignalsLimit = 20

type recentSignalLister interface {
	FindRecentRelevant(ctx context.Context, minRelevance float64, limit int) ([]model.PredictionSignal, error)
}

// ListRecentSignalsHandler returns recently discovered relevant signals,
// newest first. Supports an optional limit query parameter.
func ListRecentSignalsHandler(repo recentSignalLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultSignalsLimit
		if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
			parsed, err := strconv.Atoi(limitParam)
			if err != nil || parsed <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		signals, err := repo.FindRecentRelevant(r.Context(), analysis.RelevanceThreshold, limit)
		if err != nil {
			logger.WithError(err).Error("failed to list recent signals")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(signals); err != nil {
			logger.WithError(err).Error("failed to encode recent signals response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

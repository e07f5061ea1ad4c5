package handler

import (
	"context"
	"encoding/json"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/model"
)

type activeTradeLister interface {
	FindActive(ctx context.Context) ([]model.ExecutedTrade, error)
}

type tradeCloser interface {
	CloseTrade(ctx context.Context, tradeID uint) error
}

// ListActiveTradesHandler returns open positions with proposal reasoning,
// source signal and latest valuation.
func ListActiveTradesHandler(repo activeTradeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trades, err := repo.FindActive(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list active trades")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(trades); err != nil {
			logger.WithError(err).Error("failed to encode active trades response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

// CloseTradeHandler exits an active position.
func CloseTradeHandler(lifecycle tradeCloser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idFromRequest(r)
		if !ok {
			http.Error(w, "invalid trade id", http.StatusBadRequest)
			return
		}

		if err := lifecycle.CloseTrade(r.Context(), id); err != nil {
			writeLifecycleError(w, err, "close trade")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

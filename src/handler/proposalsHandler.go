package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/controller"
	"predictiontrader/src/model"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

type pendingLister interface {
	FindPending(ctx context.Context) ([]model.TradeProposal, error)
}

type proposalLifecycle interface {
	ApproveProposal(ctx context.Context, proposalID uint, counter *risk.DailyTradeCounter) (*model.ExecutedTrade, error)
	RejectProposal(ctx context.Context, proposalID uint) error
}

// ListPendingProposalsHandler returns all pending proposals with their source
// signal, newest discovery first.
func ListPendingProposalsHandler(repo pendingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		proposals, err := repo.FindPending(r.Context())
		if err != nil {
			logger.WithError(err).Error("failed to list pending proposals")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(proposals); err != nil {
			logger.WithError(err).Error("failed to encode pending proposals response")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}

func idFromRequest(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ApproveProposalHandler executes a pending proposal. The mutex serializes
// approvals so the shared daily counter sees one writer at a time.
func ApproveProposalHandler(lifecycle proposalLifecycle, counter *risk.DailyTradeCounter) http.HandlerFunc {
	var mu sync.Mutex

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idFromRequest(r)
		if !ok {
			http.Error(w, "invalid proposal id", http.StatusBadRequest)
			return
		}

		mu.Lock()
		trade, err := lifecycle.ApproveProposal(r.Context(), id, counter)
		mu.Unlock()

		if err != nil {
			writeLifecycleError(w, err, "approve proposal")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(trade); err != nil {
			logger.WithError(err).Error("failed to encode approved trade response")
		}
	}
}

// RejectProposalHandler declines a pending proposal.
func RejectProposalHandler(lifecycle proposalLifecycle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idFromRequest(r)
		if !ok {
			http.Error(w, "invalid proposal id", http.StatusBadRequest)
			return
		}

		if err := lifecycle.RejectProposal(r.Context(), id); err != nil {
			writeLifecycleError(w, err, "reject proposal")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeLifecycleError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, controller.ErrProposalNotFound),
		errors.Is(err, controller.ErrTradeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, controller.ErrUnsupportedOrderKind),
		errors.Is(err, controller.ErrPositionTooSmall):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, controller.ErrDailyLimitReached):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		logger.WithError(err).Errorf("failed to %s", op)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

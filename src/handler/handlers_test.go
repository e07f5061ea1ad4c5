package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"predictiontrader/src/controller"
	"predictiontrader/src/model"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

type mockPendingLister struct {
	proposals []model.TradeProposal
	err       error
}

func (m *mockPendingLister) FindPending(ctx context.Context) ([]model.TradeProposal, error) {
	return m.proposals, m.err
}

type mockLifecycle struct {
	approveErr  error
	rejectErr   error
	closeErr    error
	trade       *model.ExecutedTrade
	approvedID  uint
	rejectedID  uint
	closedID    uint
	calledCount int
}

func (m *mockLifecycle) ApproveProposal(ctx context.Context, proposalID uint, counter *risk.DailyTradeCounter) (*model.ExecutedTrade, error) {
	m.calledCount++
	m.approvedID = proposalID
	return m.trade, m.approveErr
}

func (m *mockLifecycle) RejectProposal(ctx context.Context, proposalID uint) error {
	m.rejectedID = proposalID
	return m.rejectErr
}

func (m *mockLifecycle) CloseTrade(ctx context.Context, tradeID uint) error {
	m.closedID = tradeID
	return m.closeErr
}

func newProposalRouter(lifecycle *mockLifecycle) chi.Router {
	r := chi.NewRouter()
	r.Post("/proposals/{id}/approve", ApproveProposalHandler(lifecycle, risk.NewDailyTradeCounter(10)))
	r.Post("/proposals/{id}/reject", RejectProposalHandler(lifecycle))
	r.Post("/trades/{id}/close", CloseTradeHandler(lifecycle))
	return r
}

func TestListPendingProposalsHandler(t *testing.T) {
	mockRepo := &mockPendingLister{proposals: []model.TradeProposal{
		{ID: 1, Symbol: "TLT", Side: model.SideBuy, Status: model.ProposalStatusPending},
	}}
	handler := ListPendingProposalsHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/proposals/pending", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got []model.TradeProposal
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "TLT" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestListPendingProposalsHandler_RepoError(t *testing.T) {
	handler := ListPendingProposalsHandler(&mockPendingLister{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/proposals/pending", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestApproveProposalHandler_Success(t *testing.T) {
	lifecycle := &mockLifecycle{trade: &model.ExecutedTrade{ID: 3, Symbol: "TLT", Quantity: 20}}
	router := newProposalRouter(lifecycle)

	req := httptest.NewRequest(http.MethodPost, "/proposals/7/approve", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}
	if lifecycle.approvedID != 7 {
		t.Fatalf("expected proposal 7 approved, got %d", lifecycle.approvedID)
	}

	var got model.ExecutedTrade
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != 3 || got.Quantity != 20 {
		t.Fatalf("unexpected trade in response: %+v", got)
	}
}

func TestApproveProposalHandler_InvalidID(t *testing.T) {
	lifecycle := &mockLifecycle{}
	router := newProposalRouter(lifecycle)

	req := httptest.NewRequest(http.MethodPost, "/proposals/abc/approve", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
	if lifecycle.calledCount != 0 {
		t.Fatalf("lifecycle must not be called for a bad id")
	}
}

func TestApproveProposalHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", controller.ErrProposalNotFound, http.StatusNotFound},
		{"already decided", repository.ErrInvalidTransition, http.StatusConflict},
		{"unsupported kind", controller.ErrUnsupportedOrderKind, http.StatusUnprocessableEntity},
		{"too small", controller.ErrPositionTooSmall, http.StatusUnprocessableEntity},
		{"daily limit", controller.ErrDailyLimitReached, http.StatusTooManyRequests},
		{"internal", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newProposalRouter(&mockLifecycle{approveErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/proposals/7/approve", nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestRejectProposalHandler(t *testing.T) {
	lifecycle := &mockLifecycle{}
	router := newProposalRouter(lifecycle)

	req := httptest.NewRequest(http.MethodPost, "/proposals/9/reject", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if lifecycle.rejectedID != 9 {
		t.Fatalf("expected proposal 9 rejected, got %d", lifecycle.rejectedID)
	}
}

type mockActiveLister struct {
	trades []model.ExecutedTrade
	err    error
}

func (m *mockActiveLister) FindActive(ctx context.Context) ([]model.ExecutedTrade, error) {
	return m.trades, m.err
}

func TestListActiveTradesHandler(t *testing.T) {
	price := 101.5
	mockRepo := &mockActiveLister{trades: []model.ExecutedTrade{
		{ID: 1, Symbol: "VNQ", Status: model.TradeStatusActive, ExecutedPrice: &price},
	}}
	handler := ListActiveTradesHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/trades/active", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var got []model.ExecutedTrade
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(got) != 1 || got[0].ExecutedPrice == nil || *got[0].ExecutedPrice != 101.5 {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestCloseTradeHandler(t *testing.T) {
	lifecycle := &mockLifecycle{}
	router := newProposalRouter(lifecycle)

	req := httptest.NewRequest(http.MethodPost, "/trades/4/close", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if lifecycle.closedID != 4 {
		t.Fatalf("expected trade 4 closed, got %d", lifecycle.closedID)
	}
}

func TestCloseTradeHandler_NotActive(t *testing.T) {
	router := newProposalRouter(&mockLifecycle{closeErr: repository.ErrInvalidTransition})

	req := httptest.NewRequest(http.MethodPost, "/trades/4/close", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

type mockSignalLister struct {
	signals      []model.PredictionSignal
	minRelevance float64
	limit        int
	err          error
}

func (m *mockSignalLister) FindRecentRelevant(ctx context.Context, minRelevance float64, limit int) ([]model.PredictionSignal, error) {
	m.minRelevance = minRelevance
	m.limit = limit
	return m.signals, m.err
}

func TestListRecentSignalsHandler(t *testing.T) {
	mockRepo := &mockSignalLister{signals: []model.PredictionSignal{{ID: "mkt-1", Title: "Fed cut?"}}}
	handler := ListRecentSignalsHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/signals/recent?limit=5", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if mockRepo.limit != 5 {
		t.Fatalf("expected limit 5 passed through, got %d", mockRepo.limit)
	}
	if mockRepo.minRelevance <= 0 {
		t.Fatalf("expected the relevance threshold to be applied, got %f", mockRepo.minRelevance)
	}
}

func TestListRecentSignalsHandler_InvalidLimit(t *testing.T) {
	handler := ListRecentSignalsHandler(&mockSignalLister{})

	req := httptest.NewRequest(http.MethodGet, "/signals/recent?limit=-1", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

package controller

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/connectors"
	"predictiontrader/src/model"
	"predictiontrader/src/performance"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

// Brokerage is the slice of the Alpaca client the lifecycle needs.
type Brokerage interface {
	GetAccount(ctx context.Context) (*connectors.AlpacaAccount, error)
	GetLatestQuote(ctx context.Context, symbol string) (float64, error)
	PlaceOrder(ctx context.Context, symbol, side string, qty int64) (*connectors.AlpacaOrder, error)
}

// CryptoQuoter prices BASE/QUOTE symbols that the equity data feed cannot.
type CryptoQuoter interface {
	GetLastPrice(symbol string) (float64, error)
}

// TradeController drives the proposal and trade lifecycle: approval with risk
// sizing and order submission, rejection, closing, and performance refresh.
type TradeController struct {
	proposals    *repository.ProposalRepository
	trades       *repository.TradeRepository
	performances *repository.PerformanceRepository

	broker       Brokerage
	cryptoQuotes CryptoQuoter

	sizerCfg risk.SizerConfig
}

func NewTradeController(
	proposals *repository.ProposalRepository,
	trades *repository.TradeRepository,
	performances *repository.PerformanceRepository,
	broker Brokerage,
	cryptoQuotes CryptoQuoter,
) *TradeController {
	config := GetConfig()

	return &TradeController{
		proposals:    proposals,
		trades:       trades,
		performances: performances,
		broker:       broker,
		cryptoQuotes: cryptoQuotes,
		sizerCfg: risk.SizerConfig{
			MaxPositionPct: decimal.NewFromFloat(config.MaxPositionPct),
		},
	}
}

func (t *TradeController) quoteFor(ctx context.Context, symbol string) (float64, error) {
	if connectors.IsCryptoPair(symbol) {
		return t.cryptoQuotes.GetLastPrice(symbol)
	}
	return t.broker.GetLatestQuote(ctx, symbol)
}

// ApproveProposal executes a pending proposal end to end:
//
//  1. load the proposal and validate it is executable
//  2. check today's trade ceiling
//  3. size the position against live equity and a live quote
//  4. submit the order
//  5. record approval plus the executed trade transactionally
//
// On ErrUnsupportedOrderKind, ErrDailyLimitReached and ErrPositionTooSmall the
// proposal is left pending so it can be retried or rejected later.
func (t *TradeController) ApproveProposal(
	ctx context.Context,
	proposalID uint,
	counter *risk.DailyTradeCounter,
) (*model.ExecutedTrade, error) {

	log := logger.WithFields(map[string]interface{}{
		"controller":  "TradeController",
		"op":          "ApproveProposal",
		"proposal_id": proposalID,
	})

	proposal, err := t.proposals.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, ErrProposalNotFound
	}
	if proposal.Status != model.ProposalStatusPending {
		log.WithField("status", proposal.Status).Warn("Proposal not pending")
		return nil, repository.ErrInvalidTransition
	}
	if proposal.OrderKind != model.OrderKindEquity {
		log.WithField("order_kind", proposal.OrderKind).Warn("Order kind cannot be routed, proposal left pending")
		return nil, ErrUnsupportedOrderKind
	}

	now := time.Now().UTC()
	if counter != nil && !counter.Allow(now) {
		log.Warn("Daily trade limit reached, proposal left pending")
		return nil, ErrDailyLimitReached
	}

	account, err := t.broker.GetAccount(ctx)
	if err != nil {
		return nil, err
	}
	equity, err := account.EquityValue()
	if err != nil {
		return nil, err
	}

	price, err := t.quoteFor(ctx, proposal.Symbol)
	if err != nil {
		return nil, err
	}

	qty := risk.CalculatePositionSize(
		decimal.NewFromFloat(equity),
		decimal.NewFromFloat(price),
		proposal.Confidence,
		proposal.Quantity,
		t.sizerCfg,
	)
	if qty == 0 {
		log.WithFields(map[string]interface{}{
			"equity": equity,
			"price":  price,
		}).Warn("Position sized to zero, proposal left pending")
		return nil, ErrPositionTooSmall
	}

	order, err := t.broker.PlaceOrder(ctx, proposal.Symbol, proposal.Side, qty)
	if err != nil {
		return nil, err
	}

	expectedEnd := now.AddDate(0, 0, proposal.DurationDays)
	trade := &model.ExecutedTrade{
		OrderID:     order.ID,
		Symbol:      proposal.Symbol,
		Side:        proposal.Side,
		Quantity:    qty,
		ExecutedAt:  now,
		ExpectedEnd: &expectedEnd,
	}

	if err := t.proposals.ApproveAndExecute(ctx, proposalID, trade); err != nil {
		// The order is already live at the brokerage. Recording failed, so
		// this needs operator attention rather than a silent retry.
		log.WithFields(map[string]interface{}{
			"order_id": order.ID,
			"symbol":   proposal.Symbol,
			"qty":      qty,
		}).WithError(err).Error("Order placed but approval record failed")
		return nil, err
	}

	if counter != nil {
		counter.Record(now)
	}

	log.WithFields(map[string]interface{}{
		"trade_id": trade.ID,
		"order_id": order.ID,
		"symbol":   proposal.Symbol,
		"side":     proposal.Side,
		"qty":      qty,
	}).Info("Proposal approved and executed")

	return trade, nil
}

// RejectProposal transitions a pending proposal to rejected.
func (t *TradeController) RejectProposal(ctx context.Context, proposalID uint) error {
	proposal, err := t.proposals.FindByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal == nil {
		return ErrProposalNotFound
	}

	return t.proposals.Reject(ctx, proposalID)
}

// CloseTrade exits an active position by submitting the opposite-side order,
// then marks the trade closed.
func (t *TradeController) CloseTrade(ctx context.Context, tradeID uint) error {
	log := logger.WithFields(map[string]interface{}{
		"controller": "TradeController",
		"op":         "CloseTrade",
		"trade_id":   tradeID,
	})

	trade, err := t.trades.FindByID(ctx, tradeID)
	if err != nil {
		return err
	}
	if trade == nil {
		return ErrTradeNotFound
	}
	if trade.Status != model.TradeStatusActive {
		return repository.ErrInvalidTransition
	}

	closeSide := model.SideSell
	if trade.Side == model.SideSell {
		closeSide = model.SideBuy
	}

	order, err := t.broker.PlaceOrder(ctx, trade.Symbol, closeSide, trade.Quantity)
	if err != nil {
		return err
	}

	if err := t.trades.Close(ctx, tradeID); err != nil {
		log.WithField("order_id", order.ID).WithError(err).Error("Closing order placed but close record failed")
		return err
	}

	log.WithFields(map[string]interface{}{
		"symbol":     trade.Symbol,
		"close_side": closeSide,
		"qty":        trade.Quantity,
	}).Info("Trade closed")

	return nil
}

// RefreshPerformance revalues every active trade with a confirmed fill price
// and upserts its snapshot. Trades that cannot be priced are skipped; the
// refresh keeps going. Returns the number of snapshots written.
func (t *TradeController) RefreshPerformance(ctx context.Context) (int, error) {
	trades, err := t.trades.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range trades {
		trade := trades[i]

		log := logger.WithFields(map[string]interface{}{
			"controller": "TradeController",
			"op":         "RefreshPerformance",
			"trade_id":   trade.ID,
			"symbol":     trade.Symbol,
		})

		if trade.ExecutedPrice == nil {
			log.Debug("No executed price yet, skipping valuation")
			continue
		}

		price, err := t.quoteFor(ctx, trade.Symbol)
		if err != nil {
			log.WithError(err).Warn("Quote failed, skipping valuation")
			continue
		}

		result := performance.Evaluate(trade, price)
		snapshot := &model.PerformanceSnapshot{
			TradeID:        trade.ID,
			CurrentPrice:   result.CurrentPrice,
			UnrealizedPnL:  result.UnrealizedPnL,
			PerformancePct: result.PerformancePct,
			Recommendation: result.Recommendation,
			ObservedAt:     time.Now().UTC(),
		}

		if err := t.performances.Upsert(ctx, snapshot); err != nil {
			log.WithError(err).Warn("Snapshot upsert failed, skipping")
			continue
		}

		log.WithFields(map[string]interface{}{
			"pnl":            result.UnrealizedPnL,
			"pct":            result.PerformancePct,
			"recommendation": result.Recommendation,
		}).Info("Trade revalued")

		refreshed++
	}

	return refreshed, nil
}

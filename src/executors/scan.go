package executors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/analysis"
	"predictiontrader/src/controller"
	"predictiontrader/src/mapper"
	"predictiontrader/src/model"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

// MarketLister is the slice of the Polymarket client the scanner needs.
type MarketLister interface {
	ListMarkets(ctx context.Context) ([]model.Market, error)
}

// Scanner runs one discovery-to-proposal cycle: fetch markets, score them,
// persist the relevant ones as signals, map strong signals into proposals and
// optionally auto-approve high-confidence equity proposals.
type Scanner struct {
	Markets   MarketLister
	Signals   *repository.SignalRepository
	Proposals *repository.ProposalRepository
	Mapper    *mapper.Mapper

	// Controller and Counter are only consulted in auto-approve mode.
	Controller *controller.TradeController
	Counter    *risk.DailyTradeCounter

	Config Config
}

// RunCycle performs one full scan. A cycle always produces a report, even when
// no market yields a trade.
func (s *Scanner) RunCycle(ctx context.Context) (*model.ScanReport, error) {
	now := time.Now().UTC()

	report := &model.ScanReport{
		ReportID:  uuid.NewString(),
		Timestamp: now,
		Trades:    []model.ScanReportTrade{},
	}

	markets, err := s.Markets.ListMarkets(ctx)
	if err != nil {
		return nil, err
	}

	for _, market := range markets {
		signal, err := model.NewPredictionSignalFromMarket(market)
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"market_id": market.ID,
			}).WithError(err).Warn("Malformed market record, skipping")
			continue
		}
		report.TotalSignals++

		signal.RelevanceScore = analysis.Relevance(signal.Title, signal.Description)
		if signal.RelevanceScore < analysis.RelevanceThreshold {
			continue
		}
		report.ActionableSignals++

		signal.Category = analysis.Classify(signal.Title, signal.Description)

		if err := s.Signals.Upsert(ctx, &signal); err != nil {
			logger.WithFields(map[string]interface{}{
				"signal_id": signal.ID,
			}).WithError(err).Error("Signal upsert failed, skipping")
			continue
		}

		strength := analysis.SignalStrength(signal, now)
		direction := analysis.ResolveDirection(signal.Category, signal.Title)

		for _, candidate := range s.Mapper.Map(signal, signal.Category, direction, strength) {
			proposal := &model.TradeProposal{
				SignalID:     signal.ID,
				Symbol:       candidate.Symbol,
				Side:         candidate.Side,
				OrderKind:    candidate.OrderKind,
				Quantity:     candidate.Quantity,
				Confidence:   candidate.Confidence,
				DurationDays: candidate.Duration,
				Reasoning:    candidate.Reasoning,
			}

			if err := s.Proposals.Create(ctx, proposal); err != nil {
				logger.WithFields(map[string]interface{}{
					"signal_id": signal.ID,
					"symbol":    candidate.Symbol,
				}).WithError(err).Error("Proposal create failed, skipping")
				continue
			}

			report.GeneratedTrades++
			report.Trades = append(report.Trades, model.ScanReportTrade{
				Symbol:     proposal.Symbol,
				Action:     proposal.Side,
				Quantity:   proposal.Quantity,
				Confidence: proposal.Confidence,
				Reasoning:  proposal.Reasoning,
			})

			if s.shouldAutoApprove(proposal) {
				if s.autoApprove(ctx, proposal) {
					report.ExecutedTrades++
				}
			}
		}
	}

	if report.TotalSignals > 0 {
		report.ConversionRate = float64(report.ActionableSignals) / float64(report.TotalSignals)
	}

	logger.WithFields(map[string]interface{}{
		"report_id":          report.ReportID,
		"total_signals":      report.TotalSignals,
		"actionable_signals": report.ActionableSignals,
		"generated_trades":   report.GeneratedTrades,
		"executed_trades":    report.ExecutedTrades,
	}).Info("Scan cycle finished")

	return report, nil
}

func (s *Scanner) shouldAutoApprove(proposal *model.TradeProposal) bool {
	if !s.Config.AutoApprove || s.Controller == nil {
		return false
	}
	if proposal.OrderKind != model.OrderKindEquity {
		return false
	}
	return proposal.Confidence >= s.Config.AutoApproveMin
}

func (s *Scanner) autoApprove(ctx context.Context, proposal *model.TradeProposal) bool {
	_, err := s.Controller.ApproveProposal(ctx, proposal.ID, s.Counter)
	if err == nil {
		return true
	}

	log := logger.WithFields(map[string]interface{}{
		"proposal_id": proposal.ID,
		"symbol":      proposal.Symbol,
	})

	// Policy refusals leave the proposal pending for manual review; anything
	// else is a real failure worth surfacing.
	switch {
	case errors.Is(err, controller.ErrDailyLimitReached),
		errors.Is(err, controller.ErrPositionTooSmall),
		errors.Is(err, controller.ErrUnsupportedOrderKind):
		log.WithError(err).Warn("Auto-approval refused, proposal left pending")
	default:
		log.WithError(err).Error("Auto-approval failed")
	}
	return false
}

package executors

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/connectors"
	"predictiontrader/src/controller"
	"predictiontrader/src/mapper"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

func newScanner(config Config, connCfg connectors.Config) (*Scanner, *controller.TradeController) {
	broker := connectors.NewAlpacaClient(
		connCfg.AlpacaAPIKey,
		connCfg.AlpacaAPISecret,
		connCfg.AlpacaBaseURL,
		connCfg.AlpacaDataBaseURL,
	)

	tradeController := controller.NewTradeController(
		repository.NewProposalRepository(),
		repository.NewTradeRepository(),
		repository.NewPerformanceRepository(),
		broker,
		connectors.NewCryptoQuoteClient(),
	)

	scanner := &Scanner{
		Markets:    connectors.NewPolymarketClient(connCfg.PolymarketBaseURL, connCfg.PolymarketLimit),
		Signals:    repository.NewSignalRepository(),
		Proposals:  repository.NewProposalRepository(),
		Mapper:     mapper.NewMapper(),
		Controller: tradeController,
		Counter:    risk.NewDailyTradeCounter(config.DailyTradeLimit),
		Config:     config,
	}

	return scanner, tradeController
}

// RunScanOnce executes a single scan cycle and writes its report. Used by the
// one-shot CLI command.
func RunScanOnce(ctx context.Context) error {
	config := GetConfig()
	scanner, _ := newScanner(config, connectors.GetConfig())

	report, err := scanner.RunCycle(ctx)
	if err != nil {
		return err
	}

	_, err = WriteReport(config.ReportDir, report)
	return err
}

// StartLoop runs the scheduler: an immediate scan cycle, then one per tick,
// with a performance refresh after each scan. A failed cycle is logged and the
// loop cools down instead of exiting; only context cancellation stops it.
func StartLoop(ctx context.Context) error {
	config := GetConfig()
	connCfg := connectors.GetConfig()

	scanner, tradeController := newScanner(config, connCfg)

	// Fill prices stream in asynchronously; run the consumer beside the loop.
	go runFillStream(ctx, connCfg, repository.NewTradeRepository())

	ticker := time.NewTicker(config.LoopPeriod)
	defer ticker.Stop()

	runOnce := func() {
		report, err := scanner.RunCycle(ctx)
		if err != nil {
			logger.WithError(err).Error("Scan cycle failed, cooling down")
			time.Sleep(config.ErrorCooldown)
			return
		}

		if _, err := WriteReport(config.ReportDir, report); err != nil {
			logger.WithError(err).Error("Failed to write scan report")
		}

		refreshed, err := tradeController.RefreshPerformance(ctx)
		if err != nil {
			logger.WithError(err).Error("Performance refresh failed")
			return
		}
		logger.WithField("refreshed", refreshed).Info("Performance refresh finished")
	}

	runOnce()

	for {
		select {
		case <-ctx.Done():
			logger.Println("loop stopped")
			return nil

		case <-ticker.C:
			logger.Info("loop tick")
			runOnce()
		}
	}
}

// runFillStream keeps a trade-updates connection alive, backfilling executed
// prices as fills arrive. Reconnects with a fixed delay until cancelled.
func runFillStream(ctx context.Context, connCfg connectors.Config, trades *repository.TradeRepository) {
	if connCfg.AlpacaAPIKey == "" {
		logger.Warn("No brokerage credentials, fill stream disabled")
		return
	}

	stream := connectors.NewAlpacaStream(
		connCfg.AlpacaAPIKey,
		connCfg.AlpacaAPISecret,
		connCfg.AlpacaStreamBaseURL,
		func(orderID string, price float64) {
			if err := trades.SetExecutedPrice(context.Background(), orderID, price); err != nil {
				logger.WithField("order_id", orderID).WithError(err).Error("Failed to record fill price")
			}
		},
	)

	for {
		if err := stream.Run(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(err).Warn("Fill stream disconnected, reconnecting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/connectors"
	"predictiontrader/src/controller"
	"predictiontrader/src/executors"
	"predictiontrader/src/handler"
	"predictiontrader/src/repository"
	"predictiontrader/src/risk"
)

func StartServer(port string) {
	if port == "" {
		port = GetConfig().Port
	}

	connCfg := connectors.GetConfig()
	execCfg := executors.GetConfig()

	broker := connectors.NewAlpacaClient(
		connCfg.AlpacaAPIKey,
		connCfg.AlpacaAPISecret,
		connCfg.AlpacaBaseURL,
		connCfg.AlpacaDataBaseURL,
	)

	proposalRepo := repository.NewProposalRepository()
	tradeRepo := repository.NewTradeRepository()

	tradeController := controller.NewTradeController(
		proposalRepo,
		tradeRepo,
		repository.NewPerformanceRepository(),
		broker,
		connectors.NewCryptoQuoteClient(),
	)

	counter := risk.NewDailyTradeCounter(execCfg.DailyTradeLimit)

	// Router with middleware
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error(" \"/health error")
		}
	})

	r.Get("/signals/recent", handler.ListRecentSignalsHandler(repository.NewSignalRepository()))
	r.Get("/proposals/pending", handler.ListPendingProposalsHandler(proposalRepo))
	r.Post("/proposals/{id}/approve", handler.ApproveProposalHandler(tradeController, counter))
	r.Post("/proposals/{id}/reject", handler.RejectProposalHandler(tradeController))
	r.Get("/trades/active", handler.ListActiveTradesHandler(tradeRepo))
	r.Post("/trades/{id}/close", handler.CloseTradeHandler(tradeController))

	// Graceful server
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}

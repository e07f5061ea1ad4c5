package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

// FillHandler receives the brokerage order id and average fill price whenever
// the stream reports a fill.
type FillHandler func(orderID string, filledAvgPrice float64)

type streamAuthRequest struct {
	Action string         `json:"action"`
	Data   map[string]any `json:"data"`
}

type streamListenRequest struct {
	Action string `json:"action"`
	Data   struct {
		Streams []string `json:"streams"`
	} `json:"data"`
}

type streamMessage struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}

type tradeUpdateData struct {
	Event string `json:"event"`
	Order struct {
		ID             string `json:"id"`
		Symbol         string `json:"symbol"`
		FilledAvgPrice string `json:"filled_avg_price"`
	} `json:"order"`
}

type streamAuthResult struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// AlpacaStream consumes the trade_updates websocket channel and forwards fill
// events. Fill prices arrive asynchronously after order placement, so this is
// the only source for real executed prices.
type AlpacaStream struct {
	apiKey    string
	apiSecret string
	streamURL string
	onFill    FillHandler
}

func NewAlpacaStream(apiKey, apiSecret, streamURL string, onFill FillHandler) *AlpacaStream {
	return &AlpacaStream{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		streamURL: streamURL,
		onFill:    onFill,
	}
}

// Run connects, authenticates and consumes trade updates until the context is
// cancelled or the connection drops. Callers are expected to loop and
// reconnect; one Run call is one connection.
func (s *AlpacaStream) Run(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 15 * time.Second,
		Proxy:            http.ProxyFromEnvironment,
	}

	conn, _, err := dialer.DialContext(ctx, s.streamURL, nil)
	if err != nil {
		return fmt.Errorf("ws dial failed: %w", err)
	}
	defer conn.Close()

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	auth := streamAuthRequest{
		Action: "authenticate",
		Data: map[string]any{
			"key_id":     s.apiKey,
			"secret_key": s.apiSecret,
		},
	}
	if err := conn.WriteJSON(auth); err != nil {
		return fmt.Errorf("ws auth write failed: %w", err)
	}

	var authMsg streamMessage
	if err := conn.ReadJSON(&authMsg); err != nil {
		return fmt.Errorf("ws auth read failed: %w", err)
	}
	var authResult streamAuthResult
	if err := json.Unmarshal(authMsg.Data, &authResult); err != nil {
		return fmt.Errorf("ws auth payload unexpected: %w", err)
	}
	if authResult.Status != "authorized" {
		return fmt.Errorf("ws auth refused: status=%q", authResult.Status)
	}

	var listen streamListenRequest
	listen.Action = "listen"
	listen.Data.Streams = []string{"trade_updates"}
	if err := conn.WriteJSON(listen); err != nil {
		return fmt.Errorf("ws listen write failed: %w", err)
	}

	logger.Info("Alpaca trade update stream connected")

	for {
		var msg streamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("ws read failed: %w", err)
		}

		if msg.Stream != "trade_updates" {
			continue
		}

		s.handleTradeUpdate(msg.Data)
	}
}

func (s *AlpacaStream) handleTradeUpdate(raw json.RawMessage) {
	var update tradeUpdateData
	if err := json.Unmarshal(raw, &update); err != nil {
		logger.WithError(err).Warn("Malformed trade update, skipping")
		return
	}

	// Partial fills keep the order open; only the terminal fill event carries
	// the final average price we want to record.
	if update.Event != "fill" {
		return
	}

	price, err := parsePositiveFloat(update.Order.FilledAvgPrice)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"order_id": update.Order.ID,
			"raw":      update.Order.FilledAvgPrice,
		}).WithError(err).Warn("Fill event without usable price, skipping")
		return
	}

	logger.WithFields(map[string]interface{}{
		"order_id": update.Order.ID,
		"symbol":   update.Order.Symbol,
		"price":    price,
	}).Info("Order filled")

	if s.onFill != nil {
		s.onFill(update.Order.ID, price)
	}
}

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive value %f", v)
	}
	return v, nil
}

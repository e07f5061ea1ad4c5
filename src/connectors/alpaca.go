// REST API CLIENT FOR ALPACA TRADING + MARKET DATA
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/model"
)

// -----------------------------
// ACCOUNT
// -----------------------------

// AlpacaAccount is the brokerage account snapshot. Alpaca returns all money
// amounts as decimal strings.
type AlpacaAccount struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Currency       string `json:"currency"`
	BuyingPower    string `json:"buying_power"`
	Cash           string `json:"cash"`
	PortfolioValue string `json:"portfolio_value"`
	Equity         string `json:"equity"`
}

// EquityValue parses the equity field. Returns 0 on an empty account.
func (a *AlpacaAccount) EquityValue() (float64, error) {
	if strings.TrimSpace(a.Equity) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(a.Equity, 64)
}

// -----------------------------
// ORDERS
// -----------------------------

type AlpacaOrderRequest struct {
	Symbol        string `json:"symbol"`
	Qty           string `json:"qty"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	TimeInForce   string `json:"time_in_force"`
	ClientOrderID string `json:"client_order_id"`
}

type AlpacaOrder struct {
	ID             string  `json:"id"`
	ClientOrderID  string  `json:"client_order_id"`
	Symbol         string  `json:"symbol"`
	Qty            string  `json:"qty"`
	Side           string  `json:"side"`
	Status         string  `json:"status"`
	FilledAvgPrice *string `json:"filled_avg_price"`
}

type alpacaQuoteResponse struct {
	Symbol string `json:"symbol"`
	Quote  struct {
		AskPrice float64 `json:"ap"`
		BidPrice float64 `json:"bp"`
	} `json:"quote"`
}

type alpacaErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// -----------------------------
// CLIENT
// -----------------------------

// AlpacaClient talks to the Alpaca trading API and the separate market data
// API. Both hosts share credentials.
type AlpacaClient struct {
	apiKey    string
	apiSecret string
	http      *resty.Client
	dataHTTP  *resty.Client
}

func NewAlpacaClient(apiKey, apiSecret, baseURL, dataBaseURL string) *AlpacaClient {
	retryCount := defaultRetryAttempts - 1

	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://paper-api.alpaca.markets"
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}
	if strings.TrimSpace(dataBaseURL) == "" {
		dataBaseURL = "https://data.alpaca.markets"
	}
	baseURL = strings.TrimRight(baseURL, "/")
	dataBaseURL = strings.TrimRight(dataBaseURL, "/")

	newHTTP := func(base string) *resty.Client {
		return resty.New().
			SetBaseURL(base).
			SetTimeout(15 * time.Second).
			SetRetryCount(retryCount).
			SetRetryWaitTime(defaultRetryBaseDelay).
			SetRetryMaxWaitTime(defaultRetryMaxBackoff).
			AddRetryCondition(isRetryableResp).
			SetHeader("APCA-API-KEY-ID", apiKey).
			SetHeader("APCA-API-SECRET-KEY", apiSecret)
	}

	return &AlpacaClient{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		http:      newHTTP(baseURL),
		dataHTTP:  newHTTP(dataBaseURL),
	}
}

func alpacaRespError(resp *resty.Response, apiErr *alpacaErrorResponse) error {
	if apiErr != nil && apiErr.Message != "" {
		return fmt.Errorf("HTTP %d: alpaca error %d: %s", resp.StatusCode(), apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
}

// GetAccount fetches the brokerage account snapshot.
func (c *AlpacaClient) GetAccount(ctx context.Context) (*AlpacaAccount, error) {
	var out AlpacaAccount
	var apiErr alpacaErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v2/account")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, alpacaRespError(resp, &apiErr)
	}

	logger.WithFields(map[string]interface{}{
		"equity":       out.Equity,
		"buying_power": out.BuyingPower,
		"status":       out.Status,
	}).Info("Alpaca account snapshot")

	return &out, nil
}

// GetLatestQuote returns the latest bid price for a stock symbol. The bid is
// used as the conservative mark for both sizing and valuation.
func (c *AlpacaClient) GetLatestQuote(ctx context.Context, symbol string) (float64, error) {
	if strings.TrimSpace(symbol) == "" {
		return 0, errors.New("symbol is required")
	}

	var out alpacaQuoteResponse
	var apiErr alpacaErrorResponse

	resp, err := c.dataHTTP.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v2/stocks/" + symbol + "/quotes/latest")
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, alpacaRespError(resp, &apiErr)
	}

	price := out.Quote.BidPrice
	if price <= 0 {
		price = out.Quote.AskPrice
	}
	if price <= 0 {
		return 0, fmt.Errorf("no usable quote for %s", symbol)
	}

	return price, nil
}

// PlaceOrder submits a day market order. The generated client_order_id makes
// resubmission after a retried timeout idempotent on the brokerage side.
func (c *AlpacaClient) PlaceOrder(ctx context.Context, symbol, side string, qty int64) (*AlpacaOrder, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, errors.New("symbol is required")
	}
	if side != model.SideBuy && side != model.SideSell {
		return nil, fmt.Errorf("invalid order side: %q", side)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("qty must be > 0, got %d", qty)
	}

	req := AlpacaOrderRequest{
		Symbol:        symbol,
		Qty:           strconv.FormatInt(qty, 10),
		Side:          side,
		Type:          "market",
		TimeInForce:   "day",
		ClientOrderID: "pt-" + uuid.NewString(),
	}

	logger.WithFields(map[string]interface{}{
		"symbol":          symbol,
		"side":            side,
		"qty":             qty,
		"client_order_id": req.ClientOrderID,
	}).Info("Submitting order to Alpaca")

	var out AlpacaOrder
	var apiErr alpacaErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v2/orders")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, alpacaRespError(resp, &apiErr)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("order accepted without id: %s", string(resp.Body()))
	}

	logger.WithFields(map[string]interface{}{
		"order_id": out.ID,
		"status":   out.Status,
	}).Info("Order accepted")

	return &out, nil
}

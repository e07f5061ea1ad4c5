// REST API CLIENT FOR THE POLYMARKET GAMMA LISTING API
// RESTY ONLY + INTERNAL RETRY
package connectors

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"

	"predictiontrader/src/model"
)

const defaultPolymarketBaseURL = "https://gamma-api.polymarket.com"

// PolymarketClient lists active markets from the public gamma API. No auth.
type PolymarketClient struct {
	http  *resty.Client
	limit int
}

func NewPolymarketClient(baseURL string, limit int) *PolymarketClient {
	retryCount := defaultRetryAttempts - 1

	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultPolymarketBaseURL
		logger.Warnf("No base URL provided, using default: %s", baseURL)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if limit <= 0 {
		limit = 50
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(defaultRetryBaseDelay).
		SetRetryMaxWaitTime(defaultRetryMaxBackoff).
		AddRetryCondition(isRetryableResp)

	return &PolymarketClient{
		http:  httpClient,
		limit: limit,
	}
}

// ListMarkets fetches currently tradable markets. Records that fail to decode
// are not reported here; decoding is per-field lenient and the caller skips
// records it cannot convert.
func (c *PolymarketClient) ListMarkets(ctx context.Context) ([]model.Market, error) {
	var out []model.Market

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"active": "true",
			"closed": "false",
			"limit":  strconv.Itoa(c.limit),
		}).
		SetResult(&out).
		Get("/markets")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	logger.WithFields(map[string]interface{}{
		"markets": len(out),
	}).Debug("Polymarket listing fetched")

	return out, nil
}

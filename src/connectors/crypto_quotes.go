package connectors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
	logger "github.com/sirupsen/logrus"
)

// CryptoQuoteClient prices the crypto basket symbols. Those use the BASE/QUOTE
// form ("BTC/USD") rather than an equity ticker, and the equity data feed has
// no prices for them, so spot tickers come from Binance instead.
type CryptoQuoteClient struct {
	exchange goex.API
}

func NewCryptoQuoteClient() *CryptoQuoteClient {
	apiConfig := &goex.APIConfig{
		HttpClient: http.DefaultClient,
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	return &CryptoQuoteClient{exchange: binance.NewWithConfig(apiConfig)}
}

// IsCryptoPair reports whether a symbol is in BASE/QUOTE form.
func IsCryptoPair(symbol string) bool {
	return strings.Count(symbol, "/") == 1
}

// GetLastPrice returns the last traded price for a BASE/QUOTE symbol. USD is
// quoted via the USDT spot pair.
func (c *CryptoQuoteClient) GetLastPrice(symbol string) (float64, error) {
	base, quote, ok := strings.Cut(symbol, "/")
	if !ok || base == "" || quote == "" {
		return 0, fmt.Errorf("invalid crypto pair: %q", symbol)
	}
	if strings.EqualFold(quote, "USD") {
		quote = "USDT"
	}

	pair := goex.NewCurrencyPair(
		goex.Currency{Symbol: strings.ToUpper(base)},
		goex.Currency{Symbol: strings.ToUpper(quote)},
	)

	ticker, err := c.exchange.GetTicker(pair)
	if err != nil {
		return 0, fmt.Errorf("ticker %s: %w", pair.String(), err)
	}
	if ticker.Last <= 0 {
		return 0, fmt.Errorf("ticker %s: no last price", pair.String())
	}

	logger.WithFields(map[string]interface{}{
		"pair": pair.String(),
		"last": ticker.Last,
	}).Debug("Crypto ticker fetched")

	return ticker.Last, nil
}

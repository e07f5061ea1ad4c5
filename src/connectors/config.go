package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AlpacaAPIKey    string `envconfig:"ALPACA_API_KEY"`
	AlpacaAPISecret string `envconfig:"ALPACA_API_SECRET"`
	// Paper trading endpoint by default for safety.
	AlpacaBaseURL       string `envconfig:"ALPACA_BASE_URL" default:"https://paper-api.alpaca.markets"`
	AlpacaDataBaseURL   string `envconfig:"ALPACA_DATA_BASE_URL" default:"https://data.alpaca.markets"`
	AlpacaStreamBaseURL string `envconfig:"ALPACA_STREAM_BASE_URL" default:"wss://paper-api.alpaca.markets/stream"`

	PolymarketBaseURL string `envconfig:"POLYMARKET_BASE_URL" default:"https://gamma-api.polymarket.com"`
	PolymarketLimit   int    `envconfig:"POLYMARKET_LIMIT" default:"50"`

	RequestTimeout time.Duration `envconfig:"CONNECTOR_TIMEOUT" default:"30s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

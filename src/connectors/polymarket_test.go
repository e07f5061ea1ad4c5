package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListMarkets(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/markets" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("active") != "true" || q.Get("closed") != "false" {
			t.Fatalf("expected active/closed filters, got %v", q)
		}
		if q.Get("limit") != "25" {
			t.Fatalf("expected limit 25, got %q", q.Get("limit"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "mkt-1",
				"question": "Will the Fed cut rates in March?",
				"outcomePrices": "[\"0.65\", \"0.35\"]",
				"volume24hr": 500000.5,
				"liquidityNum": 80000,
				"oneDayPriceChange": 0.05,
				"endDate": "2026-03-18T00:00:00Z",
				"active": true,
				"closed": false
			},
			{
				"id": "mkt-2",
				"question": "Malformed prices market",
				"outcomePrices": "not-json",
				"active": true,
				"closed": false
			}
		]`))
	}))
	defer ts.Close()

	client := NewPolymarketClient(ts.URL, 25)

	markets, err := client.ListMarkets(context.Background())
	if err != nil {
		t.Fatalf("ListMarkets failed: %v", err)
	}
	if len(markets) != 2 {
		t.Fatalf("expected 2 raw records, got %d", len(markets))
	}

	prob, err := markets[0].YesProbability()
	if err != nil {
		t.Fatalf("YesProbability failed: %v", err)
	}
	if prob != 65 {
		t.Fatalf("expected 65%% probability, got %f", prob)
	}

	// Malformed records decode as raw listings; conversion rejects them later.
	if _, err := markets[1].YesProbability(); err == nil {
		t.Fatalf("expected malformed outcome prices to error")
	}
}

func TestListMarketsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	client := NewPolymarketClient(ts.URL, 10)

	if _, err := client.ListMarkets(context.Background()); err == nil {
		t.Fatalf("expected error on HTTP failure")
	}
}

func TestIsCryptoPair(t *testing.T) {
	if !IsCryptoPair("BTC/USD") {
		t.Fatalf("BTC/USD is a crypto pair")
	}
	if IsCryptoPair("NVDA") {
		t.Fatalf("NVDA is not a crypto pair")
	}
	if IsCryptoPair("A/B/C") {
		t.Fatalf("A/B/C is not a valid pair")
	}
}

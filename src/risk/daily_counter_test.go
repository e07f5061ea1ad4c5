package risk

import (
	"testing"
	"time"
)

func TestDailyTradeCounterEnforcesLimit(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	c := NewDailyTradeCounter(3)

	for i := 0; i < 3; i++ {
		if !c.Allow(now) {
			t.Fatalf("execution %d should be allowed", i+1)
		}
		c.Record(now)
	}

	if c.Allow(now) {
		t.Fatalf("fourth execution must be refused")
	}
	if c.Count(now) != 3 {
		t.Fatalf("expected count 3, got %d", c.Count(now))
	}
}

func TestDailyTradeCounterResetsOnNewDay(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 3, 0, 10, 0, 0, time.UTC)

	c := NewDailyTradeCounter(1)
	c.Record(day1)

	if c.Allow(day1) {
		t.Fatalf("limit of one must be exhausted on day one")
	}
	if !c.Allow(day2) {
		t.Fatalf("counter must reset when the calendar day changes")
	}
	if c.Count(day2) != 0 {
		t.Fatalf("expected fresh count on day two, got %d", c.Count(day2))
	}
}

func TestDailyTradeCounterDefaultsLimit(t *testing.T) {
	c := NewDailyTradeCounter(0)
	now := time.Now().UTC()

	for i := 0; i < DefaultDailyTradeLimit; i++ {
		if !c.Allow(now) {
			t.Fatalf("execution %d should be allowed under the default limit", i+1)
		}
		c.Record(now)
	}
	if c.Allow(now) {
		t.Fatalf("default limit must be enforced")
	}
}

package risk

import (
	"time"

	logger "github.com/sirupsen/logrus"
)

// DefaultDailyTradeLimit caps executions per trading day.
const DefaultDailyTradeLimit = 10

// DailyTradeCounter enforces a rolling per-day executed-trade ceiling. It is
// owned by the cycle scheduler and passed into the execution path; the count
// resets when the calendar date moves past the last reset date. Not safe for
// concurrent use: there is exactly one writer by construction.
type DailyTradeCounter struct {
	limit     int
	count     int
	lastReset time.Time
}

func NewDailyTradeCounter(limit int) *DailyTradeCounter {
	if limit <= 0 {
		limit = DefaultDailyTradeLimit
	}
	return &DailyTradeCounter{limit: limit}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (c *DailyTradeCounter) resetIfNewDay(now time.Time) {
	if c.lastReset.IsZero() || !sameDay(c.lastReset, now) {
		if c.count > 0 {
			logger.WithField("previous_count", c.count).Info("New trading day, resetting daily trade counter")
		}
		c.count = 0
		c.lastReset = now
	}
}

// Allow reports whether another execution fits under today's ceiling.
func (c *DailyTradeCounter) Allow(now time.Time) bool {
	c.resetIfNewDay(now)
	return c.count < c.limit
}

// Record counts one execution against today's ceiling.
func (c *DailyTradeCounter) Record(now time.Time) {
	c.resetIfNewDay(now)
	c.count++
}

// Count returns today's executed-trade count.
func (c *DailyTradeCounter) Count(now time.Time) int {
	c.resetIfNewDay(now)
	return c.count
}

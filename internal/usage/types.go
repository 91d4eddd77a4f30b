package usage

import (
	"context"
	"time"
)

// Key identifies one daily usage bucket
type Key struct {
	Day      string // UTC calendar day, YYYY-MM-DD
	CallerID string
}

// Entry is one bucket in a usage snapshot
type Entry struct {
	Day      string `json:"day"`
	CallerID string `json:"caller_id"`
	Count    int64  `json:"count"`
}

// Counter counts generations per caller per day.
// IncrementAndCheck increments first and then compares, atomically per key;
// a ceiling of zero or less means unlimited.
type Counter interface {
	IncrementAndCheck(ctx context.Context, key Key, ceiling int64) (count int64, allowed bool, err error)
	Snapshot(ctx context.Context) ([]Entry, error)
}

const dayLayout = "2006-01-02"

// returns the usage day for t
func Day(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

func Today() string {
	return Day(time.Now())
}

func KeyFor(callerID string, now time.Time) Key {
	return Key{Day: Day(now), CallerID: callerID}
}

// Package timespan measures intervals as rickb777 time spans.
package timespan

import (
	"time"

	"github.com/rickb777/date/v2/timespan"
)

// TimeSpan is a start instant plus a duration.
type TimeSpan = timespan.TimeSpan

// Between returns the span starting at from and ending at to.
func Between(from, to time.Time) TimeSpan {
	return timespan.BetweenTimes(from, to)
}

// Since returns the span from start until now.
func Since(start time.Time) TimeSpan {
	return Between(start, time.Now())
}

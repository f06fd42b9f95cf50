package generator

import (
	"iter"
	"time"
)

// Window is the half-open interval [Start, End) a dataset covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// LastDays returns the window ending at now and spanning days*24h.
func LastDays(now time.Time, days int) Window {
	return Window{
		Start: now.Add(-time.Duration(days) * 24 * time.Hour),
		End:   now,
	}
}

// Timestamps yields Start, Start+interval, ... while strictly before End.
// Every call starts a fresh sequence.
func (w Window) Timestamps(interval time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if interval <= 0 {
			return
		}
		for t := w.Start; t.Before(w.End); t = t.Add(interval) {
			if !yield(t) {
				return
			}
		}
	}
}

// Count is the number of instants Timestamps yields for interval.
func (w Window) Count(interval time.Duration) int {
	if interval <= 0 || !w.Start.Before(w.End) {
		return 0
	}
	span := w.End.Sub(w.Start)
	n := int(span / interval)
	if span%interval != 0 {
		n++
	}
	return n
}

func IsRushHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}

func IsBusinessHours(hour int) bool {
	return hour >= 8 && hour <= 18
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

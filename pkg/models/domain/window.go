package domain

import "time"

const hoursPerWeek = 24 * 7

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// LookbackWindow is the window covering the last days before now.
func LookbackWindow(now time.Time, days int) Window {
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// Previous is the adjacent window of equal length immediately before w.
// Its End is exactly w.Start, so the two never overlap.
func (w Window) Previous() Window {
	d := w.End.Sub(w.Start)
	return Window{Start: w.Start.Add(-d), End: w.Start}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) Weeks() float64 {
	return w.End.Sub(w.Start).Hours() / hoursPerWeek
}

// IsZero reports an unbounded (full history) window.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

package domain

import "github.com/jonboulle/clockwork"

// clock is the package time source. The generator falls back to it for
// undated templates and for time-based seeds; tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

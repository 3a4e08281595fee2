package core

import "time"

// BusyDelay spins on the monotonic clock. It never sleeps or yields,
// so nothing else runs while it waits.
type BusyDelay struct{}

// DelayMS spins for at least ms milliseconds and advances core time to match
func (BusyDelay) DelayMS(ms uint32) {
	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	for time.Now().Before(deadline) {
	}
	SetTime(GetTime() + TimerFromMS(ms))
}

//go:build !tinygo

package core

// getSystemTicks returns the simulated core time (regular Go implementation)
func getSystemTicks() uint32 {
	return systemTicks
}

// setSystemTicks sets the simulated core time (regular Go implementation)
func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}

// SimDelay is a Delayer for host builds. It advances core time instead of
// spinning, so a simulated run is deterministic and instant.
type SimDelay struct {
	Calls   int    // Number of DelayMS calls
	TotalMS uint32 // Sum of all requested delays
}

// DelayMS advances core time by ms
func (d *SimDelay) DelayMS(ms uint32) {
	d.Calls++
	d.TotalMS += ms
	SetTime(GetTime() + TimerFromMS(ms))
}

package core

// Core time runs in milliseconds
const (
	TimerFreq = 1000 // 1kHz core tick
)

var (
	systemTicks uint32
	bootTime    uint32 // Time at boot for uptime calculation
)

// GetTime returns the current core time in ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current core time (targets feed it from hardware, tests from a simulation)
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}

// GetUptime returns ticks elapsed since TimerInit
func GetUptime() uint32 {
	return GetTime() - bootTime
}

// TimerFromMS converts milliseconds to core ticks
func TimerFromMS(ms uint32) uint32 {
	return (ms * TimerFreq) / 1000
}

// TimerToMS converts core ticks to milliseconds
func TimerToMS(ticks uint32) uint32 {
	return (ticks * 1000) / TimerFreq
}

// TimerInit marks the boot instant
func TimerInit() {
	bootTime = GetTime()
}

// ProcessTimers processes scheduled timers
func ProcessTimers() {
	currentTime = GetTime()
	TimerDispatch()
}

// Delayer blocks the caller for a fixed wall-clock duration.
// Implementations must not yield: the delay is a busy wait with a
// deterministic minimum elapsed time.
type Delayer interface {
	DelayMS(ms uint32)
}

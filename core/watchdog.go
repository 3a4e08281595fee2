package core

// SoftResetTimeoutMS is the watchdog timeout armed by SoftReset
const SoftResetTimeoutMS = 30

// WatchdogConfig holds watchdog settings. A zero timeout disables the watchdog.
type WatchdogConfig struct {
	TimeoutMillis uint32
}

// Watchdog is the abstract watchdog timer interface.
// Platform-specific implementations handle the hardware.
type Watchdog interface {
	// Configure sets the timeout used by the next Start
	Configure(config WatchdogConfig) error

	// Start arms the watchdog. Once armed, the device resets unless fed.
	Start() error
}

// SoftReset arms the watchdog with a 30 ms timeout and spins until it
// resets the device. It never returns. Nothing in the blink loop calls it.
func SoftReset(wd Watchdog) {
	disableInterrupts()
	_ = wd.Configure(WatchdogConfig{TimeoutMillis: SoftResetTimeoutMS})
	_ = wd.Start()
	for {
		spinOnce()
	}
}

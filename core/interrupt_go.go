//go:build !tinygo

package core

// State is a placeholder for interrupt state on regular Go
type State uintptr

// interruptsOff simulates the global interrupt flag for tests
var interruptsOff bool

// disableInterrupts clears the simulated interrupt flag and returns the previous state
func disableInterrupts() State {
	if interruptsOff {
		return 0
	}
	interruptsOff = true
	return 1
}

// restoreInterrupts restores the simulated interrupt flag
func restoreInterrupts(state State) {
	interruptsOff = state == 0
}

// InterruptsEnabled reports the simulated interrupt flag
func InterruptsEnabled() bool {
	return !interruptsOff
}

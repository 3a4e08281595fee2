//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts (cli on AVR, cpsid on Cortex-M)
// and returns the state to hand back to restoreInterrupts
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}

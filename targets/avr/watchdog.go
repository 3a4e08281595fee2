//go:build avr

package main

import (
	"blinky/core"
	"device/avr"
	"runtime/volatile"
	"unsafe"
)

var wdtcsr = (*volatile.Register8)(unsafe.Pointer(uintptr(core.AddrWDTCSR)))

// watchdog writes WDTCSR directly so the change-enable store and the final
// store compile to consecutive sts instructions
type watchdog struct {
	control uint8
}

func (w *watchdog) Configure(config core.WatchdogConfig) error {
	w.control = core.WDTControl(config.TimeoutMillis)
	return nil
}

// Start must run with interrupts disabled
func (w *watchdog) Start() error {
	control := w.control
	avr.Asm("wdr")
	wdtcsr.Set(core.WDCE | core.WDE)
	wdtcsr.Set(control)
	return nil
}

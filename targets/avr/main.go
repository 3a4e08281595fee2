//go:build avr

// Register-level blink firmware for the ATmega328P
package main

import (
	"blinky/core"
	"runtime/volatile"
	"unsafe"
)

// reg maps a data-space address onto a volatile register
func reg(addr uint16) core.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(addr)))
}

func main() {
	ports := core.NewPorts(reg)
	wd := &watchdog{}

	prog, err := core.NewProgram(&ports, core.DefaultHardware(), core.BusyDelay{}, wd)
	if err != nil {
		return
	}

	prog.Main()
}

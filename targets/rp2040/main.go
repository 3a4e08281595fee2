//go:build rp2040

package main

import (
	"blinky/core"
	"machine"
	"strconv"
	"time"
)

// LED wiring: the on-board LED and an external LED on GP15
const (
	led1Pin = machine.LED
	led2Pin = machine.GP15
)

// Consecutive loop panics before the board resets itself
const maxLoopPanics = 16

var loopPanics uint32

func main() {
	// Disable the watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	core.SetDebugWriter(USBWriteLine)
	core.SetDebugEnabled(true)
	core.InitAsyncDebug()

	InitClock()
	core.TimerInit()

	core.SetGPIODriver(NewRPGPIODriver())

	// First toggles happen BootWaitMS from now, giving USB CDC time to enumerate
	if _, _, err := core.StartTwoLEDPattern(core.GPIOPin(led1Pin), core.GPIOPin(led2Pin)); err != nil {
		core.DebugPrintln("pattern start failed: " + err.Error())
		return
	}

	for {
		// Recover from panics in the main loop to keep the LEDs running
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
				}
			}()

			UpdateSystemTime()
			core.ProcessTimers()
			loopPanics = 0
		}()

		if loopPanics >= maxLoopPanics {
			core.DebugPrintln("loop panicking, resetting at uptime " + strconv.FormatUint(uint64(core.GetUptime()), 10))
			core.SoftReset(RPWatchdog{})
		}

		// Yield to the async debug writer
		time.Sleep(100 * time.Microsecond)
	}
}

//go:build rp2040

package main

import (
	"blinky/core"
	"machine"
)

// RPWatchdog adapts machine.Watchdog to core.Watchdog
type RPWatchdog struct{}

func (RPWatchdog) Configure(config core.WatchdogConfig) error {
	return machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: config.TimeoutMillis})
}

func (RPWatchdog) Start() error {
	return machine.Watchdog.Start()
}

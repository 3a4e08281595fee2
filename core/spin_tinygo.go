//go:build tinygo

package core

// spinOnce is an empty idle tick; the watchdog ends the spin
func spinOnce() {}

package core

import "testing"

// resetCore puts the package globals back to a clean power-on state
func resetCore(t *testing.T) {
	t.Helper()
	SetTime(0)
	TimerInit()
	ResetTimers()
	ClearSpinHooks()
	restoreInterrupts(1)
	SetDebugEnabled(false)
	SetDebugWriter(func(string) {})
	SetGPIODriver(nil)
	t.Cleanup(func() {
		ResetTimers()
		ClearSpinHooks()
		SetGPIODriver(nil)
	})
}

// simBoard is a zero-initialized simulated ATmega328P
type simBoard struct {
	file  *RegisterFile
	ports Ports
	delay *SimDelay
	wd    *AVRWatchdog
	emu   *WatchdogEmulator
}

func newSimBoard(t *testing.T) *simBoard {
	t.Helper()
	file := NewRegisterFile()
	b := &simBoard{
		file:  file,
		ports: NewPorts(file.Register),
		delay: &SimDelay{},
	}
	b.emu = NewWatchdogEmulator(file)
	b.wd = &AVRWatchdog{Control: file.Register(AddrWDTCSR), Reset: b.emu.Feed}
	return b
}

func (b *simBoard) program(t *testing.T, cfg HardwareConfig) *Program {
	t.Helper()
	p, err := NewProgram(&b.ports, cfg, b.delay, b.wd)
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	return p
}

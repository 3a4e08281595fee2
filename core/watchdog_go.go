//go:build !tinygo

package core

// ResetEvent is raised (as a panic value) when a simulated watchdog expires
type ResetEvent struct {
	At uint32 // Core time of the reset
}

var spinHooks []func()

// AddSpinHook registers a function run on every simulated idle-spin tick
func AddSpinHook(hook func()) {
	spinHooks = append(spinHooks, hook)
}

// ClearSpinHooks removes all spin hooks
func ClearSpinHooks() {
	spinHooks = nil
}

// spinOnce advances simulated time by one tick so watchdog emulation can expire
func spinOnce() {
	SetTime(GetTime() + 1)
	for _, hook := range spinHooks {
		hook()
	}
}

// CatchReset runs fn and reports whether it ended in a simulated watchdog reset.
// Any other panic is propagated.
func CatchReset(fn func()) (ev ResetEvent, reset bool) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(ResetEvent)
			if !ok {
				panic(r)
			}
			ev, reset = e, true
		}
	}()
	fn()
	return ResetEvent{}, false
}

// WatchdogEmulator models the AVR watchdog counter on top of a RegisterFile.
// It reads WDTCSR, restarts its count on every wdr and every WDTCSR write,
// and raises a ResetEvent once the armed timeout passes.
type WatchdogEmulator struct {
	file    *RegisterFile
	lastFed uint32
	Resets  int
}

// NewWatchdogEmulator attaches an emulator to file and registers it as a spin hook
func NewWatchdogEmulator(file *RegisterFile) *WatchdogEmulator {
	e := &WatchdogEmulator{file: file, lastFed: GetTime()}
	AddSpinHook(e.Check)
	return e
}

// Feed restarts the count (wdr)
func (e *WatchdogEmulator) Feed() {
	e.lastFed = GetTime()
}

// Armed reports whether WDTCSR has the watchdog enabled
func (e *WatchdogEmulator) Armed() bool {
	return e.file.Peek(AddrWDTCSR)&WDE != 0
}

// TimeoutMS returns the currently programmed timeout
func (e *WatchdogEmulator) TimeoutMS() uint32 {
	return WDTTimeoutMS(WDTPrescalerFromBits(e.file.Peek(AddrWDTCSR)))
}

// Check raises a ResetEvent if the watchdog is armed and expired
func (e *WatchdogEmulator) Check() {
	if !e.Armed() {
		return
	}
	start := e.lastFed
	if w, ok := e.file.LastWrite(AddrWDTCSR); ok && w.Time > start {
		start = w.Time
	}
	if GetTime()-start >= TimerFromMS(e.TimeoutMS()) {
		e.Resets++
		e.file.Reset()
		restoreInterrupts(1)
		panic(ResetEvent{At: GetTime()})
	}
}

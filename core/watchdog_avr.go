package core

// WDTCSR bits
const (
	WDIF = 1 << 7
	WDIE = 1 << 6
	WDP3 = 1 << 5
	WDCE = 1 << 4
	WDE  = 1 << 3
	WDP2 = 1 << 2
	WDP1 = 1 << 1
	WDP0 = 1 << 0
)

// Nominal timeouts of the ten watchdog prescaler settings, in ms
var wdtTimeouts = [10]uint32{15, 30, 60, 120, 250, 500, 1000, 2000, 4000, 8000}

// WDTPrescaler returns the prescaler index with the longest nominal timeout not
// exceeding ms. Timeouts below the shortest setting use the shortest.
func WDTPrescaler(ms uint32) uint8 {
	idx := uint8(0)
	for i, t := range wdtTimeouts {
		if t <= ms {
			idx = uint8(i)
		}
	}
	return idx
}

// WDTTimeoutMS returns the nominal timeout of prescaler index p
func WDTTimeoutMS(p uint8) uint32 {
	if int(p) >= len(wdtTimeouts) {
		return wdtTimeouts[len(wdtTimeouts)-1]
	}
	return wdtTimeouts[p]
}

// wdtPrescalerBits spreads a prescaler index over WDP0..WDP3
func wdtPrescalerBits(p uint8) uint8 {
	bits := p & 0x07
	if p&0x08 != 0 {
		bits |= WDP3
	}
	return bits
}

// WDTPrescalerFromBits recovers the prescaler index from a WDTCSR value
func WDTPrescalerFromBits(v uint8) uint8 {
	p := v & 0x07
	if v&WDP3 != 0 {
		p |= 0x08
	}
	return p
}

// WDTControl returns the final WDTCSR value for a timeout: WDE plus the
// prescaler bits, or 0 to disable the watchdog
func WDTControl(ms uint32) uint8 {
	if ms == 0 {
		return 0
	}
	return WDE | wdtPrescalerBits(WDTPrescaler(ms))
}

// AVRWatchdog drives the ATmega watchdog through WDTCSR
type AVRWatchdog struct {
	Control Register8 // WDTCSR
	Reset   func()    // Executes wdr

	control uint8 // Final WDTCSR value, computed by Configure
}

// Configure computes the WDTCSR value for Start
func (w *AVRWatchdog) Configure(config WatchdogConfig) error {
	w.control = WDTControl(config.TimeoutMillis)
	return nil
}

// Start runs the timed change-enable sequence: feed, set WDCE|WDE, then
// write the final value within four cycles. Interrupts must be off, and
// nothing but the two stores may sit between the writes.
func (w *AVRWatchdog) Start() error {
	if w.Reset != nil {
		w.Reset()
	}
	control := w.control
	w.Control.Set(WDCE | WDE)
	w.Control.Set(control)
	return nil
}

package core

// Blink timing
const (
	SettleDelayMS = 500 // Delay after register setup
	HalfPeriodMS  = 500 // Delay after each LED clear
)

// Program is the register-level blink firmware: one-time port setup
// followed by an endless LED loop
type Program struct {
	ports    *Ports
	config   HardwareConfig
	delay    Delayer
	watchdog Watchdog

	led     *Port
	ledMask uint8

	Iterations uint32 // Completed loop iterations
}

// NewProgram binds a program to its ports, delay source and watchdog
func NewProgram(ports *Ports, config HardwareConfig, delay Delayer, watchdog Watchdog) (*Program, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	led, ok := ports.ByID(config.LEDPort)
	if !ok {
		return nil, ErrUnknownPort
	}
	return &Program{
		ports:    ports,
		config:   config,
		delay:    delay,
		watchdog: watchdog,
		led:      led,
		ledMask:  config.LEDMask(),
	}, nil
}

// Init writes every direction and pull-up register once, then waits for the
// hardware to settle. It must run exactly once, before anything else.
func (p *Program) Init() {
	p.ports.B.DDR.Set(p.config.DDRB)
	p.ports.C.DDR.Set(p.config.DDRC)
	p.ports.D.DDR.Set(p.config.DDRD)

	p.ports.B.PORT.Set(p.config.PORTB)
	p.ports.D.PORT.Set(p.config.PORTD)

	if debugEnabled {
		DebugPrintln("init: DDRB=" + bin8(p.config.DDRB) +
			" DDRC=" + bin8(p.config.DDRC) +
			" DDRD=" + bin8(p.config.DDRD) +
			" PORTB=" + bin8(p.config.PORTB) +
			" PORTD=" + bin8(p.config.PORTD))
	}

	p.delay.DelayMS(SettleDelayMS)
}

// Step runs one loop iteration. Both halves clear the LED bit: the pin is
// driven low and held low, it never goes high.
func (p *Program) Step() {
	ClearBits(p.led.PORT, p.ledMask)
	p.delay.DelayMS(HalfPeriodMS)
	ClearBits(p.led.PORT, p.ledMask)
	p.delay.DelayMS(HalfPeriodMS)

	p.Iterations++
	if debugEnabled {
		DebugAsync("loop " + utoa(p.Iterations))
	}
}

// RunIterations runs n loop iterations and returns
func (p *Program) RunIterations(n int) {
	for i := 0; i < n; i++ {
		p.Step()
	}
}

// ToggleLoop runs the LED loop forever. Only power-off or reset ends it.
func (p *Program) ToggleLoop() {
	for {
		p.Step()
	}
}

// Main is the firmware entry point
func (p *Program) Main() {
	p.Init()
	p.ToggleLoop()
}

// SoftReset resets the device through the watchdog. It never returns.
func (p *Program) SoftReset() {
	DebugPrintln("soft reset")
	SoftReset(p.watchdog)
}

// LEDPort returns the port carrying the LED
func (p *Program) LEDPort() *Port {
	return p.led
}

// LEDMask returns the LED bit mask
func (p *Program) LEDMask() uint8 {
	return p.ledMask
}

package core

import "testing"

func TestInitWritesDirectionRegisters(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())

	p.Init()

	testCases := []struct {
		name     string
		addr     uint16
		expected uint8
	}{
		{"DDRB", AddrDDRB, DDRBState},
		{"DDRC", AddrDDRC, DDRCState},
		{"DDRD", AddrDDRD, DDRDState},
	}

	for _, tc := range testCases {
		if got := b.file.Peek(tc.addr); got != tc.expected {
			t.Errorf("%s: expected %s, got %s", tc.name, bin8(tc.expected), bin8(got))
		}
		if len(b.file.WritesTo(tc.addr)) != 1 {
			t.Errorf("%s: expected exactly one write, got %d", tc.name, len(b.file.WritesTo(tc.addr)))
		}
	}
}

func TestInitWritesPullUpRegisters(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)

	cfg := DefaultHardware()
	cfg.PORTB = 0b11110000
	cfg.PORTD = 0b00000101
	p := b.program(t, cfg)

	p.Init()

	if got := b.file.Peek(AddrPORTB); got != cfg.PORTB {
		t.Errorf("PORTB: expected %s, got %s", bin8(cfg.PORTB), bin8(got))
	}
	if got := b.file.Peek(AddrPORTD); got != cfg.PORTD {
		t.Errorf("PORTD: expected %s, got %s", bin8(cfg.PORTD), bin8(got))
	}
	if len(b.file.WritesTo(AddrPORTC)) != 0 {
		t.Errorf("PORTC should not be written during init")
	}
}

func TestInitSettles(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())

	p.Init()

	if b.delay.Calls != 1 || b.delay.TotalMS != SettleDelayMS {
		t.Errorf("Expected one %dms delay, got %d calls totalling %dms", SettleDelayMS, b.delay.Calls, b.delay.TotalMS)
	}
	for _, w := range b.file.Trace() {
		if w.Time != 0 {
			t.Errorf("Register write at %#x happened after the settle delay (t=%d)", w.Addr, w.Time)
		}
	}
}

func TestLoopClearsLEDBit(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)

	// Start with every output bit high so a clear is observable
	cfg := DefaultHardware()
	cfg.PORTB = 0xFF
	p := b.program(t, cfg)
	p.Init()

	start := len(b.file.Trace())
	p.RunIterations(10)

	writes := b.file.Trace()[start:]
	if len(writes) != 20 {
		t.Fatalf("Expected 20 PORTB writes for 10 iterations, got %d", len(writes))
	}
	for i, w := range writes {
		if w.Addr != AddrPORTB {
			t.Errorf("Write %d: expected PORTB, got %#x", i, w.Addr)
		}
		if w.Value&Bit(LEDBit) != 0 {
			t.Errorf("Write %d: LED bit still set (%s)", i, bin8(w.Value))
		}
		// Clearing the LED must leave the other bits alone
		if w.Value != 0xFF&^Bit(LEDBit) {
			t.Errorf("Write %d: expected %s, got %s", i, bin8(0xFF&^Bit(LEDBit)), bin8(w.Value))
		}
	}
}

func TestLoopNeverDrivesLEDHigh(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())
	p.Init()

	for i := 0; i < 50; i++ {
		p.Step()
		if HasBits(p.LEDPort().PORT, p.LEDMask()) {
			t.Fatalf("Iteration %d: LED bit went high", i)
		}
	}
}

func TestLoopTiming(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())
	p.Init()

	const iterations = 25
	p.RunIterations(iterations)

	clears := b.file.WritesTo(AddrPORTB)[1:] // skip the init write
	if len(clears) != 2*iterations {
		t.Fatalf("Expected %d clears, got %d", 2*iterations, len(clears))
	}
	for i := 1; i < len(clears); i++ {
		if gap := clears[i].Time - clears[i-1].Time; gap != HalfPeriodMS {
			t.Errorf("Clear %d: expected %dms since previous, got %dms", i, HalfPeriodMS, gap)
		}
	}
	if p.Iterations != iterations {
		t.Errorf("Expected %d iterations, got %d", iterations, p.Iterations)
	}
}

func TestEndToEndTwoIterations(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())

	p.Init()

	if got := b.file.Peek(AddrDDRD); got != 0b00000010 {
		t.Errorf("DDRD: expected 0b00000010, got %s", bin8(got))
	}
	if got := b.file.Peek(AddrDDRB); got != 0b00001000 {
		t.Errorf("DDRB: expected 0b00001000, got %s", bin8(got))
	}

	before := b.delay.TotalMS
	p.RunIterations(2)

	if b.file.Peek(AddrPORTB)&Bit(3) != 0 {
		t.Errorf("LED bit set after loop")
	}
	if elapsed := b.delay.TotalMS - before; elapsed != 2000 {
		t.Errorf("Expected 2000ms of loop delay, got %dms", elapsed)
	}
	if GetTime() != 2500 {
		t.Errorf("Expected core time 2500ms (settle + loop), got %d", GetTime())
	}
}

func TestToggleLoopRunsUntilReset(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())
	p.Init()

	// The loop never returns on its own; stop it with a simulated reset
	const stopAfter = 100
	ev, reset := CatchReset(func() {
		for {
			p.Step()
			if p.Iterations == stopAfter {
				panic(ResetEvent{At: GetTime()})
			}
		}
	})
	if !reset {
		t.Fatal("Loop returned without a reset")
	}
	if p.Iterations != stopAfter {
		t.Errorf("Expected %d iterations, got %d", stopAfter, p.Iterations)
	}
	t.Logf("Loop stopped at t=%dms", ev.At)
}

func TestNewProgramRejectsBadConfig(t *testing.T) {
	resetCore(t)
	b := newSimBoard(t)

	cfg := DefaultHardware()
	cfg.LEDBit = 8
	if _, err := NewProgram(&b.ports, cfg, b.delay, b.wd); err != ErrInvalidBit {
		t.Errorf("Expected ErrInvalidBit, got %v", err)
	}

	cfg = DefaultHardware()
	cfg.LEDPort = 'A'
	if _, err := NewProgram(&b.ports, cfg, b.delay, b.wd); err != ErrUnknownPort {
		t.Errorf("Expected ErrUnknownPort, got %v", err)
	}
}

func TestDebugOutput(t *testing.T) {
	resetCore(t)
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)

	b := newSimBoard(t)
	p := b.program(t, DefaultHardware())
	p.Init()

	if len(lines) != 1 {
		t.Fatalf("Expected one debug line, got %d", len(lines))
	}
	expected := "init: DDRB=0b00001000 DDRC=0b00000000 DDRD=0b00000010 PORTB=0b00000000 PORTD=0b00000000"
	if lines[0] != expected {
		t.Errorf("Expected %q, got %q", expected, lines[0])
	}
}

// memRegister is a plain in-memory register with no write trace
type memRegister uint8

func (r *memRegister) Get() uint8      { return uint8(*r) }
func (r *memRegister) Set(value uint8) { *r = memRegister(value) }

func TestStepDoesNotAllocate(t *testing.T) {
	resetCore(t)
	var regs [DataSpaceSize]memRegister
	ports := NewPorts(func(addr uint16) Register8 { return &regs[addr] })

	p, err := NewProgram(&ports, DefaultHardware(), &SimDelay{}, &AVRWatchdog{Control: &regs[AddrWDTCSR]})
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}
	p.Init()

	if allocs := testing.AllocsPerRun(100, p.Step); allocs != 0 {
		t.Errorf("Expected no allocations per Step with debug off, got %.1f", allocs)
	}
	if uint8(regs[AddrPORTB])&p.LEDMask() != 0 {
		t.Error("LED bit set after Step")
	}
}

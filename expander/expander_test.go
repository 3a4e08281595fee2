package expander

import (
	"testing"

	"blinky/core"
)

func TestDirectionRegisterInverts(t *testing.T) {
	bus := NewMemBus(DefaultAddress)
	dev := New(bus, DefaultAddress)
	port := dev.Port(core.PortB)

	if got := port.DDR.Get(); got != 0 {
		t.Errorf("Power-on direction: expected all inputs (0), got %s", core.FormatBinary(got))
	}

	port.DDR.Set(core.DDRBState)

	if got := bus.Peek(DefaultAddress, RegIODIR); got != 0b11110111 {
		t.Errorf("Expected IODIR=0b11110111, got %s", core.FormatBinary(got))
	}
	if got := port.DDR.Get(); got != core.DDRBState {
		t.Errorf("Expected DDR readback %s, got %s", core.FormatBinary(core.DDRBState), core.FormatBinary(got))
	}
}

func TestValueRegisterSplitsOutputsAndPullUps(t *testing.T) {
	bus := NewMemBus(DefaultAddress)
	dev := New(bus, DefaultAddress)
	port := dev.Port(core.PortB)

	port.DDR.Set(0b00001111)
	port.PORT.Set(0b10100101)

	if got := bus.Peek(DefaultAddress, RegOLAT); got != 0b00000101 {
		t.Errorf("Expected OLAT=0b00000101, got %s", core.FormatBinary(got))
	}
	if got := bus.Peek(DefaultAddress, RegGPPU); got != 0b10100000 {
		t.Errorf("Expected GPPU=0b10100000, got %s", core.FormatBinary(got))
	}
	if got := port.PORT.Get(); got != 0b10100101 {
		t.Errorf("Expected PORT readback 0b10100101, got %s", core.FormatBinary(got))
	}
}

func TestBlinkProgramOnExpander(t *testing.T) {
	core.SetTime(0)
	defer core.SetTime(0)

	bus := NewMemBus(DefaultAddress)
	dev := New(bus, DefaultAddress)

	file := core.NewRegisterFile()
	ports := core.NewPorts(file.Register)
	ports.B = dev.Port(core.PortB)

	delay := &core.SimDelay{}
	prog, err := core.NewProgram(&ports, core.DefaultHardware(), delay, nil)
	if err != nil {
		t.Fatalf("NewProgram failed: %v", err)
	}

	prog.Init()
	prog.RunIterations(2)

	if dev.LastErr() != nil {
		t.Fatalf("Unexpected bus error: %v", dev.LastErr())
	}
	if got := bus.Peek(DefaultAddress, RegIODIR); got != ^core.DDRBState {
		t.Errorf("Expected IODIR=%s, got %s", core.FormatBinary(^core.DDRBState), core.FormatBinary(got))
	}
	olat := bus.WritesTo(DefaultAddress, RegOLAT)
	// One write from init, two per iteration
	if len(olat) != 5 {
		t.Fatalf("Expected 5 OLAT writes, got %d", len(olat))
	}
	for i, v := range olat {
		if v&core.Bit(core.LEDBit) != 0 {
			t.Errorf("OLAT write %d drove the LED high: %s", i, core.FormatBinary(v))
		}
	}
	if delay.TotalMS != 2500 {
		t.Errorf("Expected 2500ms of delay, got %d", delay.TotalMS)
	}
	// Port D stays on-chip
	if file.Peek(core.AddrDDRD) != core.DDRDState {
		t.Errorf("Expected on-chip DDRD=%s, got %s", core.FormatBinary(core.DDRDState), core.FormatBinary(file.Peek(core.AddrDDRD)))
	}
}

func TestBusErrorsAreRecorded(t *testing.T) {
	bus := NewMemBus(DefaultAddress)
	dev := New(bus, 0x27)
	port := dev.Port(core.PortB)

	port.PORT.Set(0xFF)
	if dev.LastErr() != ErrNoDevice {
		t.Errorf("Expected ErrNoDevice, got %v", dev.LastErr())
	}
	if len(bus.Ops()) != 0 {
		t.Errorf("No ops should reach a missing device, got %d", len(bus.Ops()))
	}
}

func TestMemBusSequentialAccess(t *testing.T) {
	bus := NewMemBus(DefaultAddress)

	if err := bus.Tx(DefaultAddress, []byte{RegGPPU, 0x11, 0x22}, nil); err != nil {
		t.Fatalf("Tx write failed: %v", err)
	}
	r := make([]byte, 2)
	if err := bus.Tx(DefaultAddress, []byte{RegGPPU}, r); err != nil {
		t.Fatalf("Tx read failed: %v", err)
	}
	if r[0] != 0x11 || r[1] != 0x22 {
		t.Errorf("Expected [0x11 0x22], got %#v", r)
	}
	if err := bus.Tx(DefaultAddress, nil, r); err != ErrBadRequest {
		t.Errorf("Expected ErrBadRequest for empty write, got %v", err)
	}
	if err := bus.Tx(DefaultAddress, []byte{RegOLAT, 1, 2}, nil); err != ErrBadRequest {
		t.Errorf("Expected ErrBadRequest past the last register, got %v", err)
	}
}

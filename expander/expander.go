// Package expander presents an MCP23008-compatible I2C GPIO expander as a
// core.Port, so the blink program can drive an LED wired to the expander
// exactly like one wired to an on-chip port.
package expander

import (
	"blinky/core"

	"tinygo.org/x/drivers"
)

// DefaultAddress is the expander address with A2..A0 tied low
const DefaultAddress = 0x20

// MCP23008 register map
const (
	RegIODIR   = 0x00 // 1 = input
	RegIPOL    = 0x01
	RegGPINTEN = 0x02
	RegDEFVAL  = 0x03
	RegINTCON  = 0x04
	RegIOCON   = 0x05
	RegGPPU    = 0x06 // 1 = pull-up on
	RegINTF    = 0x07
	RegINTCAP  = 0x08
	RegGPIO    = 0x09
	RegOLAT    = 0x0A

	numRegisters = 11
)

// Device is one expander on an I2C bus
type Device struct {
	bus     drivers.I2C
	addr    uint16
	lastErr error
}

// New creates a device handle; nothing is sent on the bus
func New(bus drivers.I2C, addr uint16) *Device {
	return &Device{bus: bus, addr: addr}
}

// ReadRegister reads one register
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := d.bus.Tx(d.addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteRegister writes one register
func (d *Device) WriteRegister(reg, value uint8) error {
	return d.bus.Tx(d.addr, []byte{reg, value}, nil)
}

// LastErr returns the most recent bus error seen through a Port register.
// Register8 cannot report failures, so they are parked here.
func (d *Device) LastErr() error {
	return d.lastErr
}

func (d *Device) read(reg uint8) uint8 {
	v, err := d.ReadRegister(reg)
	if err != nil {
		d.lastErr = err
		core.DebugPrintln("expander: read failed")
	}
	return v
}

func (d *Device) write(reg, value uint8) {
	if err := d.WriteRegister(reg, value); err != nil {
		d.lastErr = err
		core.DebugPrintln("expander: write failed")
	}
}

// Port returns the expander's eight pins as a core.Port named id
func (d *Device) Port(id core.PortID) core.Port {
	return core.Port{
		ID:   id,
		PIN:  &plainRegister{dev: d, reg: RegGPIO},
		DDR:  &directionRegister{dev: d},
		PORT: &valueRegister{dev: d},
	}
}

// directionRegister maps the AVR convention (1 = output) onto IODIR (1 = input)
type directionRegister struct {
	dev *Device
}

func (r *directionRegister) Get() uint8 {
	return ^r.dev.read(RegIODIR)
}

func (r *directionRegister) Set(value uint8) {
	r.dev.write(RegIODIR, ^value)
}

// valueRegister folds OLAT (outputs) and GPPU (inputs) into one
// AVR-style PORT register
type valueRegister struct {
	dev *Device
}

func (r *valueRegister) Get() uint8 {
	inputs := r.dev.read(RegIODIR)
	return r.dev.read(RegOLAT)&^inputs | r.dev.read(RegGPPU)&inputs
}

func (r *valueRegister) Set(value uint8) {
	inputs := r.dev.read(RegIODIR)
	r.dev.write(RegOLAT, value&^inputs)
	r.dev.write(RegGPPU, value&inputs)
}

type plainRegister struct {
	dev *Device
	reg uint8
}

func (r *plainRegister) Get() uint8 {
	return r.dev.read(r.reg)
}

func (r *plainRegister) Set(value uint8) {
	r.dev.write(r.reg, value)
}

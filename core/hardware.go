package core

import "errors"

// Port direction settings, 1 = out, 0 = in.
//
//	bits 76543210
const (
	DDRBState uint8 = 0b00001000
	DDRCState uint8 = 0b00000000
	DDRDState uint8 = 0b00000010
)

// Pull-up settings, 1 = on, 0 = off.
//
//	bits 76543210
const (
	PORTBState uint8 = 0b00000000
	PORTDState uint8 = 0b00000000
)

// LED wiring
const (
	LEDPort PortID = PortB
	LEDBit  uint8  = 3
)

var (
	ErrUnknownPort = errors.New("unknown_port")
	ErrInvalidBit  = errors.New("invalid_bit")
)

// HardwareConfig carries the register masks written at boot and the LED location.
// Firmware always uses DefaultHardware; other values only come from host tooling.
type HardwareConfig struct {
	DDRB  uint8
	DDRC  uint8
	DDRD  uint8
	PORTB uint8
	PORTD uint8

	LEDPort PortID
	LEDBit  uint8
}

// DefaultHardware returns the compile-time board configuration
func DefaultHardware() HardwareConfig {
	return HardwareConfig{
		DDRB:    DDRBState,
		DDRC:    DDRCState,
		DDRD:    DDRDState,
		PORTB:   PORTBState,
		PORTD:   PORTDState,
		LEDPort: LEDPort,
		LEDBit:  LEDBit,
	}
}

// Validate checks that the LED location exists on the device
func (c HardwareConfig) Validate() error {
	switch c.LEDPort {
	case PortB, PortC, PortD:
	default:
		return ErrUnknownPort
	}
	if c.LEDBit > 7 {
		return ErrInvalidBit
	}
	return nil
}

// LEDMask returns the LED bit as a register mask
func (c HardwareConfig) LEDMask() uint8 {
	return Bit(c.LEDBit)
}

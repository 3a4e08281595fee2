package core

import "errors"

var ErrUnknownPin = errors.New("unknown_pin")

// PortPin numbers a pin as port*8 + bit, ports ordered B, C, D
func PortPin(id PortID, bit uint8) GPIOPin {
	switch id {
	case PortC:
		return GPIOPin(8 + uint32(bit&7))
	case PortD:
		return GPIOPin(16 + uint32(bit&7))
	}
	return GPIOPin(bit & 7)
}

// PortGPIO implements GPIODriver directly on port registers
type PortGPIO struct {
	ports *Ports
}

// NewPortGPIO creates a GPIO driver over ports
func NewPortGPIO(ports *Ports) *PortGPIO {
	return &PortGPIO{ports: ports}
}

func (d *PortGPIO) resolve(pin GPIOPin) (*Port, uint8, error) {
	var id PortID
	switch pin / 8 {
	case 0:
		id = PortB
	case 1:
		id = PortC
	case 2:
		id = PortD
	default:
		return nil, 0, ErrUnknownPin
	}
	p, _ := d.ports.ByID(id)
	return p, Bit(uint8(pin % 8)), nil
}

// ConfigureOutput sets the DDR bit
func (d *PortGPIO) ConfigureOutput(pin GPIOPin) error {
	p, mask, err := d.resolve(pin)
	if err != nil {
		return err
	}
	SetBits(p.DDR, mask)
	return nil
}

// ConfigureInputPullUp clears the DDR bit and sets the PORT bit
func (d *PortGPIO) ConfigureInputPullUp(pin GPIOPin) error {
	p, mask, err := d.resolve(pin)
	if err != nil {
		return err
	}
	ClearBits(p.DDR, mask)
	SetBits(p.PORT, mask)
	return nil
}

// SetPin drives the PORT bit
func (d *PortGPIO) SetPin(pin GPIOPin, value bool) error {
	p, mask, err := d.resolve(pin)
	if err != nil {
		return err
	}
	if value {
		SetBits(p.PORT, mask)
	} else {
		ClearBits(p.PORT, mask)
	}
	return nil
}

// GetPin reads the output latch for outputs and the PIN register for inputs
func (d *PortGPIO) GetPin(pin GPIOPin) (bool, error) {
	p, mask, err := d.resolve(pin)
	if err != nil {
		return false, err
	}
	if HasBits(p.DDR, mask) {
		return HasBits(p.PORT, mask), nil
	}
	return HasBits(p.PIN, mask), nil
}

package core

// PortID names an I/O port by its datasheet letter
type PortID byte

const (
	PortB PortID = 'B'
	PortC PortID = 'C'
	PortD PortID = 'D'
)

func (id PortID) String() string {
	return "PORT" + string(rune(id))
}

// ATmega328P data-space register addresses
const (
	AddrPINB  = 0x23
	AddrDDRB  = 0x24
	AddrPORTB = 0x25
	AddrPINC  = 0x26
	AddrDDRC  = 0x27
	AddrPORTC = 0x28
	AddrPIND  = 0x29
	AddrDDRD  = 0x2A
	AddrPORTD = 0x2B

	AddrWDTCSR = 0x60
)

// Port is one GPIO port's register triple.
//
// DDR selects direction per bit (1 = output, 0 = input). PORT drives the
// output level for output bits and enables the pull-up for input bits.
// PIN reads the pin levels.
type Port struct {
	ID   PortID
	PIN  Register8
	DDR  Register8
	PORT Register8
}

// Ports is the port set of the target device
type Ports struct {
	B Port
	C Port
	D Port
}

// NewPorts builds the ATmega328P port set, resolving each register address
// through reg. Targets pass a volatile mapping, hosts a RegisterFile.
func NewPorts(reg func(addr uint16) Register8) Ports {
	return Ports{
		B: Port{ID: PortB, PIN: reg(AddrPINB), DDR: reg(AddrDDRB), PORT: reg(AddrPORTB)},
		C: Port{ID: PortC, PIN: reg(AddrPINC), DDR: reg(AddrDDRC), PORT: reg(AddrPORTC)},
		D: Port{ID: PortD, PIN: reg(AddrPIND), DDR: reg(AddrDDRD), PORT: reg(AddrPORTD)},
	}
}

// ByID returns the port named id
func (p *Ports) ByID(id PortID) (*Port, bool) {
	switch id {
	case PortB:
		return &p.B, true
	case PortC:
		return &p.C, true
	case PortD:
		return &p.D, true
	}
	return nil, false
}

package expander

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

var (
	ErrNoDevice   = errors.New("no device at address")
	ErrBadRequest = errors.New("bad i2c request")
)

// Compile-time check.
var _ drivers.I2C = (*MemBus)(nil)

// BusOp is one transaction seen by MemBus
type BusOp struct {
	Addr  uint16
	Reg   uint8
	Write bool
	Value uint8
}

// MemBus is an in-memory I2C bus holding emulated MCP23008 chips.
// Register pointers auto-increment like the real part with SEQOP enabled.
type MemBus struct {
	mu    sync.Mutex
	chips map[uint16]*[numRegisters]uint8
	ops   []BusOp
}

// NewMemBus creates a bus with one powered-up chip per address
func NewMemBus(addrs ...uint16) *MemBus {
	b := &MemBus{chips: make(map[uint16]*[numRegisters]uint8)}
	for _, a := range addrs {
		regs := &[numRegisters]uint8{}
		regs[RegIODIR] = 0xFF // power-on: all inputs
		b.chips[a] = regs
	}
	return b
}

// Tx implements drivers.I2C. The first written byte selects the register;
// following bytes are written, then len(r) bytes are read.
func (b *MemBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, ok := b.chips[addr]
	if !ok {
		return ErrNoDevice
	}
	if len(w) == 0 {
		return ErrBadRequest
	}

	reg := w[0]
	for _, v := range w[1:] {
		if int(reg) >= numRegisters {
			return ErrBadRequest
		}
		regs[reg] = v
		b.ops = append(b.ops, BusOp{Addr: addr, Reg: reg, Write: true, Value: v})
		reg++
	}
	for i := range r {
		if int(reg) >= numRegisters {
			return ErrBadRequest
		}
		r[i] = regs[reg]
		b.ops = append(b.ops, BusOp{Addr: addr, Reg: reg, Value: r[i]})
		reg++
	}
	return nil
}

// Peek returns a chip register without recording an op
func (b *MemBus) Peek(addr uint16, reg uint8) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if regs, ok := b.chips[addr]; ok && int(reg) < numRegisters {
		return regs[reg]
	}
	return 0
}

// Ops returns a copy of every transaction so far
func (b *MemBus) Ops() []BusOp {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]BusOp, len(b.ops))
	copy(out, b.ops)
	return out
}

// WritesTo returns the values written to reg on addr, oldest first
func (b *MemBus) WritesTo(addr uint16, reg uint8) []uint8 {
	var out []uint8
	for _, op := range b.Ops() {
		if op.Write && op.Addr == addr && op.Reg == reg {
			out = append(out, op.Value)
		}
	}
	return out
}

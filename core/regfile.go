package core

// DataSpaceSize covers the register and extended I/O area of an ATmega328P
const DataSpaceSize = 0x100

// RegisterWrite is one entry of the RegisterFile write trace
type RegisterWrite struct {
	Addr  uint16 // Data-space address
	Value uint8  // Value written
	Time  uint32 // Core time (ms) at the write
}

// RegisterFile is a zero-initialized simulated data space.
// Every write is appended to an ordered trace so tests and the host
// simulator can replay what the firmware did to the hardware.
type RegisterFile struct {
	mem   [DataSpaceSize]uint8
	trace []RegisterWrite
}

// NewRegisterFile creates a register file with all registers cleared
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Register returns a Register8 bound to addr
func (f *RegisterFile) Register(addr uint16) Register8 {
	return &simRegister{file: f, addr: addr % DataSpaceSize}
}

// Peek reads a register without going through the Register8 interface
func (f *RegisterFile) Peek(addr uint16) uint8 {
	return f.mem[addr%DataSpaceSize]
}

// Trace returns a copy of every write recorded so far, oldest first
func (f *RegisterFile) Trace() []RegisterWrite {
	out := make([]RegisterWrite, len(f.trace))
	copy(out, f.trace)
	return out
}

// TraceLen returns the number of recorded writes
func (f *RegisterFile) TraceLen() int {
	return len(f.trace)
}

// WritesTo returns the recorded writes that targeted addr
func (f *RegisterFile) WritesTo(addr uint16) []RegisterWrite {
	var out []RegisterWrite
	for _, w := range f.trace {
		if w.Addr == addr {
			out = append(out, w)
		}
	}
	return out
}

// LastWrite returns the most recent write to addr
func (f *RegisterFile) LastWrite(addr uint16) (RegisterWrite, bool) {
	for i := len(f.trace) - 1; i >= 0; i-- {
		if f.trace[i].Addr == addr {
			return f.trace[i], true
		}
	}
	return RegisterWrite{}, false
}

// Reset clears every register, as a power-on reset would. The trace is kept.
func (f *RegisterFile) Reset() {
	f.mem = [DataSpaceSize]uint8{}
}

// ClearTrace drops the recorded writes
func (f *RegisterFile) ClearTrace() {
	f.trace = nil
}

// simRegister is a single addressed cell of a RegisterFile
type simRegister struct {
	file *RegisterFile
	addr uint16
}

func (r *simRegister) Get() uint8 {
	return r.file.mem[r.addr]
}

func (r *simRegister) Set(value uint8) {
	r.file.mem[r.addr] = value
	r.file.trace = append(r.file.trace, RegisterWrite{
		Addr:  r.addr,
		Value: value,
		Time:  GetTime(),
	})
}

package core

// Register8 is an 8-bit memory-mapped I/O register.
// *volatile.Register8 satisfies it on TinyGo targets; RegisterFile
// provides a simulated one for host builds.
type Register8 interface {
	Get() uint8
	Set(value uint8)
}

// Bit returns the mask selecting bit n of an 8-bit register
func Bit(n uint8) uint8 {
	return 1 << (n & 7)
}

// SetBits forces the masked bits of r to 1
func SetBits(r Register8, mask uint8) {
	r.Set(r.Get() | mask)
}

// ClearBits forces the masked bits of r to 0.
// This is an unconditional clear, not a flip.
func ClearBits(r Register8, mask uint8) {
	r.Set(r.Get() &^ mask)
}

// HasBits reports whether every masked bit of r is set
func HasBits(r Register8, mask uint8) bool {
	return r.Get()&mask == mask
}

package core

// utoa converts an unsigned integer to a string without using fmt.
// fmt is too heavy for the AVR target.
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// bin8 formats a register value as 0bxxxxxxxx
func bin8(v uint8) string {
	buf := [10]byte{'0', 'b'}
	for i := 0; i < 8; i++ {
		if v&(0x80>>i) != 0 {
			buf[2+i] = '1'
		} else {
			buf[2+i] = '0'
		}
	}
	return string(buf[:])
}

// FormatBinary formats a register value as 0bxxxxxxxx
func FormatBinary(v uint8) string {
	return bin8(v)
}

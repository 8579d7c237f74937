package layers

import (
	"encoding/binary"
)

// Checksum computes the RFC 1071 internet checksum over data. A buffer that
// already carries a valid checksum field sums to zero.
func Checksum(data []byte) uint16 {
	var sum uint32
	for i := 0; i+1 < len(data); i += 2 {
		sum += uint32(binary.BigEndian.Uint16(data[i : i+2]))
	}
	if len(data)%2 != 0 {
		sum += uint32(data[len(data)-1]) << 8
	}
	for sum > 0xFFFF {
		sum = sum&0xFFFF + sum>>16
	}

	return ^uint16(sum)
}

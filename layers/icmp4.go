package layers

import (
	"encoding/binary"
	"fmt"
)

// ICMPv4 ICMP message. Only the fixed 4-byte common header is decoded;
// the type-dependent body stays in Payload. The checksum covers the
// whole message and is advisory.
type ICMPv4 struct {
	Base
	Type     uint8
	Code     uint8
	Checksum uint16
}

func (icmp *ICMPv4) Decode(data []byte) *Fault {
	if len(data) < 4 {
		return truncatedf("invalid (too small) ICMPv4 capture length (%d < 4)", len(data))
	}

	icmp.Type = data[0]
	icmp.Code = data[1]
	icmp.Checksum = binary.BigEndian.Uint16(data[2:4])
	icmp.Contents = data[:4]
	icmp.Payload = data[4:]

	if Checksum(data) != 0 {
		return advisoryf("ICMPv4 checksum mismatch (0x%04X)", icmp.Checksum)
	}

	return nil
}

func (icmp *ICMPv4) NextLayerType() LayerType {
	return NullLayerType
}

func (icmp ICMPv4) String() string {
	desc := "ICMPv4: "

	desc += fmt.Sprintf("type=%d, ", icmp.Type)
	desc += fmt.Sprintf("code=%d, ", icmp.Code)
	desc += fmt.Sprintf("checksum=%d", icmp.Checksum)

	return desc
}

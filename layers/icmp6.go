package layers

import (
	"encoding/binary"
	"fmt"
)

// ICMPv6 ICMPv6 message. Same 4-byte common header as ICMPv4, but the
// RFC 4443 checksum covers an IPv6 pseudo-header (source, destination,
// length, next header) the layer decoder does not see, so the checksum
// is stored without validation.
type ICMPv6 struct {
	Base
	Type     uint8
	Code     uint8
	Checksum uint16
}

func (icmp *ICMPv6) Decode(data []byte) *Fault {
	if len(data) < 4 {
		return truncatedf("invalid (too small) ICMPv6 capture length (%d < 4)", len(data))
	}

	icmp.Type = data[0]
	icmp.Code = data[1]
	icmp.Checksum = binary.BigEndian.Uint16(data[2:4])
	icmp.Contents = data[:4]
	icmp.Payload = data[4:]

	return nil
}

func (icmp *ICMPv6) NextLayerType() LayerType {
	return NullLayerType
}

func (icmp ICMPv6) String() string {
	desc := "ICMPv6: "

	desc += fmt.Sprintf("type=%d, ", icmp.Type)
	desc += fmt.Sprintf("code=%d, ", icmp.Code)
	desc += fmt.Sprintf("checksum=%d", icmp.Checksum)

	return desc
}

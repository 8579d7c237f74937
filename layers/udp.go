package layers

import (
	"encoding/binary"
	"fmt"
)

type UDP struct {
	Base
	SrcPort, DstPort uint16
	Length           uint16
	Checksum         uint16
}

func (udp *UDP) Decode(data []byte) *Fault {
	if len(data) < 8 {
		return truncatedf("invalid (too small) UDP capture length (%d < 8)", len(data))
	}

	udp.SrcPort = binary.BigEndian.Uint16(data[0:2])
	udp.DstPort = binary.BigEndian.Uint16(data[2:4])
	udp.Length = binary.BigEndian.Uint16(data[4:6])
	udp.Checksum = binary.BigEndian.Uint16(data[6:8])

	if udp.Length < 8 {
		return invariantf("invalid (too small) UDP length (%d < 8)", udp.Length)
	}
	if int(udp.Length) > len(data) {
		return truncatedf("invalid (too small) UDP capture length < UDP length (%d < %d)", len(data), udp.Length)
	}

	udp.Contents = data[:8]
	udp.Payload = data[8:udp.Length]

	return nil
}

func (udp *UDP) NextLayerType() LayerType {
	return NullLayerType
}

func (udp UDP) String() string {
	desc := "UDP: "
	desc += fmt.Sprintf("srcPort=%d, ", udp.SrcPort)
	desc += fmt.Sprintf("dstPort=%d, ", udp.DstPort)
	desc += fmt.Sprintf("length=%d, ", udp.Length)
	desc += fmt.Sprintf("checksum=%d", udp.Checksum)

	return desc
}

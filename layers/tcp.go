package layers

import (
	"encoding/binary"
	"fmt"
)

type TCP struct {
	Base
	SrcPort, DstPort                           uint16
	Seq                                        uint32
	Ack                                        uint32
	DataOffset                                 uint8
	FIN, SYN, RST, PSH, ACK, URG, ECE, CWR, NS bool
	Window                                     uint16
	Checksum                                   uint16
	Urgent                                     uint16
	// Options is the raw options region sized by the data offset. It is
	// kept opaque, consumers only need the fixed header fields.
	Options []byte
}

func (tcp *TCP) Decode(data []byte) *Fault {
	if len(data) < 20 {
		return truncatedf("invalid (too small) TCP capture length (%d < 20)", len(data))
	}

	tcp.SrcPort = binary.BigEndian.Uint16(data[0:2])
	tcp.DstPort = binary.BigEndian.Uint16(data[2:4])
	tcp.Seq = binary.BigEndian.Uint32(data[4:8])
	tcp.Ack = binary.BigEndian.Uint32(data[8:12])
	tcp.DataOffset = data[12] >> 4
	tcp.FIN = data[13]&0x01 != 0
	tcp.SYN = data[13]&0x02 != 0
	tcp.RST = data[13]&0x04 != 0
	tcp.PSH = data[13]&0x08 != 0
	tcp.ACK = data[13]&0x10 != 0
	tcp.URG = data[13]&0x20 != 0
	tcp.ECE = data[13]&0x40 != 0
	tcp.CWR = data[13]&0x80 != 0
	tcp.NS = data[12]&0x01 != 0
	tcp.Window = binary.BigEndian.Uint16(data[14:16])
	tcp.Checksum = binary.BigEndian.Uint16(data[16:18])
	tcp.Urgent = binary.BigEndian.Uint16(data[18:20])

	headerLen := int(tcp.DataOffset) * 4
	if headerLen < 20 {
		return invariantf("invalid (too small) TCP header length (%d < 20)", headerLen)
	}
	if len(data) < headerLen {
		return truncatedf("invalid (too small) TCP capture length < TCP header length (%d < %d)", len(data), headerLen)
	}

	tcp.Contents = data[:headerLen]
	tcp.Options = data[20:headerLen]
	tcp.Payload = data[headerLen:]

	return nil
}

func (tcp *TCP) NextLayerType() LayerType {
	return NullLayerType
}

func (tcp TCP) String() string {
	desc := "TCP: "
	desc += fmt.Sprintf("srcPort=%d, ", tcp.SrcPort)
	desc += fmt.Sprintf("dstPort=%d, ", tcp.DstPort)
	desc += fmt.Sprintf("sequence=%d, ", tcp.Seq)
	desc += fmt.Sprintf("ack=%d, ", tcp.Ack)
	desc += fmt.Sprintf("dataOffset=%d, ", tcp.DataOffset*4)
	desc += fmt.Sprintf("FIN=%t, ", tcp.FIN)
	desc += fmt.Sprintf("SYN=%t, ", tcp.SYN)
	desc += fmt.Sprintf("RST=%t, ", tcp.RST)
	desc += fmt.Sprintf("PSH=%t, ", tcp.PSH)
	desc += fmt.Sprintf("ACK=%t, ", tcp.ACK)
	desc += fmt.Sprintf("URG=%t, ", tcp.URG)
	desc += fmt.Sprintf("window=%d, ", tcp.Window)
	desc += fmt.Sprintf("checksum=%d, ", tcp.Checksum)
	desc += fmt.Sprintf("optionsLength=%d", len(tcp.Options))

	return desc
}

package layers

import (
	"encoding/binary"
	"fmt"
	"net"
)

type EthernetType uint16

const (
	EthernetTypeLLC  EthernetType = 0x0000
	EthernetTypeIPv4 EthernetType = 0x0800
	EthernetTypeARP  EthernetType = 0x0806
	EthernetTypeVLAN EthernetType = 0x8100
	EthernetTypeIPv6 EthernetType = 0x86DD
)

func (et EthernetType) Name() string {
	switch et {
	case EthernetTypeLLC:
		return "LLC"

	case EthernetTypeIPv4:
		return "IPv4"

	case EthernetTypeARP:
		return "ARP"

	case EthernetTypeVLAN:
		return "VLAN"

	case EthernetTypeIPv6:
		return "IPv6"

	default:
		return fmt.Sprintf("ethernet type 0x%04X", uint16(et))
	}
}

// Ethernet is the layer for Ethernet frame headers. A type/length field
// value of 1500 or less is an 802.3 length and the payload starts with an
// LLC header instead of a directly identified protocol.
type Ethernet struct {
	Base
	SrcMAC, DstMAC net.HardwareAddr
	EthernetType   EthernetType
	// Length is the 802.3 payload length, zero for Ethernet II frames.
	Length uint16
}

func (eth *Ethernet) Decode(data []byte) *Fault {
	if len(data) < 14 {
		return truncatedf("invalid (too small) Ethernet capture length (%d < 14)", len(data))
	}

	eth.DstMAC = net.HardwareAddr(data[0:6])
	eth.SrcMAC = net.HardwareAddr(data[6:12])
	typeOrLen := binary.BigEndian.Uint16(data[12:14])
	eth.Contents = data[:14]
	eth.Payload = data[14:]

	if typeOrLen <= 1500 {
		// 802.3 frame, the field is a payload length. The header itself
		// is complete, so a payload cut short by the snapshot keeps the
		// decoded layer and flags the missing bytes.
		eth.EthernetType = EthernetTypeLLC
		eth.Length = typeOrLen
		if int(typeOrLen) > len(eth.Payload) {
			return &Fault{
				Kind:    FaultTruncated,
				Reason:  fmt.Sprintf("invalid Ethernet 802.3 length > capture length (%d > %d)", typeOrLen, len(eth.Payload)),
				Decoded: true,
			}
		}
		eth.Payload = eth.Payload[:typeOrLen]

		return nil
	}

	eth.EthernetType = EthernetType(typeOrLen)

	return nil
}

func (eth *Ethernet) NextLayerType() LayerType {
	return eth.EthernetType
}

func (eth Ethernet) String() string {
	desc := "Ethernet: "

	desc += fmt.Sprintf("srcMac=%s, ", eth.SrcMAC)
	desc += fmt.Sprintf("dstMac=%s, ", eth.DstMAC)
	desc += fmt.Sprintf("ethernetType=%s", eth.EthernetType.Name())

	return desc
}

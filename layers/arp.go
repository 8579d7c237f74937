package layers

import (
	"encoding/binary"
	"fmt"
	"net"
)

// ARPOpcode ARP operation code.
type ARPOpcode uint16

const (
	// ARPOpcodeRequest ARP request.
	ARPOpcodeRequest ARPOpcode = 1
	// ARPOpcodeReply ARP reply.
	ARPOpcodeReply ARPOpcode = 2
	// ARPOpcodeRequestReverse RARP request.
	ARPOpcodeRequestReverse ARPOpcode = 3
	// ARPOpcodeReplyReverse RARP reply.
	ARPOpcodeReplyReverse ARPOpcode = 4
)

// Name get ARP opcode name.
func (op ARPOpcode) Name() string {
	switch op {
	case ARPOpcodeRequest:
		return "Request"

	case ARPOpcodeReply:
		return "Reply"

	case ARPOpcodeRequestReverse:
		return "RARP Request"

	case ARPOpcodeReplyReverse:
		return "RARP Reply"

	default:
		return fmt.Sprintf("ARP opcode %d", uint16(op))
	}
}

const arpHardwareTypeEthernet = 1

// ARP address resolution message. Terminal layer, nothing dispatches
// after it. The four address fields are sized by the hardware and
// protocol length fields, which must agree with the bytes present.
type ARP struct {
	Base
	HardwareType uint16
	ProtocolType EthernetType
	HardwareLen  uint8
	ProtocolLen  uint8
	Opcode       ARPOpcode
	SenderHW     net.HardwareAddr
	SenderIP     net.IP
	TargetHW     net.HardwareAddr
	TargetIP     net.IP
}

func (arp *ARP) Decode(data []byte) *Fault {
	if len(data) < 8 {
		return truncatedf("invalid (too small) ARP capture length (%d < 8)", len(data))
	}

	arp.HardwareType = binary.BigEndian.Uint16(data[0:2])
	arp.ProtocolType = EthernetType(binary.BigEndian.Uint16(data[2:4]))
	arp.HardwareLen = data[4]
	arp.ProtocolLen = data[5]
	arp.Opcode = ARPOpcode(binary.BigEndian.Uint16(data[6:8]))

	if arp.HardwareLen == 0 || arp.ProtocolLen == 0 {
		return invariantf(
			"invalid ARP address lengths (hardware %d, protocol %d)",
			arp.HardwareLen, arp.ProtocolLen)
	}
	if arp.HardwareType == arpHardwareTypeEthernet && arp.HardwareLen != 6 {
		return invariantf("invalid ARP hardware length for Ethernet (%d != 6)", arp.HardwareLen)
	}
	if arp.ProtocolType == EthernetTypeIPv4 && arp.ProtocolLen != 4 {
		return invariantf("invalid ARP protocol length for IPv4 (%d != 4)", arp.ProtocolLen)
	}

	addrsLen := 2 * (int(arp.HardwareLen) + int(arp.ProtocolLen))
	if len(data) < 8+addrsLen {
		return truncatedf(
			"invalid (too small) ARP capture length < message length (%d < %d)",
			len(data), 8+addrsLen)
	}

	offset := 8
	arp.SenderHW = net.HardwareAddr(data[offset : offset+int(arp.HardwareLen)])
	offset += int(arp.HardwareLen)
	arp.SenderIP = net.IP(data[offset : offset+int(arp.ProtocolLen)])
	offset += int(arp.ProtocolLen)
	arp.TargetHW = net.HardwareAddr(data[offset : offset+int(arp.HardwareLen)])
	offset += int(arp.HardwareLen)
	arp.TargetIP = net.IP(data[offset : offset+int(arp.ProtocolLen)])
	offset += int(arp.ProtocolLen)

	arp.Contents = data[:offset]
	arp.Payload = data[offset:]

	return nil
}

func (arp *ARP) NextLayerType() LayerType {
	return NullLayerType
}

func (arp ARP) String() string {
	desc := "ARP: "

	desc += fmt.Sprintf("opcode=%s, ", arp.Opcode.Name())
	desc += fmt.Sprintf("senderHW=%s, ", arp.SenderHW)
	desc += fmt.Sprintf("senderIP=%s, ", arp.SenderIP)
	desc += fmt.Sprintf("targetHW=%s, ", arp.TargetHW)
	desc += fmt.Sprintf("targetIP=%s", arp.TargetIP)

	return desc
}

package layers

import (
	"encoding/binary"
	"fmt"
	"net"
)

// IPProtocol IP protocol number, shared by the IPv4 protocol field and
// the IPv6 next-header chain.
type IPProtocol uint8

const (
	// IPProtocolICMP IP protocol ICMP.
	IPProtocolICMP IPProtocol = 0x01
	// IPProtocolTCP IP protocol TCP.
	IPProtocolTCP IPProtocol = 0x06
	// IPProtocolUDP IP protocol UDP.
	IPProtocolUDP IPProtocol = 0x11
	// IPProtocolICMPv6 IP protocol ICMPv6.
	IPProtocolICMPv6 IPProtocol = 0x3A
)

// Name get IP protocol name.
func (p IPProtocol) Name() string {
	switch p {
	case IPProtocolICMP:
		return "ICMPv4"

	case IPProtocolTCP:
		return "TCP"

	case IPProtocolUDP:
		return "UDP"

	case IPProtocolICMPv6:
		return "ICMPv6"

	default:
		return fmt.Sprintf("IP proto 0x%02X", uint8(p))
	}
}

// IPv4Option IPv4 option.
type IPv4Option struct {
	OptionType   uint8
	OptionLength uint8
	OptionData   []byte
}

// IPv4 IPv4 frame.
type IPv4 struct {
	Base
	Version    uint8
	IHL        uint8
	TOS        uint8
	Length     uint16
	ID         uint16
	MF, DF     bool
	FragOffset uint16
	TTL        uint8
	Protocol   IPProtocol
	Checksum   uint16
	SrcIP      net.IP
	DstIP      net.IP
	Options    []IPv4Option
}

// GetSrcIP get IPv4 source IP.
func (ip *IPv4) GetSrcIP() string {
	return ip.SrcIP.String()
}

// GetDstIP get IPv4 dest IP.
func (ip *IPv4) GetDstIP() string {
	return ip.DstIP.String()
}

// Decode decode IPv4 frame. The header checksum is advisory: a mismatch
// keeps the decoded layer and returns a fault flagging it.
func (ip *IPv4) Decode(data []byte) *Fault {
	if len(data) < 20 {
		return truncatedf("invalid (too small) IPv4 capture length (%d < 20)", len(data))
	}

	ip.Version = data[0] >> 4
	ip.IHL = data[0] & 0x0F
	ip.TOS = data[1]
	ip.Length = binary.BigEndian.Uint16(data[2:4])
	ip.ID = binary.BigEndian.Uint16(data[4:6])
	flags := binary.BigEndian.Uint16(data[6:8])
	ip.DF = flags&0x4000 != 0
	ip.MF = flags&0x2000 != 0
	ip.FragOffset = flags & 0x1FFF
	ip.TTL = data[8]
	ip.Protocol = IPProtocol(data[9])
	ip.Checksum = binary.BigEndian.Uint16(data[10:12])
	ip.SrcIP = net.IP(data[12:16])
	ip.DstIP = net.IP(data[16:20])

	headerLen := int(ip.IHL) * 4
	if headerLen < 20 {
		return invariantf("invalid (too small) IPv4 header length (%d < 20)", headerLen)
	}
	if len(data) < headerLen {
		return truncatedf("invalid (too small) IPv4 capture length < IPv4 header length (%d < %d)", len(data), headerLen)
	}
	if int(ip.Length) < headerLen {
		return invariantf("invalid IPv4 length < IPv4 header length (%d < %d)", ip.Length, headerLen)
	}

	// Snapshot truncation can cut the payload short of the declared total
	// length. The header itself is complete, so the layer is kept and the
	// missing payload is flagged.
	truncated := len(data) < int(ip.Length)
	if !truncated {
		data = data[:ip.Length]
	}
	ip.Contents = data[:headerLen]
	ip.Payload = data[headerLen:]

	// IPv4 options
	opts := data[20:headerLen]
	for len(opts) > 0 {
		if ip.Options == nil {
			ip.Options = make([]IPv4Option, 0, 4)
		}
		opt := IPv4Option{OptionType: opts[0]}
		switch opt.OptionType {
		case 0: // End of options
			opt.OptionLength = 1
			ip.Options = append(ip.Options, opt)
			opts = nil
			continue

		case 1: // 1 byte padding
			opt.OptionLength = 1

		default:
			if len(opts) < 2 {
				return invariantf(
					"IPv4 option %d has no length byte", opt.OptionType)
			}
			opt.OptionLength = opts[1]
			if opt.OptionLength < 2 || int(opt.OptionLength) > len(opts) {
				return invariantf(
					"IPv4 option length exceeds remaining IPv4 header size, option type %d length %d",
					opt.OptionType, opt.OptionLength)
			}
			opt.OptionData = opts[2:opt.OptionLength]
		}
		opts = opts[opt.OptionLength:]
		ip.Options = append(ip.Options, opt)
	}

	if truncated {
		return &Fault{
			Kind:    FaultTruncated,
			Reason:  fmt.Sprintf("invalid (too small) IPv4 capture length < IPv4 length (%d < %d)", len(data), ip.Length),
			Decoded: true,
		}
	}
	if Checksum(ip.Contents) != 0 {
		return advisoryf("IPv4 header checksum mismatch (0x%04X)", ip.Checksum)
	}

	return nil
}

// NextLayerType get IPv4 next layer type. Fragments beyond the first
// carry no decodable transport header, so they terminate here and the
// payload stays opaque.
func (ip *IPv4) NextLayerType() LayerType {
	if ip.FragOffset > 0 {
		return NullLayerType
	}

	return ip.Protocol
}

func (ip IPv4) String() string {
	desc := "IPv4: "
	desc += fmt.Sprintf("version=%d, ", ip.Version)
	desc += fmt.Sprintf("ipHeaderLength=%d, ", ip.IHL*4)
	desc += fmt.Sprintf("TOS=%d, ", ip.TOS)
	desc += fmt.Sprintf("length=%d, ", ip.Length)
	desc += fmt.Sprintf("id=%d, ", ip.ID)
	desc += fmt.Sprintf("MF=%t, ", ip.MF)
	desc += fmt.Sprintf("DF=%t, ", ip.DF)
	desc += fmt.Sprintf("fragOffset=%d, ", ip.FragOffset)
	desc += fmt.Sprintf("TTL=%d, ", ip.TTL)
	desc += fmt.Sprintf("protocol=%s, ", ip.Protocol.Name())
	desc += fmt.Sprintf("checksum=%d, ", ip.Checksum)
	desc += fmt.Sprintf("srcIP=%s, ", ip.SrcIP)
	desc += fmt.Sprintf("dstIP=%s, ", ip.DstIP)
	desc += fmt.Sprintf("options=%v", ip.Options)

	return desc
}

package layers

import (
	"encoding/binary"
	"fmt"
	"net"
)

const (
	ipv6HeaderHopByHop IPProtocol = 0
	ipv6HeaderRouting  IPProtocol = 43
	ipv6HeaderFragment IPProtocol = 44
	ipv6HeaderAH       IPProtocol = 51
	ipv6HeaderDestOpts IPProtocol = 60
)

// IPv6MaxExtensionHops caps the next-header chain walk. Adversarial
// frames can otherwise keep the chain referencing itself indefinitely.
const IPv6MaxExtensionHops = 8

func isIPv6ExtensionHeader(p IPProtocol) bool {
	switch p {
	case ipv6HeaderHopByHop,
		ipv6HeaderRouting,
		ipv6HeaderFragment,
		ipv6HeaderAH,
		ipv6HeaderDestOpts:
		return true

	default:
		return false
	}
}

// IPv6ExtensionHeader one hop of the next-header chain. The header body
// stays opaque inside Contents.
type IPv6ExtensionHeader struct {
	Type       IPProtocol
	NextHeader IPProtocol
	Contents   []byte
}

// IPv6 IPv6 frame. The fixed 40-byte base header may chain through
// extension headers before reaching the transport protocol; NextHeader
// holds the final protocol after the chain.
type IPv6 struct {
	Base
	Version       uint8
	TrafficClass  uint8
	FlowLabel     uint32
	PayloadLength uint16
	NextHeader    IPProtocol
	HopLimit      uint8
	SrcIP         net.IP
	DstIP         net.IP
	Extensions    []IPv6ExtensionHeader
	MF            bool
	FragOffset    uint16
}

// GetSrcIP get IPv6 source IP.
func (ip *IPv6) GetSrcIP() string {
	return ip.SrcIP.String()
}

// GetDstIP get IPv6 dest IP.
func (ip *IPv6) GetDstIP() string {
	return ip.DstIP.String()
}

// Decode decode IPv6 frame including its extension header chain.
func (ip *IPv6) Decode(data []byte) *Fault {
	if len(data) < 40 {
		return truncatedf("invalid (too small) IPv6 capture length (%d < 40)", len(data))
	}

	ip.Version = data[0] >> 4
	if ip.Version != 6 {
		return invariantf("invalid IPv6 version (%d != 6)", ip.Version)
	}
	ip.TrafficClass = data[0]<<4 | data[1]>>4
	ip.FlowLabel = uint32(data[1]&0x0F)<<16 | uint32(data[2])<<8 | uint32(data[3])
	ip.PayloadLength = binary.BigEndian.Uint16(data[4:6])
	next := IPProtocol(data[6])
	ip.HopLimit = data[7]
	ip.SrcIP = net.IP(data[8:24])
	ip.DstIP = net.IP(data[24:40])

	// Snapshot truncation can cut the payload short of the declared
	// length. The base header is complete, so the layer is kept and the
	// missing payload flagged after the chain walk.
	truncated := int(ip.PayloadLength) > len(data)-40
	body := data[40:]
	if !truncated {
		body = data[40 : 40+int(ip.PayloadLength)]
	}
	bodyLen := len(body)
	hops := 0
	for isIPv6ExtensionHeader(next) {
		hops++
		if hops > IPv6MaxExtensionHops {
			return invariantf("IPv6 next-header chain exceeds %d hops", IPv6MaxExtensionHops)
		}
		if len(body) < 2 {
			return truncatedf("invalid (too small) IPv6 extension header length (%d < 2)", len(body))
		}

		var extLen int
		switch next {
		case ipv6HeaderFragment:
			extLen = 8

		case ipv6HeaderAH:
			extLen = (int(body[1]) + 2) * 4

		default:
			extLen = (int(body[1]) + 1) * 8
		}
		if len(body) < extLen {
			return truncatedf(
				"invalid (too small) IPv6 capture length < extension header length (%d < %d)",
				len(body), extLen)
		}

		ext := IPv6ExtensionHeader{
			Type:       next,
			NextHeader: IPProtocol(body[0]),
			Contents:   body[:extLen],
		}
		if next == ipv6HeaderFragment {
			ip.FragOffset = binary.BigEndian.Uint16(body[2:4]) >> 3
			ip.MF = body[3]&0x01 != 0
		}
		ip.Extensions = append(ip.Extensions, ext)

		next = ext.NextHeader
		body = body[extLen:]
	}

	ip.NextHeader = next
	headerLen := 40 + bodyLen - len(body)
	ip.Contents = data[:headerLen]
	ip.Payload = body

	if truncated {
		return &Fault{
			Kind:    FaultTruncated,
			Reason:  fmt.Sprintf("invalid (too small) IPv6 capture length < IPv6 payload length (%d < %d)", len(data)-40, ip.PayloadLength),
			Decoded: true,
		}
	}

	return nil
}

// NextLayerType get IPv6 next layer type. Like IPv4, fragments beyond
// the first terminate here with an opaque payload.
func (ip *IPv6) NextLayerType() LayerType {
	if ip.FragOffset > 0 {
		return NullLayerType
	}

	return ip.NextHeader
}

func (ip IPv6) String() string {
	desc := "IPv6: "
	desc += fmt.Sprintf("version=%d, ", ip.Version)
	desc += fmt.Sprintf("trafficClass=%d, ", ip.TrafficClass)
	desc += fmt.Sprintf("flowLabel=%d, ", ip.FlowLabel)
	desc += fmt.Sprintf("payloadLength=%d, ", ip.PayloadLength)
	desc += fmt.Sprintf("nextHeader=%s, ", ip.NextHeader.Name())
	desc += fmt.Sprintf("hopLimit=%d, ", ip.HopLimit)
	desc += fmt.Sprintf("srcIP=%s, ", ip.SrcIP)
	desc += fmt.Sprintf("dstIP=%s, ", ip.DstIP)
	desc += fmt.Sprintf("extensionHeaders=%d", len(ip.Extensions))

	return desc
}
